package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/facecube/engine/resources"
)

const content = `
[[experience]]
id = 1
company = "Acme"
position = "Engineer"
description = "Things"
logo_url = "/uploads/experience-logos/acme.png"
responsibilities = []
start_date = "2020"
current = true
show_on_dice = true
`

func newManager(t *testing.T, uploads string) *AssetManager {
	t.Helper()
	am, err := NewAssetManager()
	if err != nil {
		t.Fatal(err)
	}
	if err := am.Initialize(AssetConfig{UploadsDir: uploads}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { am.Shutdown() })
	return am
}

func TestDetermineAssetType(t *testing.T) {
	tests := []struct {
		path string
		want resources.ResourceType
	}{
		{"content/experience.toml", resources.ResourceTypeContent},
		{"content/experience.YAML", resources.ResourceTypeContent},
		{"data.json", resources.ResourceTypeContent},
		{"uploads/a.webp", resources.ResourceTypeImage},
		{"uploads/a.JPG", resources.ResourceTypeImage},
		{"uploads/a.svg", resources.ResourceTypeNone},
		{"README", resources.ResourceTypeNone},
	}
	for _, tt := range tests {
		if got := determineAssetType(tt.path); got != tt.want {
			t.Errorf("determineAssetType(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestLoadContentAsset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "experience.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	am := newManager(t, dir)
	res, err := am.LoadAsset(path, resources.ResourceTypeContent, nil)
	if err != nil {
		t.Fatal(err)
	}
	list := res.Data.([]resources.Experience)
	if len(list) != 1 || list[0].Company != "Acme" {
		t.Fatalf("loaded %+v", list)
	}
	if info, ok := am.Asset(path); !ok || info.LastLoaded.IsZero() {
		t.Errorf("asset not indexed: %+v", info)
	}

	if _, err := am.LoadAsset(path, resources.ResourceTypeCustom, nil); err == nil {
		t.Error("load without a registered loader succeeded")
	}
}

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "experience.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	am := newManager(t, dir)
	if err := am.Watch(path); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "unrelated.toml"), []byte("x = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-am.Changes():
		if got != path {
			t.Errorf("change reported for %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestShutdownClosesChanges(t *testing.T) {
	am, err := NewAssetManager()
	if err != nil {
		t.Fatal(err)
	}
	if err := am.Initialize(AssetConfig{}); err != nil {
		t.Fatal(err)
	}
	if err := am.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if _, ok := <-am.Changes(); ok {
		t.Error("changes channel still open")
	}
	if err := am.Watch("x.toml"); err != ErrManagerClosed {
		t.Errorf("Watch after shutdown: %v", err)
	}
}
