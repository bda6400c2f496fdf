package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/facecube/engine/core"
	"github.com/spaghettifunk/facecube/engine/dice"
	"github.com/spaghettifunk/facecube/engine/systems"
)

func TestDefaultConfigMatchesWidgetDefaults(t *testing.T) {
	got := DefaultConfig().DiceConfig()
	want := dice.DefaultConfig()

	if got.Size != want.Size || got.FaceScale != want.FaceScale {
		t.Errorf("size/scale = %v/%v, want %v/%v", got.Size, got.FaceScale, want.Size, want.FaceScale)
	}
	if got.InitialOrientation != want.InitialOrientation {
		t.Errorf("initial orientation = %+v, want %+v", got.InitialOrientation, want.InitialOrientation)
	}
	durations := []struct {
		name      string
		got, want time.Duration
	}{
		{"idle max step", got.IdleMaxStep, want.IdleMaxStep},
		{"drag snap", got.DragSnapDuration, want.DragSnapDuration},
		{"click snap", got.ClickSnapDuration, want.ClickSnapDuration},
		{"settle slack", got.SettleSlack, want.SettleSlack},
		{"cooldown", got.Cooldown, want.Cooldown},
	}
	for _, d := range durations {
		if d.got != d.want {
			t.Errorf("%s = %v, want %v", d.name, d.got, d.want)
		}
	}
	if got.IdleRate != want.IdleRate || got.DragSensitivity != want.DragSensitivity {
		t.Errorf("rates = %v/%v", got.IdleRate, got.DragSensitivity)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "facecube.toml")
	data := `
[application]
name = "portfolio"
log_level = "debug"

[dice]
size = 180
cooldown_ms = 1500

[content]
source = "http"
url = "http://localhost:5000"
refresh_interval_ms = 30000

[audio]
enabled = false
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvContent, "")
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvUploadsDir, "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Application.Name != "portfolio" || cfg.Dice.Size != 180 {
		t.Errorf("cfg = %+v", cfg)
	}
	if got := cfg.DiceConfig().Cooldown; got != 1500*time.Millisecond {
		t.Errorf("cooldown = %v", got)
	}
	// keys missing from the file keep their defaults
	if cfg.Dice.ClickSnapMS != 400 || cfg.Application.TargetFPS != 60 {
		t.Errorf("defaults lost: %+v", cfg.Dice)
	}
	sm := cfg.SystemManagerConfig()
	if sm.Content.Source != systems.ContentSourceHTTP || sm.Content.RefreshInterval != 30*time.Second {
		t.Errorf("content = %+v", sm.Content)
	}
	if cfg.AudioConfig().Enabled {
		t.Error("audio should be disabled")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvContent, "")

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[dice\nsize = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("malformed file should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"defaults", func(c *Config) {}, nil},
		{"bad level", func(c *Config) { c.Application.LogLevel = "loud" }, core.ErrInvalidLogLevel},
		{"bad source", func(c *Config) { c.Content.Source = "ftp" }, core.ErrUnknownSource},
		{"http without url", func(c *Config) { c.Content.Source = "http" }, ErrInvalidConfig},
		{"file without path", func(c *Config) { c.Content.Path = "" }, ErrInvalidConfig},
		{"zero size", func(c *Config) { c.Dice.Size = 0 }, ErrInvalidConfig},
		{"face scale", func(c *Config) { c.Dice.FaceScale = 1.5 }, ErrInvalidConfig},
		{"volume", func(c *Config) { c.Audio.Volume = 2 }, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := func(vars map[string]string) func(string) string {
		return func(k string) string { return vars[k] }
	}

	t.Run("data dir", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.applyEnv(env(map[string]string{EnvDataDir: "/srv/data"}))
		if cfg.Content.Path != "/srv/data/experience.toml" {
			t.Errorf("path = %s", cfg.Content.Path)
		}
		if cfg.Content.UploadsDir != "/srv/data/uploads" {
			t.Errorf("uploads = %s", cfg.Content.UploadsDir)
		}
	})

	t.Run("explicit uploads wins", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.applyEnv(env(map[string]string{EnvDataDir: "/srv/data", EnvUploadsDir: "/mnt/uploads"}))
		if cfg.Content.UploadsDir != "/mnt/uploads" {
			t.Errorf("uploads = %s", cfg.Content.UploadsDir)
		}
	})

	t.Run("content url", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.applyEnv(env(map[string]string{EnvContent: " https://example.com "}))
		if cfg.Content.Source != string(systems.ContentSourceHTTP) || cfg.Content.URL != "https://example.com" {
			t.Errorf("content = %+v", cfg.Content)
		}
	})

	t.Run("content file", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.applyEnv(env(map[string]string{EnvContent: "/tmp/cv.yaml"}))
		if cfg.Content.Source != string(systems.ContentSourceFile) || cfg.Content.Path != "/tmp/cv.yaml" {
			t.Errorf("content = %+v", cfg.Content)
		}
	})

	t.Run("relative paths resolve", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.applyEnv(env(nil))
		if !filepath.IsAbs(cfg.Content.Path) || !filepath.IsAbs(cfg.Content.UploadsDir) {
			t.Errorf("content = %+v", cfg.Content)
		}
	})
}
