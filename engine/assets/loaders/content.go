package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/facecube/engine/core"
	"github.com/spaghettifunk/facecube/engine/resources"
	"gopkg.in/yaml.v3"
)

// contentFile is the layout of a local content file: a list of
// [[experience]] tables in TOML, an `experience:` sequence in YAML or JSON.
type contentFile struct {
	Experience []resources.Experience `toml:"experience" yaml:"experience" json:"experience"`
}

// FileLoader reads experience records from a local file. The format is
// picked from the extension.
type FileLoader struct{}

func (fl *FileLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	list, err := DecodeContent(filepath.Ext(path), buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return &resources.Resource{
		Type:     resources.ResourceTypeContent,
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(buf)),
		Data:     list,
	}, nil
}

func (fl *FileLoader) Unload(*resources.Resource) error {
	return nil
}

// DecodeContent decodes records in the format named by ext and orders them
// by (DiceOrder, ID). JSON also accepts a bare array, as served by the API.
func DecodeContent(ext string, buf []byte) ([]resources.Experience, error) {
	var cf contentFile
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(buf, &cf); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(buf, &cf); err != nil {
			return nil, err
		}
	case ".json":
		trimmed := bytes.TrimSpace(buf)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &cf.Experience); err != nil {
				return nil, err
			}
		} else if err := json.Unmarshal(buf, &cf); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, ext)
	}

	resources.SortExperiences(cf.Experience)
	return cf.Experience, nil
}
