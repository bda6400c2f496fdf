package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/facecube/engine/assets"
	"github.com/spaghettifunk/facecube/engine/audio"
	"github.com/spaghettifunk/facecube/engine/core"
	"github.com/spaghettifunk/facecube/engine/dice"
	"github.com/spaghettifunk/facecube/engine/math"
	"github.com/spaghettifunk/facecube/engine/systems"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Environment variables that override the config file.
const (
	EnvDataDir    = "DATA_DIR"
	EnvUploadsDir = "UPLOADS_DIR"
	EnvContent    = "FACECUBE_CONTENT"
)

type ApplicationConfig struct {
	// The application name shown in the HUD and logs.
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
	// Log destination. The terminal is owned by the renderer, so an empty
	// value discards the log.
	LogFile   string `toml:"log_file"`
	TargetFPS int    `toml:"target_fps"`
}

type DiceConfig struct {
	Size            int     `toml:"size"`
	FaceScale       float64 `toml:"face_scale"`
	InitialPitch    float64 `toml:"initial_pitch"`
	InitialYaw      float64 `toml:"initial_yaw"`
	InitialRoll     float64 `toml:"initial_roll"`
	IdleRate        float64 `toml:"idle_rate"`
	IdleMaxStepMS   int     `toml:"idle_max_step_ms"`
	DragSensitivity float64 `toml:"drag_sensitivity"`
	DragThreshold   float64 `toml:"drag_threshold"`
	DragSnapMS      int     `toml:"drag_snap_ms"`
	ClickSnapMS     int     `toml:"click_snap_ms"`
	SettleSlackMS   int     `toml:"settle_slack_ms"`
	CooldownMS      int     `toml:"cooldown_ms"`
}

type ContentConfig struct {
	// "file" or "http".
	Source     string `toml:"source"`
	Path       string `toml:"path"`
	URL        string `toml:"url"`
	Watch      bool   `toml:"watch"`
	UploadsDir string `toml:"uploads_dir"`
	// Poll interval of the http source, zero disables it.
	RefreshIntervalMS int `toml:"refresh_interval_ms"`
	HTTPTimeoutMS     int `toml:"http_timeout_ms"`
	ImageMaxWidth     int `toml:"image_max_width"`
	ImageMaxHeight    int `toml:"image_max_height"`
	JobWorkers        int `toml:"job_workers"`
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"`
	SampleRate int     `toml:"sample_rate"`
}

type Config struct {
	Application ApplicationConfig `toml:"application"`
	Dice        DiceConfig        `toml:"dice"`
	Content     ContentConfig     `toml:"content"`
	Audio       AudioConfig       `toml:"audio"`
}

func DefaultConfig() Config {
	d := dice.DefaultConfig()
	a := audio.DefaultConfig()
	return Config{
		Application: ApplicationConfig{
			Name:      "facecube",
			LogLevel:  "info",
			TargetFPS: 60,
		},
		Dice: DiceConfig{
			Size:            d.Size,
			FaceScale:       d.FaceScale,
			InitialPitch:    d.InitialOrientation.Pitch,
			InitialYaw:      d.InitialOrientation.Yaw,
			InitialRoll:     d.InitialOrientation.Roll,
			IdleRate:        d.IdleRate,
			IdleMaxStepMS:   int(d.IdleMaxStep / time.Millisecond),
			DragSensitivity: d.DragSensitivity,
			DragThreshold:   d.DragThreshold,
			DragSnapMS:      int(d.DragSnapDuration / time.Millisecond),
			ClickSnapMS:     int(d.ClickSnapDuration / time.Millisecond),
			SettleSlackMS:   int(d.SettleSlack / time.Millisecond),
			CooldownMS:      int(d.Cooldown / time.Millisecond),
		},
		Content: ContentConfig{
			Source:         string(systems.ContentSourceFile),
			Path:           "content/experience.toml",
			Watch:          true,
			UploadsDir:     "uploads",
			HTTPTimeoutMS:  5000,
			ImageMaxWidth:  64,
			ImageMaxHeight: 64,
			JobWorkers:     2,
		},
		Audio: AudioConfig{
			Enabled:    a.Enabled,
			Volume:     a.Volume,
			SampleRate: a.SampleRate,
		},
	}
}

// LoadConfig reads the TOML file at path over the defaults, applies the
// environment overrides and validates the result. An empty path skips the
// file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv resolves the content and uploads locations: an explicit variable
// wins, then a path under DATA_DIR, then the config value.
func (c *Config) applyEnv(getenv func(string) string) {
	dataDir := strings.TrimSpace(getenv(EnvDataDir))

	if content := strings.TrimSpace(getenv(EnvContent)); content != "" {
		if strings.HasPrefix(content, "http://") || strings.HasPrefix(content, "https://") {
			c.Content.Source = string(systems.ContentSourceHTTP)
			c.Content.URL = content
		} else {
			c.Content.Source = string(systems.ContentSourceFile)
			c.Content.Path = content
		}
	} else if dataDir != "" && c.Content.Path != "" && !filepath.IsAbs(c.Content.Path) {
		c.Content.Path = filepath.Join(dataDir, filepath.Base(c.Content.Path))
	}

	if uploads := strings.TrimSpace(getenv(EnvUploadsDir)); uploads != "" {
		c.Content.UploadsDir = uploads
	} else if dataDir != "" {
		c.Content.UploadsDir = filepath.Join(dataDir, "uploads")
	}

	for _, p := range []*string{&c.Content.Path, &c.Content.UploadsDir} {
		if *p == "" {
			continue
		}
		if abs, err := filepath.Abs(*p); err == nil {
			*p = abs
		}
	}
}

func (c Config) Validate() error {
	if _, err := core.ParseLogLevel(c.Application.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch systems.ContentSource(c.Content.Source) {
	case systems.ContentSourceFile:
		if c.Content.Path == "" {
			return fmt.Errorf("%w: content.path is required for the file source", ErrInvalidConfig)
		}
	case systems.ContentSourceHTTP:
		if c.Content.URL == "" {
			return fmt.Errorf("%w: content.url is required for the http source", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, core.ErrUnknownSource, c.Content.Source)
	}
	if c.Dice.Size <= 0 {
		return fmt.Errorf("%w: dice.size must be positive", ErrInvalidConfig)
	}
	if c.Dice.FaceScale <= 0 || c.Dice.FaceScale > 1 {
		return fmt.Errorf("%w: dice.face_scale must be in (0, 1]", ErrInvalidConfig)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be in [0, 1]", ErrInvalidConfig)
	}
	return nil
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// DiceConfig converts to the widget configuration. Callbacks are left for the
// caller to set.
func (c Config) DiceConfig() dice.Config {
	d := c.Dice
	return dice.Config{
		Size:               d.Size,
		FaceScale:          d.FaceScale,
		InitialOrientation: math.NewOrientation(d.InitialPitch, d.InitialYaw, d.InitialRoll),
		IdleRate:           d.IdleRate,
		IdleMaxStep:        ms(d.IdleMaxStepMS),
		DragSensitivity:    d.DragSensitivity,
		DragThreshold:      d.DragThreshold,
		DragSnapDuration:   ms(d.DragSnapMS),
		ClickSnapDuration:  ms(d.ClickSnapMS),
		SettleSlack:        ms(d.SettleSlackMS),
		Cooldown:           ms(d.CooldownMS),
	}
}

func (c Config) SystemManagerConfig() systems.SystemManagerConfig {
	ct := c.Content
	base := ""
	if ct.Path != "" {
		base = filepath.Dir(ct.Path)
	}
	return systems.SystemManagerConfig{
		JobWorkers:   ct.JobWorkers,
		JobQueueSize: 64,
		Assets: assets.AssetConfig{
			UploadsDir:  ct.UploadsDir,
			BaseDir:     base,
			HTTPTimeout: ms(ct.HTTPTimeoutMS),
		},
		Content: systems.ContentSystemConfig{
			Source:          systems.ContentSource(ct.Source),
			Path:            ct.Path,
			URL:             ct.URL,
			Watch:           ct.Watch,
			UploadsDir:      ct.UploadsDir,
			RefreshInterval: ms(ct.RefreshIntervalMS),
			ImageMaxWidth:   ct.ImageMaxWidth,
			ImageMaxHeight:  ct.ImageMaxHeight,
		},
	}
}

func (c Config) AudioConfig() audio.Config {
	return audio.Config{
		Enabled:    c.Audio.Enabled,
		Volume:     c.Audio.Volume,
		SampleRate: c.Audio.SampleRate,
	}
}
