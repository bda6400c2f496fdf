package systems

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/spaghettifunk/facecube/engine/assets"
	"github.com/spaghettifunk/facecube/engine/core"
	"github.com/spaghettifunk/facecube/engine/resources"
)

type ContentSource string

const (
	ContentSourceFile ContentSource = "file"
	ContentSourceHTTP ContentSource = "http"
)

/** @brief The configuration for the content system */
type ContentSystemConfig struct {
	/** @brief Where experience records come from. */
	Source ContentSource
	/** @brief Content file, for the file source. */
	Path string
	/** @brief Data service base URL, for the http source. */
	URL string
	/** @brief Reload when the content file or an uploaded image changes. */
	Watch bool
	/** @brief Directory holding uploaded images, watched when Watch is set. */
	UploadsDir string
	/** @brief Poll interval of the http source. Zero disables polling. */
	RefreshInterval time.Duration
	/** @brief Bounding box images are scaled into. */
	ImageMaxWidth  int
	ImageMaxHeight int
}

// ContentSystem loads experience records and face images off the frame
// loop and announces the results through the event system:
// EVENT_CODE_CONTENT_LOADED, EVENT_CODE_CONTENT_CHANGED and
// EVENT_CODE_IMAGE_LOADED. A failed reload keeps whatever was loaded before.
type ContentSystem struct {
	config ContentSystemConfig
	jobs   *JobSystem
	assets *assets.AssetManager
	events *core.EventSystem
	timers *core.Timers

	loading      bool
	reloadQueued bool
	generation   uint64

	images        map[string]image.Image
	imagesLoading map[string]bool
}

func NewContentSystem(config ContentSystemConfig, jobs *JobSystem, am *assets.AssetManager, events *core.EventSystem, clock core.TimeProvider) (*ContentSystem, error) {
	switch config.Source {
	case ContentSourceFile:
		if config.Path == "" {
			return nil, fmt.Errorf("%w: file source without a path", core.ErrUnknownSource)
		}
	case ContentSourceHTTP:
		if config.URL == "" {
			return nil, fmt.Errorf("%w: http source without a url", core.ErrUnknownSource)
		}
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownSource, config.Source)
	}
	if clock == nil {
		clock = core.NewRealTimeProvider()
	}
	return &ContentSystem{
		config:        config,
		jobs:          jobs,
		assets:        am,
		events:        events,
		timers:        core.NewTimers(clock),
		images:        make(map[string]image.Image),
		imagesLoading: make(map[string]bool),
	}, nil
}

// Initialize sets up watching and polling and queues the first load.
func (cs *ContentSystem) Initialize() error {
	if cs.config.Watch {
		if cs.config.Source == ContentSourceFile {
			if err := cs.assets.Watch(cs.config.Path); err != nil {
				return fmt.Errorf("failed to watch content file: %w", err)
			}
		}
		if cs.config.UploadsDir != "" {
			if _, err := os.Stat(cs.config.UploadsDir); err == nil {
				if err := cs.assets.WatchRecursive(cs.config.UploadsDir); err != nil {
					core.LogWarn("uploads directory not watched: %s", err.Error())
				}
			}
		}
	}
	if cs.config.Source == ContentSourceHTTP && cs.config.RefreshInterval > 0 {
		cs.scheduleRefresh()
	}

	core.LogInfo("Content system initialized with %s source '%s'.", cs.config.Source, cs.location())
	return cs.Reload()
}

func (cs *ContentSystem) location() string {
	if cs.config.Source == ContentSourceHTTP {
		return cs.config.URL
	}
	return cs.config.Path
}

func (cs *ContentSystem) resourceType() resources.ResourceType {
	if cs.config.Source == ContentSourceHTTP {
		return resources.ResourceTypeRemote
	}
	return resources.ResourceTypeContent
}

// Reload queues a content load. A reload requested while one is in flight
// runs once that one finishes.
func (cs *ContentSystem) Reload() error {
	if cs.loading {
		cs.reloadQueued = true
		return nil
	}
	cs.loading = true
	cs.generation++
	gen := cs.generation
	name, rt := cs.location(), cs.resourceType()

	err := cs.jobs.Submit(JobTask{
		Name: "content",
		OnStart: func(ctx context.Context) (interface{}, error) {
			res, err := cs.assets.LoadAsset(name, rt, nil)
			if err != nil {
				return nil, err
			}
			list, ok := res.Data.([]resources.Experience)
			if !ok {
				return nil, fmt.Errorf("%w: %s returned %T", core.ErrUnknown, name, res.Data)
			}
			return list, nil
		},
		OnComplete: func(result interface{}) {
			list := result.([]resources.Experience)
			core.LogInfo("Loaded %d experience records (generation %d).", len(list), gen)
			cs.finishLoad()
			cs.events.Fire(core.EventContext{Type: core.EVENT_CODE_CONTENT_LOADED, Data: list})
		},
		OnFailure: func(err error) {
			core.LogError("content reload failed, keeping previous content: %s", err.Error())
			cs.finishLoad()
		},
	})
	if err != nil {
		cs.loading = false
		return err
	}
	return nil
}

func (cs *ContentSystem) finishLoad() {
	cs.loading = false
	if cs.reloadQueued {
		cs.reloadQueued = false
		if err := cs.Reload(); err != nil {
			core.LogError("queued reload failed: %s", err.Error())
		}
	}
}

// Loading reports whether a content load is in flight.
func (cs *ContentSystem) Loading() bool {
	return cs.loading
}

// Image returns a face image loaded earlier. When it is not cached yet a
// load is queued and EVENT_CODE_IMAGE_LOADED fires once it is done.
func (cs *ContentSystem) Image(ref string) (image.Image, bool) {
	if img, ok := cs.images[ref]; ok {
		return img, true
	}
	if cs.imagesLoading[ref] {
		return nil, false
	}
	cs.imagesLoading[ref] = true

	params := &resources.ImageResourceParams{MaxWidth: cs.config.ImageMaxWidth, MaxHeight: cs.config.ImageMaxHeight}
	err := cs.jobs.Submit(JobTask{
		Name: "image " + ref,
		OnStart: func(ctx context.Context) (interface{}, error) {
			res, err := cs.assets.LoadAsset(ref, resources.ResourceTypeImage, params)
			if err != nil {
				return nil, err
			}
			return res.Data.(*resources.ImageResourceData).Image, nil
		},
		OnComplete: func(result interface{}) {
			delete(cs.imagesLoading, ref)
			img := result.(image.Image)
			cs.images[ref] = img
			cs.events.Fire(core.EventContext{Type: core.EVENT_CODE_IMAGE_LOADED, Data: &core.ImageEvent{Ref: ref, Image: img}})
		},
		OnFailure: func(err error) {
			delete(cs.imagesLoading, ref)
			cs.events.Fire(core.EventContext{Type: core.EVENT_CODE_IMAGE_LOADED, Data: &core.ImageEvent{Ref: ref, Err: err}})
		},
	})
	if err != nil {
		delete(cs.imagesLoading, ref)
		core.LogWarn("image %s not queued: %s", ref, err.Error())
	}
	return nil, false
}

// Update reacts to file changes and due refreshes. Call once per frame.
func (cs *ContentSystem) Update() {
	cs.timers.Advance()

	for {
		select {
		case path, ok := <-cs.assets.Changes():
			if !ok {
				return
			}
			cs.onChange(path)
		default:
			return
		}
	}
}

func (cs *ContentSystem) onChange(path string) {
	core.LogDebug("content change: %s", path)
	if filepath.Clean(path) != cs.absPath() {
		// an uploaded image changed; drop every cached image so faces reload
		cs.images = make(map[string]image.Image)
	}
	cs.events.Fire(core.EventContext{Type: core.EVENT_CODE_CONTENT_CHANGED, Data: path})
	if err := cs.Reload(); err != nil {
		core.LogError("reload after change failed: %s", err.Error())
	}
}

func (cs *ContentSystem) absPath() string {
	abs, err := filepath.Abs(cs.config.Path)
	if err != nil {
		return cs.config.Path
	}
	return abs
}

func (cs *ContentSystem) scheduleRefresh() {
	cs.timers.After(cs.config.RefreshInterval, func() {
		if err := cs.Reload(); err != nil {
			core.LogError("periodic refresh failed: %s", err.Error())
		}
		cs.scheduleRefresh()
	})
}

func (cs *ContentSystem) Shutdown() error {
	cs.timers.CancelAll()
	return nil
}
