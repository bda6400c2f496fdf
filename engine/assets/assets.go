package assets

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/facecube/engine/assets/loaders"
	"github.com/spaghettifunk/facecube/engine/core"
	"github.com/spaghettifunk/facecube/engine/resources"
)

var ErrManagerClosed = errors.New("asset manager already closed")

type AssetInfo struct {
	Path        string
	Type        resources.ResourceType
	LastLoaded  time.Time
	LastChanged time.Time
}

type AssetConfig struct {
	// Directory `/uploads/...` image references resolve into.
	UploadsDir string
	// Directory relative image references resolve against.
	BaseDir string
	// Client for the data service and remote images. Nil means http.DefaultClient.
	HTTPClient  *http.Client
	HTTPTimeout time.Duration
}

// AssetManager loads content and images through registered loaders and
// reports changes to watched files on Changes.
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[resources.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	started  bool
	changes  chan string
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[resources.ResourceType]Loader),
		fsnotify: fsWatch,
		changes:  make(chan string, 16),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(cfg AssetConfig) error {
	// Register loaders
	am.registerLoader(resources.ResourceTypeContent, &loaders.FileLoader{})
	am.registerLoader(resources.ResourceTypeRemote, &loaders.HTTPLoader{
		Client:  cfg.HTTPClient,
		Timeout: cfg.HTTPTimeout,
	})
	am.registerLoader(resources.ResourceTypeImage, &loaders.ImageLoader{
		UploadsDir: cfg.UploadsDir,
		BaseDir:    cfg.BaseDir,
		Client:     cfg.HTTPClient,
	})

	am.started = true
	go am.start()
	return nil
}

// Changes delivers the path of every watched file that was written, created
// or removed. Bursts are coalesced when the reader falls behind.
func (am *AssetManager) Changes() <-chan string {
	return am.changes
}

// Watch starts reporting changes to a single file. Its directory is watched
// instead of the file so editors that save by rename keep being tracked.
func (am *AssetManager) Watch(path string) error {
	if am.isClosed {
		return ErrManagerClosed
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	am.mutex.Lock()
	am.assets[abs] = AssetInfo{Path: abs, Type: determineAssetType(abs)}
	am.mutex.Unlock()
	return am.fsnotify.Add(filepath.Dir(abs))
}

// WatchRecursive starts watching the named directory and all sub-directories.
// Images found there are indexed and reported on change.
func (am *AssetManager) WatchRecursive(name string) error {
	if am.isClosed {
		return ErrManagerClosed
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return err
	}
	return am.watchRecursive(abs, false)
}

// Unwatch stops watching the named directory and all sub-directories.
func (am *AssetManager) Unwatch(name string) error {
	abs, err := filepath.Abs(name)
	if err != nil {
		return err
	}
	return am.watchRecursive(abs, true)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType resources.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// LoadAsset loads name with the loader registered for resourceType. Name is a
// file path for content, a base URL for remote content and a reference for images.
func (am *AssetManager) LoadAsset(name string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	am.mutex.RLock()
	loader, loaderExists := am.loaders[resourceType]
	am.mutex.RUnlock()
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", resourceType)
	}

	res, err := loader.Load(name, resourceType, params)
	if err != nil {
		return nil, err
	}

	key := res.FullPath
	am.mutex.Lock()
	asset, exists := am.assets[key]
	if !exists {
		asset = AssetInfo{Path: key, Type: resourceType}
	}
	asset.LastLoaded = time.Now()
	am.assets[key] = asset
	am.mutex.Unlock()

	return res, nil
}

func (am *AssetManager) UnloadAsset(asset *resources.Resource) error {
	if asset == nil {
		return nil
	}
	am.mutex.RLock()
	loader, ok := am.loaders[asset.Type]
	am.mutex.RUnlock()
	if !ok {
		return nil
	}
	return loader.Unload(asset)
}

// Asset returns what the index knows about a path.
func (am *AssetManager) Asset(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[path]
	return info, ok
}

// Shutdown stops the watcher goroutine and closes the change channel.
func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	if !am.started {
		close(am.changes)
		return am.fsnotify.Close()
	}
	close(am.done)
	<-am.stopped
	return nil
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name, false); err != nil {
						core.LogWarn("failed to watch %s: %s", e.Name, err.Error())
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
			}
			_, tracked := am.Asset(e.Name)
			goneImage := e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && determineAssetType(e.Name) == resources.ResourceTypeImage
			if tracked || goneImage {
				am.notify(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err.Error())

		case <-am.done:
			am.fsnotify.Close()
			close(am.changes)
			return
		}
	}
}

func (am *AssetManager) notify(path string) {
	select {
	case am.changes <- path:
	default:
		// reader is behind; a reload is already pending
	}
}

// watchRecursive adds all directories under the given one to the watch list.
// A file created before its directory's watch is registered is picked up by
// the walk, not by an event.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				if err = am.fsnotify.Remove(walkPath); err != nil && !errors.Is(err, fsnotify.ErrNonExistentWatch) {
					return err
				}
			} else {
				if err = am.fsnotify.Add(walkPath); err != nil {
					return err
				}
			}
		} else if !unWatch {
			am.handleFileEvent(walkPath)
		}
		return nil
	})
}

// Handle the creation or modification of a file. Only images are indexed
// implicitly; content files are tracked through Watch.
func (am *AssetManager) handleFileEvent(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	if asset, ok := am.assets[path]; ok {
		asset.LastChanged = time.Now()
		am.assets[path] = asset
		return
	}
	if determineAssetType(path) != resources.ResourceTypeImage {
		return
	}
	am.assets[path] = AssetInfo{
		Path:        path,
		Type:        resources.ResourceTypeImage,
		LastChanged: time.Now(),
	}
}

// Remove an implicitly indexed image when it is deleted. Explicitly watched
// files stay tracked so they are picked up again when recreated.
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	if asset, ok := am.assets[path]; ok && asset.Type == resources.ResourceTypeImage {
		delete(am.assets, path)
	}
}

func determineAssetType(path string) resources.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml", ".json":
		return resources.ResourceTypeContent
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tif", ".tiff":
		return resources.ResourceTypeImage
	default:
		return resources.ResourceTypeNone
	}
}
