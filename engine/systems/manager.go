package systems

import (
	"github.com/spaghettifunk/facecube/engine/assets"
	"github.com/spaghettifunk/facecube/engine/core"
)

type SystemManagerConfig struct {
	JobWorkers   int
	JobQueueSize int
	Assets       assets.AssetConfig
	Content      ContentSystemConfig
}

type SystemManager struct {
	jobSystem     *JobSystem
	assetManager  *assets.AssetManager
	contentSystem *ContentSystem
}

func NewSystemManager(config SystemManagerConfig, events *core.EventSystem, clock core.TimeProvider) (*SystemManager, error) {
	workers := config.JobWorkers
	if workers <= 0 {
		workers = 2
	}
	js, err := NewJobSystem(workers, config.JobQueueSize)
	if err != nil {
		return nil, err
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		js.Shutdown()
		return nil, err
	}
	if err := am.Initialize(config.Assets); err != nil {
		js.Shutdown()
		am.Shutdown()
		return nil, err
	}

	cs, err := NewContentSystem(config.Content, js, am, events, clock)
	if err != nil {
		js.Shutdown()
		am.Shutdown()
		return nil, err
	}

	return &SystemManager{
		jobSystem:     js,
		assetManager:  am,
		contentSystem: cs,
	}, nil
}

// Initialize starts the systems that need the event system up and running.
func (sm *SystemManager) Initialize() error {
	return sm.contentSystem.Initialize()
}

// Update runs once per frame on the frame loop.
func (sm *SystemManager) Update() {
	sm.contentSystem.Update()
	sm.jobSystem.Update()
}

func (sm *SystemManager) JobSystem() *JobSystem {
	return sm.jobSystem
}

func (sm *SystemManager) AssetManager() *assets.AssetManager {
	return sm.assetManager
}

func (sm *SystemManager) ContentSystem() *ContentSystem {
	return sm.contentSystem
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.contentSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.jobSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.assetManager.Shutdown(); err != nil {
		return err
	}
	return nil
}
