package engine

import (
	"github.com/spaghettifunk/facecube/engine/audio"
	"github.com/spaghettifunk/facecube/engine/core"
	"github.com/spaghettifunk/facecube/engine/renderer"
	"github.com/spaghettifunk/facecube/engine/systems"
)

// Game is driven by the engine through its Fn hooks. The engine fills in the
// system handles before FnInitialize runs.
type Game struct {
	Config        *Config
	SystemManager *systems.SystemManager
	Events        *core.EventSystem
	Input         *core.Input
	Renderer      *renderer.Renderer
	Audio         *audio.Player
	Metrics       *core.Metrics
	Clock         core.TimeProvider
	State         interface{}

	FnBoot       Boot
	FnInitialize Initialize
	FnUpdate     Update
	FnRender     Render
	FnOnResize   OnResize
	FnShutdown   Shutdown
}

type Boot func() error
type Initialize func() error
type Update func(deltaTime float64) error
type Render func(packet *renderer.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
