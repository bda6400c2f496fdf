package engine

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spaghettifunk/facecube/engine/audio"
	"github.com/spaghettifunk/facecube/engine/core"
	"github.com/spaghettifunk/facecube/engine/platform"
	"github.com/spaghettifunk/facecube/engine/renderer"
	"github.com/spaghettifunk/facecube/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageBooting:
		return "booting"
	case EngineStageBootComplete:
		return "boot complete"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	default:
		return "uninitialized"
	}
}

type Option func(*options)

type options struct {
	screen tcell.Screen
	clock  core.TimeProvider
}

// WithScreen runs the engine on screen instead of the controlling terminal.
func WithScreen(s tcell.Screen) Option {
	return func(o *options) { o.screen = s }
}

// WithTimeProvider replaces the wall clock.
func WithTimeProvider(tp core.TimeProvider) Option {
	return func(o *options) { o.clock = tp }
}

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	config        *Config
	isRunning     atomic.Bool
	isSuspended   bool
	platform      *platform.Platform
	events        *core.EventSystem
	input         *core.Input
	systemManager *systems.SystemManager
	renderer      *renderer.Renderer
	audio         *audio.Player
	metrics       *core.Metrics
	width         uint32
	height        uint32
	clock         *core.Clock
	lastTime      float64
	logFile       *os.File
}

func New(g *Game, opts ...Option) (*Engine, error) {
	if g.Config == nil {
		cfg := DefaultConfig()
		g.Config = &cfg
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		config:       g.Config,
		clock:        core.NewClock(o.clock),
		metrics:      core.NewMetrics(),
	}
	if err := e.setupLogging(); err != nil {
		return nil, err
	}

	p, err := platform.New(o.screen)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	e.platform = p

	e.events = core.NewEventSystem()
	e.input = core.NewInput(e.events)

	sm, err := systems.NewSystemManager(g.Config.SystemManagerConfig(), e.events, e.clock.Provider())
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	e.systemManager = sm
	e.renderer = renderer.New(renderer.NewTerminalBackend(p.Screen))
	e.audio = audio.NewPlayer(g.Config.AudioConfig())

	g.SystemManager = sm
	g.Events = e.events
	g.Input = e.input
	g.Renderer = e.renderer
	g.Audio = e.audio
	g.Metrics = e.metrics
	g.Clock = e.clock.Provider()

	if g.FnBoot != nil {
		if err := g.FnBoot(); err != nil {
			core.LogError("game failed to boot: %s", err)
			return nil, err
		}
	}
	e.currentStage = EngineStageBootComplete
	return e, nil
}

func (e *Engine) setupLogging() error {
	app := e.config.Application
	level, err := core.ParseLogLevel(app.LogLevel)
	if err != nil {
		return err
	}
	core.SetLogLevel(level)

	if app.LogFile == "" {
		core.SetLogOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(app.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	e.logFile = f
	core.SetLogOutput(f)
	return nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	// initialize events
	if !e.events.Initialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	name := e.config.Application.Name
	if err := e.platform.Startup(name, e.input, e.events); err != nil {
		return err
	}
	w, h := e.platform.Size()
	e.width, e.height = uint32(w), uint32(h)

	if err := e.renderer.Initialize(name); err != nil {
		return err
	}

	if err := e.audio.Initialize(); err != nil {
		// no audio device is not fatal
		core.LogWarn("audio disabled: %s", err)
	}

	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}

	// content loads start once the game listens for them
	if err := e.systemManager.Initialize(); err != nil {
		return err
	}

	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	targetFPS := e.config.Application.TargetFPS
	if targetFPS <= 0 {
		targetFPS = 60
	}
	targetFrameSeconds := 1.0 / float64(targetFPS)

	for e.isRunning.Load() {
		frameStart := time.Now()
		if err := e.Frame(); err != nil {
			e.isRunning.Store(false)
			return err
		}

		// Figure out how long the frame took and give the rest back to the OS.
		frameElapsed := time.Since(frameStart).Seconds()
		e.metrics.Update(frameElapsed)
		if remaining := targetFrameSeconds - frameElapsed; remaining > 0 {
			time.Sleep(time.Duration(remaining * float64(time.Second)))
		}
	}
	return nil
}

// Frame pumps input and runs a single update and render pass.
func (e *Engine) Frame() error {
	e.platform.PumpMessages()
	if e.isSuspended {
		return nil
	}

	// Update clock and get delta time.
	e.clock.Update()
	currentTime := e.clock.Elapsed()
	delta := currentTime - e.lastTime

	e.systemManager.Update()

	if err := e.gameInstance.FnUpdate(delta); err != nil {
		core.LogError("Game update failed, shutting down: %s", err)
		return err
	}

	packet := &renderer.RenderPacket{DeltaTime: delta}
	if err := e.gameInstance.FnRender(packet, delta); err != nil {
		core.LogError("Game render failed, shutting down: %s", err)
		return err
	}
	if err := e.renderer.DrawFrame(packet); err != nil {
		return err
	}

	// NOTE: Input update/state copying should always be handled
	// after any input should be recorded; I.E. before this line.
	e.input.Update(delta)
	e.lastTime = currentTime
	return nil
}

// Running reports whether the frame loop should keep going.
func (e *Engine) Running() bool {
	return e.isRunning.Load()
}

// Stop ends the frame loop after the current frame. Safe from any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning.Store(false)

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("game shutdown failed: %s", err)
		}
	}
	if err := e.systemManager.Shutdown(); err != nil {
		core.LogError("failed to shut down systems: %s", err)
	}
	e.audio.Shutdown()
	if err := e.renderer.Shutdown(); err != nil {
		core.LogError("failed to shut down renderer: %s", err)
	}
	if err := e.platform.Shutdown(); err != nil {
		core.LogError("failed to shut down platform: %s", err)
	}
	if err := e.events.Shutdown(); err != nil {
		core.LogError("failed to shut down events: %s", err)
	}
	core.LogInfo("%s shut down", e.config.Application.Name)
	if e.logFile != nil {
		core.SetLogOutput(io.Discard)
		return e.logFile.Close()
	}
	return nil
}

func (e *Engine) onEvent(context core.EventContext) bool {
	if context.Type == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	quit := ke.KeyCode == core.KEY_ESCAPE || ke.KeyCode == core.KEY_CTRL_C ||
		(ke.KeyCode == core.KEY_RUNE && (ke.Rune == 'q' || ke.Rune == 'Q'))
	if !quit {
		return false
	}
	// NOTE: Technically firing an event to itself, but there may be other listeners.
	e.events.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
	// Block anything else from processing this.
	return true
}

func (e *Engine) onResized(context core.EventContext) bool {
	re, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	width, height := re.Width, re.Height
	if width == e.width && height == e.height {
		return false
	}
	e.width, e.height = width, height
	core.LogDebug("Terminal resize: %d, %d", width, height)

	// Handle a terminal too small to draw into
	if width == 0 || height == 0 {
		core.LogInfo("Terminal minimized, suspending application.")
		e.isSuspended = true
		return false
	}
	if e.isSuspended {
		core.LogInfo("Terminal restored, resuming application.")
		e.isSuspended = false
	}
	if err := e.renderer.OnResize(uint16(width), uint16(height)); err != nil {
		core.LogError(err.Error())
	}
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	return false
}
