package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/virtcam/engine/config"
	"github.com/spaghettifunk/virtcam/engine/core"
	"github.com/spaghettifunk/virtcam/engine/math"
	"github.com/spaghettifunk/virtcam/engine/renderer"
	"github.com/spaghettifunk/virtcam/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Platform is the window the engine runs in.
type Platform interface {
	Startup(applicationName string, x, y, width, height uint32) error
	Shutdown() error
	// PumpMessages processes window events and reports whether the window is still open.
	PumpMessages() bool
	// WaitMessages is PumpMessages that blocks until at least one event arrives.
	WaitMessages() bool
	// Wake unblocks a pending WaitMessages. It must be safe to call from any goroutine.
	Wake()
	SetTitle(title string)
}

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	isSuspended   bool
	stopRequested atomic.Bool
	platform      Platform
	systemManager *systems.SystemManager
	events        *core.EventSystem
	input         *core.InputState
	watcher       *config.Watcher
	clock         *core.Clock
	metrics       *core.Metrics
	width         uint32
	height        uint32
	lastTime      float64
}

// New wires the engine around a game. The platform is built by newPlatform so
// it can share the engine's input state and event system.
func New(g *Game, backend renderer.RendererBackend, newPlatform func(*core.InputState, *core.EventSystem) Platform) (*Engine, error) {
	if g.ApplicationConfig == nil || g.ApplicationConfig.Config == nil {
		return nil, fmt.Errorf("%w: game has no application config", core.ErrInvalidConfig)
	}
	cfg := g.ApplicationConfig.Config

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	core.SetLogLevel(level)

	cameraConfig, err := cfg.CameraSystemConfig()
	if err != nil {
		return nil, err
	}

	app := cfg.Application
	sm, err := systems.NewSystemManager(app.Name, app.Width, app.Height, cameraConfig, backend)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	events := core.NewEventSystem()
	input := core.NewInputState(events)

	g.SystemManager = sm
	g.Input = input

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		platform:      newPlatform(input, events),
		systemManager: sm,
		events:        events,
		input:         input,
		clock:         core.NewClock(),
		metrics:       core.NewMetrics(),
		isRunning:     true,
		isSuspended:   false,
		width:         app.Width,
		height:        app.Height,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	app := e.gameInstance.ApplicationConfig.Config.Application
	if err := e.platform.Startup(app.Name, app.StartPosX, app.StartPosY, app.Width, app.Height); err != nil {
		return err
	}

	if err := e.systemManager.Initialize(); err != nil {
		return err
	}

	if path := e.gameInstance.ApplicationConfig.ConfigPath; path != "" {
		w, err := config.NewWatcher(path)
		if err != nil {
			core.LogWarn("config hot reload disabled: %s", err)
		} else {
			e.watcher = w
		}
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning {
		if e.stopRequested.Load() {
			core.LogInfo("Stop requested, leaving the main loop.")
			e.isRunning = false
			break
		}

		// A minimized window has nothing to draw, so sleep until the next event.
		wasSuspended := e.isSuspended
		var open bool
		if wasSuspended {
			open = e.platform.WaitMessages()
		} else {
			open = e.platform.PumpMessages()
		}
		if !open {
			e.isRunning = false
			break
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		e.lastTime = currentTime

		// The time spent minimized is not simulated.
		if wasSuspended || e.isSuspended {
			continue
		}
		// Read every frame so a reloaded value takes effect.
		if maxDelta := e.gameInstance.ApplicationConfig.Config.Application.MaxFrameDelta; maxDelta > 0 {
			delta = math.Clamp(delta, 0, maxDelta)
		}

		if err := e.frame(delta); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) frame(delta float64) error {
	e.applyConfigReload()

	e.systemManager.Update(e.input, delta)

	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("Game update failed, shutting down: %s", err)
			e.isRunning = false
			return err
		}
	}

	if e.gameInstance.FnRender != nil {
		if err := e.gameInstance.FnRender(delta); err != nil {
			core.LogError("Game render failed, shutting down: %s", err)
			e.isRunning = false
			return err
		}
	}

	if err := e.systemManager.DrawFrame(delta); err != nil {
		core.LogError("DrawFrame failed, shutting down: %s", err)
		e.isRunning = false
		return err
	}

	e.metrics.Update(delta)
	if e.metrics.Refreshed() {
		app := e.gameInstance.ApplicationConfig.Config.Application
		e.platform.SetTitle(fmt.Sprintf("%s @ fps: %.2f (%.2f ms)", app.Name, e.metrics.FPS(), e.metrics.FrameTime()))
	}

	e.input.Update(delta)
	return nil
}

// applyConfigReload drains at most one pending config from the watcher. It
// runs on the render loop so camera state is never touched concurrently.
func (e *Engine) applyConfigReload() {
	if e.watcher == nil {
		return
	}
	select {
	case cfg := <-e.watcher.Updates():
		cameraConfig, err := cfg.CameraSystemConfig()
		if err == nil {
			err = e.systemManager.CameraSystem.ApplyConfig(cameraConfig)
		}
		if err != nil {
			core.LogWarn("reloaded config rejected: %s", err)
			return
		}
		if level, err := cfg.LogLevel(); err == nil {
			core.SetLogLevel(level)
		}
		// Window geometry is not live-reloadable; keep the running values.
		cfg.Application.Name = e.gameInstance.ApplicationConfig.Config.Application.Name
		cfg.Application.Width = e.width
		cfg.Application.Height = e.height
		e.gameInstance.ApplicationConfig.Config = cfg
	default:
	}
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			core.LogWarn("closing config watcher: %s", err)
		}
	}
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			return err
		}
	}
	e.events.Shutdown()
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}
	return nil
}

// Stop asks the main loop to exit after the current frame. It is safe to
// call from any goroutine.
func (e *Engine) Stop() {
	e.stopRequested.Store(true)
	e.platform.Wake()
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

// Events exposes the event system so games can register their own handlers.
func (e *Engine) Events() *core.EventSystem {
	return e.events
}

func (e *Engine) onEvent(context core.EventContext) bool {
	if context.Type == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
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
	if ke.KeyCode == core.KEY_ESCAPE {
		e.events.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	width := se.WindowWidth
	height := se.WindowHeight
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if err := e.systemManager.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	return true
}
