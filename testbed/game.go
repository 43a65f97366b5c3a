package testbed

import (
	"fmt"

	"github.com/spaghettifunk/virtcam/engine"
	"github.com/spaghettifunk/virtcam/engine/config"
	"github.com/spaghettifunk/virtcam/engine/core"
	"github.com/spaghettifunk/virtcam/engine/renderer/components"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	DeltaTime   float64
	WorldCamera *components.Camera

	width  uint32
	height uint32
}

func NewTestGame(cfg *config.Config, configPath string) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				Config:     cfg,
				ConfigPath: configPath,
			},
			State: &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}

	state := g.State.(*gameState)
	state.WorldCamera = g.SystemManager.CameraSystem.GetDefault()

	core.LogInfo("Camera controls: A/D strafe, PageUp/PageDown lift, W/S move, Left/Right turn, P prints the pose, R resets, Esc quits.")
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	state.DeltaTime = deltaTime

	if g.Input.Released(core.KEY_P) {
		pos := state.WorldCamera.GetPosition()
		core.LogInfo("Pos: [%.3f, %.3f, %.3f] yaw: %.2f", pos.X, pos.Y, pos.Z, state.WorldCamera.GetYaw())
	}
	if g.Input.Released(core.KEY_R) {
		core.LogDebug("Resetting camera.")
		state.WorldCamera.Reset()
	}
	return nil
}

func (g *TestGame) Render(deltaTime float64) error {
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) Shutdown() error {
	return nil
}
