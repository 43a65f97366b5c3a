package systems

import (
	"fmt"

	"github.com/spaghettifunk/virtcam/engine/core"
	"github.com/spaghettifunk/virtcam/engine/math"
	"github.com/spaghettifunk/virtcam/engine/renderer/components"
)

// CameraBindings maps every camera action to a key.
type CameraBindings struct {
	MoveLeft     core.KeyCode
	MoveRight    core.KeyCode
	MoveUp       core.KeyCode
	MoveDown     core.KeyCode
	MoveForward  core.KeyCode
	MoveBackward core.KeyCode
	YawLeft      core.KeyCode
	YawRight     core.KeyCode
}

// DefaultCameraBindings is the classic layout: A/D strafe, PageUp/PageDown
// lift, W/S move along Z and the arrow keys turn.
func DefaultCameraBindings() CameraBindings {
	return CameraBindings{
		MoveLeft:     core.KEY_A,
		MoveRight:    core.KEY_D,
		MoveUp:       core.KEY_PRIOR,
		MoveDown:     core.KEY_NEXT,
		MoveForward:  core.KEY_W,
		MoveBackward: core.KEY_S,
		YawLeft:      core.KEY_LEFT,
		YawRight:     core.KEY_RIGHT,
	}
}

// Input builds the camera input for the current keyboard snapshot.
func (b CameraBindings) Input(input *core.InputState) components.CameraInput {
	return components.CameraInput{
		MoveLeft:     input.IsKeyDown(b.MoveLeft),
		MoveRight:    input.IsKeyDown(b.MoveRight),
		MoveUp:       input.IsKeyDown(b.MoveUp),
		MoveDown:     input.IsKeyDown(b.MoveDown),
		MoveForward:  input.IsKeyDown(b.MoveForward),
		MoveBackward: input.IsKeyDown(b.MoveBackward),
		YawLeft:      input.IsKeyDown(b.YawLeft),
		YawRight:     input.IsKeyDown(b.YawRight),
	}
}

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	Position  math.Vec3
	Yaw       float32
	MoveSpeed float32
	YawSpeed  float32
	// Projection parameters. Aspect is overwritten by OnResize.
	Projection math.ProjectionParams
	Bindings   CameraBindings
}

// Validate checks the preconditions the projection math relies on.
func (cfg *CameraSystemConfig) Validate() error {
	p := cfg.Projection
	if !(p.Near > 0 && p.Near < p.Far) {
		return fmt.Errorf("%w: projection needs 0 < near < far, got near=%v far=%v", core.ErrInvalidConfig, p.Near, p.Far)
	}
	if !(p.FOV > 0 && p.FOV < math.K_PI) {
		return fmt.Errorf("%w: field of view must be in (0, 180) degrees, got %v", core.ErrInvalidConfig, math.RadToDeg(p.FOV))
	}
	if !(p.Aspect > 0) {
		return fmt.Errorf("%w: aspect ratio must be > 0, got %v", core.ErrInvalidConfig, p.Aspect)
	}
	if cfg.MoveSpeed < 0 || cfg.YawSpeed < 0 {
		return fmt.Errorf("%w: camera speeds must not be negative", core.ErrInvalidConfig)
	}
	return nil
}

// CameraSystem owns the single world camera, its projection and key bindings.
// It is only touched from the render loop.
type CameraSystem struct {
	Config     *CameraSystemConfig
	Camera     *components.Camera
	Projection *components.Projection
}

func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if err := config.Validate(); err != nil {
		core.LogError("func NewCameraSystem - %s", err)
		return nil, err
	}
	cs := &CameraSystem{
		Config:     config,
		Camera:     components.NewCamera(config.Position, config.Yaw, config.MoveSpeed, config.YawSpeed),
		Projection: components.NewProjection(config.Projection),
	}
	core.LogInfo("Camera system initialized with camera %s.", cs.Camera.ID)
	return cs, nil
}

// Update applies the keyboard snapshot to the camera.
func (cs *CameraSystem) Update(input *core.InputState, deltaTime float64) {
	cs.Camera.Update(cs.Config.Bindings.Input(input), deltaTime)
}

// OnResize derives the aspect ratio from the new framebuffer size. A
// minimized window (zero width or height) keeps the previous projection.
func (cs *CameraSystem) OnResize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	params := cs.Projection.Params().WithViewport(width, height)
	if cs.Projection.SetParams(params) {
		cs.Config.Projection = params
		core.LogDebug("Projection rebuilt for %dx%d (aspect %.3f).", width, height, params.Aspect)
	}
}

// ApplyConfig takes speeds, bindings and projection parameters from a reloaded
// configuration. The camera pose is kept, and the current aspect ratio wins
// over the configured one since it comes from the live framebuffer.
func (cs *CameraSystem) ApplyConfig(config *CameraSystemConfig) error {
	next := *config
	next.Projection.Aspect = cs.Projection.Params().Aspect
	if err := next.Validate(); err != nil {
		return err
	}

	cs.Camera.MoveSpeed = next.MoveSpeed
	cs.Camera.YawSpeed = next.YawSpeed
	if cs.Projection.SetParams(next.Projection) {
		core.LogInfo("Projection parameters reloaded.")
	}
	cs.Config = &next
	return nil
}

// GetDefault returns the world camera.
func (cs *CameraSystem) GetDefault() *components.Camera {
	return cs.Camera
}

func (cs *CameraSystem) Shutdown() error {
	return nil
}
