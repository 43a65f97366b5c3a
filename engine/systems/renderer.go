package systems

import (
	"fmt"

	"github.com/spaghettifunk/virtcam/engine/core"
	"github.com/spaghettifunk/virtcam/engine/renderer"
)

// RendererSystem pushes the camera matrices to the backend. The view matrix
// is uploaded only on frames where the camera moved, the projection only
// after it was rebuilt.
type RendererSystem struct {
	backend renderer.RendererBackend

	AppName   string
	AppWidth  uint32
	AppHeight uint32

	// The current window framebuffer width.
	FramebufferWidth uint32
	// The current window framebuffer height.
	FramebufferHeight uint32
}

func NewRendererSystem(appName string, appWidth, appHeight uint32, backend renderer.RendererBackend) (*RendererSystem, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: renderer backend is required", core.ErrInvalidConfig)
	}
	return &RendererSystem{
		backend:           backend,
		AppName:           appName,
		AppWidth:          appWidth,
		AppHeight:         appHeight,
		FramebufferWidth:  appWidth,
		FramebufferHeight: appHeight,
	}, nil
}

// Initialize starts the backend and uploads both matrices once, since
// nothing has been sent to the GPU yet.
func (r *RendererSystem) Initialize(cameras *CameraSystem) error {
	if err := r.backend.Initialize(r.AppName, r.AppWidth, r.AppHeight); err != nil {
		return err
	}
	if err := r.uploadView(cameras); err != nil {
		return err
	}
	return r.uploadProjection(cameras)
}

func (r *RendererSystem) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *RendererSystem) OnResize(width, height uint32) error {
	r.FramebufferWidth = width
	r.FramebufferHeight = height
	return r.backend.Resized(width, height)
}

func (r *RendererSystem) DrawFrame(cameras *CameraSystem, deltaTime float64) error {
	if err := r.backend.BeginFrame(deltaTime); err != nil {
		return err
	}
	if cameras.Camera.Changed() {
		if err := r.uploadView(cameras); err != nil {
			return err
		}
	}
	if cameras.Projection.Changed() {
		if err := r.uploadProjection(cameras); err != nil {
			return err
		}
	}
	return r.backend.EndFrame(deltaTime)
}

func (r *RendererSystem) uploadView(cameras *CameraSystem) error {
	view := cameras.Camera.GetView()
	if err := r.backend.SetUniformMat4(renderer.UNIFORM_VIEW, view.Slice()); err != nil {
		return fmt.Errorf("failed to upload view matrix: %w", err)
	}
	cameras.Camera.ClearChanged()
	return nil
}

func (r *RendererSystem) uploadProjection(cameras *CameraSystem) error {
	proj := cameras.Projection.GetMatrix()
	if err := r.backend.SetUniformMat4(renderer.UNIFORM_PROJECTION, proj.Slice()); err != nil {
		return fmt.Errorf("failed to upload projection matrix: %w", err)
	}
	cameras.Projection.ClearChanged()
	return nil
}
