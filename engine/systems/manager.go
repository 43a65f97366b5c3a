package systems

import (
	"github.com/spaghettifunk/virtcam/engine/core"
	"github.com/spaghettifunk/virtcam/engine/renderer"
)

type SystemManager struct {
	CameraSystem   *CameraSystem
	RendererSystem *RendererSystem
}

func NewSystemManager(appName string, width, height uint32, cameraConfig *CameraSystemConfig, backend renderer.RendererBackend) (*SystemManager, error) {
	cfg := *cameraConfig
	cfg.Projection = cfg.Projection.WithViewport(width, height)

	cs, err := NewCameraSystem(&cfg)
	if err != nil {
		return nil, err
	}
	rs, err := NewRendererSystem(appName, width, height, backend)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		CameraSystem:   cs,
		RendererSystem: rs,
	}, nil
}

func (sm *SystemManager) Initialize() error {
	return sm.RendererSystem.Initialize(sm.CameraSystem)
}

func (sm *SystemManager) Update(input *core.InputState, deltaTime float64) {
	sm.CameraSystem.Update(input, deltaTime)
}

func (sm *SystemManager) DrawFrame(deltaTime float64) error {
	return sm.RendererSystem.DrawFrame(sm.CameraSystem, deltaTime)
}

func (sm *SystemManager) OnResize(width, height uint32) error {
	sm.CameraSystem.OnResize(width, height)
	return sm.RendererSystem.OnResize(width, height)
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.RendererSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.CameraSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
