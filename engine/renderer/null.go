package renderer

import (
	"fmt"

	"github.com/spaghettifunk/virtcam/engine/core"
)

// NullBackend renders nothing. It remembers the last value written to every
// uniform and counts uploads, which makes it usable headless and in tests.
type NullBackend struct {
	Uniforms    map[string][16]float32
	Uploads     map[string]int
	FrameNumber uint64
	Width       uint32
	Height      uint32

	inFrame bool
}

func NewNullBackend() *NullBackend {
	return &NullBackend{
		Uniforms: make(map[string][16]float32),
		Uploads:  make(map[string]int),
	}
}

func (nb *NullBackend) Initialize(appName string, appWidth, appHeight uint32) error {
	nb.Width = appWidth
	nb.Height = appHeight
	core.LogInfo("Null renderer backend initialized for '%s' (%dx%d).", appName, appWidth, appHeight)
	return nil
}

func (nb *NullBackend) Shutdown() error {
	return nil
}

func (nb *NullBackend) Resized(width, height uint32) error {
	nb.Width = width
	nb.Height = height
	return nil
}

func (nb *NullBackend) BeginFrame(deltaTime float64) error {
	if nb.inFrame {
		return fmt.Errorf("BeginFrame called twice without EndFrame (frame %d)", nb.FrameNumber)
	}
	nb.inFrame = true
	return nil
}

func (nb *NullBackend) EndFrame(deltaTime float64) error {
	if !nb.inFrame {
		return fmt.Errorf("EndFrame called without BeginFrame (frame %d)", nb.FrameNumber)
	}
	nb.inFrame = false
	nb.FrameNumber++
	return nil
}

func (nb *NullBackend) SetUniformMat4(name string, data []float32) error {
	if len(data) != 16 {
		return fmt.Errorf("uniform '%s' expects 16 floats, got %d", name, len(data))
	}
	var m [16]float32
	copy(m[:], data)
	nb.Uniforms[name] = m
	nb.Uploads[name]++
	core.LogDebug("uniform '%s' <- %v", name, m)
	return nil
}
