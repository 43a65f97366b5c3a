package systems

import (
	"testing"

	"github.com/spaghettifunk/virtcam/engine/core"
	"github.com/spaghettifunk/virtcam/engine/math"
	"github.com/spaghettifunk/virtcam/engine/renderer"
)

func newTestManager(t *testing.T) (*SystemManager, *renderer.NullBackend) {
	t.Helper()
	backend := renderer.NewNullBackend()
	sm, err := NewSystemManager("test", 640, 480, testCameraConfig(), backend)
	if err != nil {
		t.Fatal(err)
	}
	if err := sm.Initialize(); err != nil {
		t.Fatal(err)
	}
	return sm, backend
}

func TestRendererSystemRequiresBackend(t *testing.T) {
	if _, err := NewRendererSystem("test", 1, 1, nil); err == nil {
		t.Fatalf("nil backend accepted")
	}
}

func TestRendererUploadsOnInitialize(t *testing.T) {
	sm, backend := newTestManager(t)

	if backend.Uploads[renderer.UNIFORM_VIEW] != 1 || backend.Uploads[renderer.UNIFORM_PROJECTION] != 1 {
		t.Fatalf("uploads = %v, want one of each", backend.Uploads)
	}
	if got := backend.Uniforms[renderer.UNIFORM_VIEW]; got != sm.CameraSystem.Camera.GetView().Data {
		t.Fatalf("view uniform = %v", got)
	}
	want := math.BuildProjection(math.ProjectionParams{Near: 0.1, Far: 100, FOV: math.DegToRad(67), Aspect: 640.0 / 480.0})
	if got := backend.Uniforms[renderer.UNIFORM_PROJECTION]; got != want.Data {
		t.Fatalf("projection uniform = %v, want %v", got, want.Data)
	}
}

func TestRendererSkipsIdleFrames(t *testing.T) {
	sm, backend := newTestManager(t)
	input := core.NewInputState(nil)

	for i := 0; i < 5; i++ {
		sm.Update(input, 0.016)
		if err := sm.DrawFrame(0.016); err != nil {
			t.Fatal(err)
		}
	}
	if backend.FrameNumber != 5 {
		t.Fatalf("frames = %d, want 5", backend.FrameNumber)
	}
	if backend.Uploads[renderer.UNIFORM_VIEW] != 1 || backend.Uploads[renderer.UNIFORM_PROJECTION] != 1 {
		t.Fatalf("idle frames uploaded matrices: %v", backend.Uploads)
	}
}

func TestRendererUploadsViewWhenMoving(t *testing.T) {
	sm, backend := newTestManager(t)
	input := core.NewInputState(nil)
	input.ProcessKey(core.KEY_S, true)

	sm.Update(input, 0.5)
	if err := sm.DrawFrame(0.5); err != nil {
		t.Fatal(err)
	}

	if backend.Uploads[renderer.UNIFORM_VIEW] != 2 {
		t.Fatalf("view uploads = %d, want 2", backend.Uploads[renderer.UNIFORM_VIEW])
	}
	if backend.Uploads[renderer.UNIFORM_PROJECTION] != 1 {
		t.Fatalf("projection re-uploaded without a change")
	}
	// Camera moved back from z=2 to z=2.5, so the world origin sits 2.5 units ahead.
	view := backend.Uniforms[renderer.UNIFORM_VIEW]
	if view[14] != -2.5 {
		t.Fatalf("view translation z = %v, want -2.5", view[14])
	}
}

func TestRendererUploadsViewSetBeforeIdleUpdate(t *testing.T) {
	sm, backend := newTestManager(t)
	input := core.NewInputState(nil)

	// A handler moves the camera while messages are pumped, then the frame
	// runs an idle update.
	sm.CameraSystem.Camera.SetPosition(math.NewVec3(7, 0, 0))
	sm.Update(input, 0.016)
	if err := sm.DrawFrame(0.016); err != nil {
		t.Fatal(err)
	}

	if backend.Uploads[renderer.UNIFORM_VIEW] != 2 {
		t.Fatalf("view uploads = %d, want 2", backend.Uploads[renderer.UNIFORM_VIEW])
	}
	if got := backend.Uniforms[renderer.UNIFORM_VIEW]; got != sm.CameraSystem.Camera.GetView().Data {
		t.Fatalf("stale view uniform %v, camera view %v", got, sm.CameraSystem.Camera.GetView().Data)
	}
	if sm.CameraSystem.Camera.Changed() {
		t.Fatalf("upload should clear the camera change")
	}

	// Nothing new to send on the next idle frame.
	sm.Update(input, 0.016)
	if err := sm.DrawFrame(0.016); err != nil {
		t.Fatal(err)
	}
	if backend.Uploads[renderer.UNIFORM_VIEW] != 2 {
		t.Fatalf("view uploads = %d after an idle frame, want 2", backend.Uploads[renderer.UNIFORM_VIEW])
	}
}

func TestRendererUploadsProjectionOnResize(t *testing.T) {
	sm, backend := newTestManager(t)

	if err := sm.OnResize(1280, 480); err != nil {
		t.Fatal(err)
	}
	if err := sm.DrawFrame(0.016); err != nil {
		t.Fatal(err)
	}
	if backend.Uploads[renderer.UNIFORM_PROJECTION] != 2 {
		t.Fatalf("projection uploads = %d, want 2", backend.Uploads[renderer.UNIFORM_PROJECTION])
	}
	if backend.Width != 1280 || sm.RendererSystem.FramebufferWidth != 1280 {
		t.Fatalf("resize not forwarded")
	}

	if err := sm.DrawFrame(0.016); err != nil {
		t.Fatal(err)
	}
	if backend.Uploads[renderer.UNIFORM_PROJECTION] != 2 {
		t.Fatalf("projection uploaded again without a change")
	}
}
