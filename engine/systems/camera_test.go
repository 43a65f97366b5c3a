package systems

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/virtcam/engine/core"
	"github.com/spaghettifunk/virtcam/engine/math"
)

func testCameraConfig() *CameraSystemConfig {
	return &CameraSystemConfig{
		Position:  math.NewVec3(0, 0, 2),
		MoveSpeed: 1,
		YawSpeed:  10,
		Projection: math.ProjectionParams{
			Near:   0.1,
			Far:    100,
			FOV:    math.DegToRad(67),
			Aspect: 640.0 / 480.0,
		},
		Bindings: DefaultCameraBindings(),
	}
}

func TestCameraSystemConfigValidation(t *testing.T) {
	cases := map[string]func(*CameraSystemConfig){
		"near is zero":      func(c *CameraSystemConfig) { c.Projection.Near = 0 },
		"far before near":   func(c *CameraSystemConfig) { c.Projection.Far = 0.05 },
		"near equals far":   func(c *CameraSystemConfig) { c.Projection.Far = c.Projection.Near },
		"fov too wide":      func(c *CameraSystemConfig) { c.Projection.FOV = math.K_PI },
		"fov zero":          func(c *CameraSystemConfig) { c.Projection.FOV = 0 },
		"aspect zero":       func(c *CameraSystemConfig) { c.Projection.Aspect = 0 },
		"negative speed":    func(c *CameraSystemConfig) { c.MoveSpeed = -1 },
		"negative yaw rate": func(c *CameraSystemConfig) { c.YawSpeed = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := testCameraConfig()
			mutate(cfg)
			if _, err := NewCameraSystem(cfg); !errors.Is(err, core.ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestCameraSystemUpdateFromKeys(t *testing.T) {
	cs, err := NewCameraSystem(testCameraConfig())
	if err != nil {
		t.Fatal(err)
	}
	input := core.NewInputState(nil)

	cs.Update(input, 1)
	if cs.Camera.Changed() {
		t.Fatalf("camera changed with no keys down")
	}

	input.ProcessKey(core.KEY_W, true)
	input.ProcessKey(core.KEY_D, true)
	input.ProcessKey(core.KEY_LEFT, true)
	cs.Update(input, 0.5)

	want := math.NewVec3(0.5, 0, 1.5)
	if cs.Camera.Position != want {
		t.Fatalf("position = %v, want %v", cs.Camera.Position, want)
	}
	if cs.Camera.Yaw != 5 {
		t.Fatalf("yaw = %v, want 5", cs.Camera.Yaw)
	}

	input.ProcessKey(core.KEY_PRIOR, true)
	input.ProcessKey(core.KEY_W, false)
	input.ProcessKey(core.KEY_D, false)
	input.ProcessKey(core.KEY_LEFT, false)
	cs.Update(input, 0.5)
	if cs.Camera.Position.Y != 0.5 {
		t.Fatalf("page up should lift the camera, y = %v", cs.Camera.Position.Y)
	}
}

func TestCameraSystemOnResize(t *testing.T) {
	cs, err := NewCameraSystem(testCameraConfig())
	if err != nil {
		t.Fatal(err)
	}
	cs.Projection.ClearChanged()
	before := cs.Projection.GetMatrix()

	cs.OnResize(640, 480)
	if cs.Projection.Changed() {
		t.Fatalf("same aspect should not rebuild the projection")
	}

	cs.OnResize(0, 480)
	if cs.Projection.Changed() || cs.Projection.GetMatrix() != before {
		t.Fatalf("minimized window touched the projection")
	}

	cs.OnResize(1000, 500)
	if !cs.Projection.Changed() {
		t.Fatalf("new aspect should rebuild the projection")
	}
	p := cs.Projection.GetMatrix()
	if !math.ApproxEqual(p.At(0, 0)*2, p.At(1, 1), 1e-5) {
		t.Fatalf("Sx = %v, Sy = %v for aspect 2", p.At(0, 0), p.At(1, 1))
	}
	if cs.Config.Projection.Aspect != 2 {
		t.Fatalf("config aspect = %v, want 2", cs.Config.Projection.Aspect)
	}
}

func TestCameraSystemApplyConfig(t *testing.T) {
	cs, err := NewCameraSystem(testCameraConfig())
	if err != nil {
		t.Fatal(err)
	}
	cs.OnResize(800, 400)
	cs.Projection.ClearChanged()
	cs.Camera.SetPosition(math.NewVec3(4, 0, 0))

	next := testCameraConfig()
	next.MoveSpeed = 3
	next.YawSpeed = 45
	next.Projection.FOV = math.DegToRad(90)
	next.Bindings.MoveForward = core.KEY_UP

	if err := cs.ApplyConfig(next); err != nil {
		t.Fatal(err)
	}
	if cs.Camera.MoveSpeed != 3 || cs.Camera.YawSpeed != 45 {
		t.Fatalf("speeds not applied: %v %v", cs.Camera.MoveSpeed, cs.Camera.YawSpeed)
	}
	if cs.Camera.Position != math.NewVec3(4, 0, 0) {
		t.Fatalf("reload moved the camera to %v", cs.Camera.Position)
	}
	if !cs.Projection.Changed() {
		t.Fatalf("new fov should rebuild the projection")
	}
	if got := cs.Projection.Params().Aspect; got != 2 {
		t.Fatalf("aspect = %v, reload should keep the live framebuffer aspect", got)
	}

	input := core.NewInputState(nil)
	input.ProcessKey(core.KEY_UP, true)
	cs.Update(input, 1)
	if cs.Camera.Position.Z != -3 {
		t.Fatalf("rebound forward key not used, z = %v", cs.Camera.Position.Z)
	}

	bad := testCameraConfig()
	bad.Projection.Near = 200
	if err := cs.ApplyConfig(bad); !errors.Is(err, core.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if cs.Camera.MoveSpeed != 3 {
		t.Fatalf("rejected config was partially applied")
	}
}
