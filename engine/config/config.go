package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/virtcam/engine/core"
	"github.com/spaghettifunk/virtcam/engine/math"
	"github.com/spaghettifunk/virtcam/engine/systems"
)

type Config struct {
	Application ApplicationConfig `toml:"application"`
	Camera      CameraConfig      `toml:"camera"`
	Projection  ProjectionConfig  `toml:"projection"`
	Bindings    BindingsConfig    `toml:"bindings"`
}

type ApplicationConfig struct {
	Name      string `toml:"name"`
	StartPosX uint32 `toml:"start_pos_x"`
	StartPosY uint32 `toml:"start_pos_y"`
	Width     uint32 `toml:"width"`
	Height    uint32 `toml:"height"`
	LogLevel  string `toml:"log_level"`
	LogFile   string `toml:"log_file"` // copy of the log, truncated at startup; empty disables it
	// Upper bound for a single frame delta in seconds; 0 disables the clamp.
	MaxFrameDelta float64 `toml:"max_frame_delta"`
}

type CameraConfig struct {
	Position  [3]float32 `toml:"position"`
	Yaw       float32    `toml:"yaw"`
	MoveSpeed float32    `toml:"move_speed"`
	YawSpeed  float32    `toml:"yaw_speed"`
}

type ProjectionConfig struct {
	FOVDegrees float32 `toml:"fov_degrees"`
	Near       float32 `toml:"near"`
	Far        float32 `toml:"far"`
}

// BindingsConfig holds key names, see core.ParseKeyCode.
type BindingsConfig struct {
	MoveLeft     string `toml:"move_left"`
	MoveRight    string `toml:"move_right"`
	MoveUp       string `toml:"move_up"`
	MoveDown     string `toml:"move_down"`
	MoveForward  string `toml:"move_forward"`
	MoveBackward string `toml:"move_backward"`
	YawLeft      string `toml:"yaw_left"`
	YawRight     string `toml:"yaw_right"`
}

// Default returns the settings of the classic virtual camera demo.
func Default() *Config {
	return &Config{
		Application: ApplicationConfig{
			Name:          "Virtual Camera",
			StartPosX:     100,
			StartPosY:     100,
			Width:         640,
			Height:        480,
			LogLevel:      "info",
			LogFile:       "virtcam.log",
			MaxFrameDelta: 0.25,
		},
		Camera: CameraConfig{
			Position:  [3]float32{0, 0, 1},
			Yaw:       0,
			MoveSpeed: 1,
			YawSpeed:  10,
		},
		Projection: ProjectionConfig{
			FOVDegrees: 67,
			Near:       0.1,
			Far:        100,
		},
		Bindings: BindingsConfig{
			MoveLeft:     "A",
			MoveRight:    "D",
			MoveUp:       "PageUp",
			MoveDown:     "PageDown",
			MoveForward:  "W",
			MoveBackward: "S",
			YawLeft:      "Left",
			YawRight:     "Right",
		},
	}
}

// Load reads path on top of the defaults. Keys missing from the file keep
// their default value; unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", core.ErrInvalidConfig, strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, fmt.Errorf("%w: line %d column %d: %s", core.ErrInvalidConfig, row, col, decodeErr.Error())
		}
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks everything that can be checked without a window.
func (c *Config) Validate() error {
	if c.Application.Width == 0 || c.Application.Height == 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", core.ErrInvalidConfig, c.Application.Width, c.Application.Height)
	}
	if c.Application.MaxFrameDelta < 0 {
		return fmt.Errorf("%w: max_frame_delta must not be negative", core.ErrInvalidConfig)
	}
	if !(c.Projection.FOVDegrees > 0 && c.Projection.FOVDegrees < 180) {
		return fmt.Errorf("%w: fov_degrees must be in (0, 180), got %v", core.ErrInvalidConfig, c.Projection.FOVDegrees)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	cs, err := c.CameraSystemConfig()
	if err != nil {
		return err
	}
	return cs.Validate()
}

func (c *Config) LogLevel() (core.LogLevel, error) {
	return core.ParseLogLevel(c.Application.LogLevel)
}

// CameraSystemConfig converts the file representation into what the camera
// system consumes. The aspect ratio comes from the configured window size.
func (c *Config) CameraSystemConfig() (*systems.CameraSystemConfig, error) {
	bindings, err := c.Bindings.resolve()
	if err != nil {
		return nil, err
	}
	p := c.Camera.Position
	return &systems.CameraSystemConfig{
		Position:  math.NewVec3(p[0], p[1], p[2]),
		Yaw:       c.Camera.Yaw,
		MoveSpeed: c.Camera.MoveSpeed,
		YawSpeed:  c.Camera.YawSpeed,
		Projection: math.ProjectionParams{
			Near: c.Projection.Near,
			Far:  c.Projection.Far,
			FOV:  math.DegToRad(c.Projection.FOVDegrees),
		}.WithViewport(c.Application.Width, c.Application.Height),
		Bindings: bindings,
	}, nil
}

func (b BindingsConfig) resolve() (systems.CameraBindings, error) {
	out := systems.CameraBindings{}
	keys := []struct {
		action string
		name   string
		dst    *core.KeyCode
	}{
		{"move_left", b.MoveLeft, &out.MoveLeft},
		{"move_right", b.MoveRight, &out.MoveRight},
		{"move_up", b.MoveUp, &out.MoveUp},
		{"move_down", b.MoveDown, &out.MoveDown},
		{"move_forward", b.MoveForward, &out.MoveForward},
		{"move_backward", b.MoveBackward, &out.MoveBackward},
		{"yaw_left", b.YawLeft, &out.YawLeft},
		{"yaw_right", b.YawRight, &out.YawRight},
	}
	for _, k := range keys {
		code, ok := core.ParseKeyCode(k.name)
		if !ok {
			return out, fmt.Errorf("%w: unknown key %q for %s", core.ErrInvalidConfig, k.name, k.action)
		}
		*k.dst = code
	}
	return out, nil
}
