package components

import (
	"github.com/google/uuid"
	"github.com/spaghettifunk/virtcam/engine/core"
	"github.com/spaghettifunk/virtcam/engine/math"
)

/**
 * @brief The discrete inputs a camera reacts to during one frame.
 * Every active flag moves the camera along its own world axis, so
 * diagonal movement is not normalized.
 */
type CameraInput struct {
	MoveLeft     bool
	MoveRight    bool
	MoveUp       bool
	MoveDown     bool
	MoveForward  bool
	MoveBackward bool
	YawLeft      bool
	YawRight     bool
}

// Any reports whether at least one flag is set.
func (in CameraInput) Any() bool {
	return in.MoveLeft || in.MoveRight || in.MoveUp || in.MoveDown ||
		in.MoveForward || in.MoveBackward || in.YawLeft || in.YawRight
}

/**
 * @brief A free-flying camera with a position and a yaw around the world Y axis.
 * The view matrix is cached and only rebuilt when the pose changes.
 */
type Camera struct {
	ID uuid.UUID
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated.
	 */
	Position math.Vec3
	/**
	 * @brief The rotation around the Y axis, in degrees.
	 * NOTE: Do not set this directly, use SetYaw() instead.
	 */
	Yaw float32
	/** @brief Movement speed in world units per second. */
	MoveSpeed float32
	/** @brief Rotation speed in degrees per second. */
	YawSpeed float32

	initialPosition math.Vec3
	initialYaw      float32
	changed         bool
	viewMatrix      math.Mat4
}

func NewCamera(position math.Vec3, yaw, moveSpeed, yawSpeed float32) *Camera {
	camera := &Camera{
		ID:              uuid.New(),
		MoveSpeed:       moveSpeed,
		YawSpeed:        yawSpeed,
		initialPosition: position,
		initialYaw:      yaw,
	}
	camera.Reset()
	// The renderer uploads the first view on its own.
	camera.changed = false
	return camera
}

// Reset moves the camera back to the pose it was created with.
func (c *Camera) Reset() {
	c.Position = c.initialPosition
	c.Yaw = c.initialYaw
	c.rebuildView()
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.Position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Position = position
	c.rebuildView()
}

func (c *Camera) GetYaw() float32 {
	return c.Yaw
}

func (c *Camera) SetYaw(degrees float32) {
	c.Yaw = degrees
	c.rebuildView()
}

// Update applies one frame of input scaled by the elapsed seconds. When no
// flag is active the pose, the cached view matrix and the changed flag are
// left untouched.
func (c *Camera) Update(in CameraInput, elapsedSeconds float64) {
	if !in.Any() {
		return
	}

	step := c.MoveSpeed * float32(elapsedSeconds)
	turn := c.YawSpeed * float32(elapsedSeconds)

	if in.MoveLeft {
		c.Position.X -= step
	}
	if in.MoveRight {
		c.Position.X += step
	}
	if in.MoveUp {
		c.Position.Y += step
	}
	if in.MoveDown {
		c.Position.Y -= step
	}
	if in.MoveForward {
		c.Position.Z -= step
	}
	if in.MoveBackward {
		c.Position.Z += step
	}
	if in.YawLeft {
		c.Yaw += turn
	}
	if in.YawRight {
		c.Yaw -= turn
	}

	c.rebuildView()
}

// Changed reports whether the view matrix was rebuilt since the last
// ClearChanged.
func (c *Camera) Changed() bool {
	return c.changed
}

// ClearChanged marks the current view as consumed.
func (c *Camera) ClearChanged() {
	c.changed = false
}

// GetView returns the cached world-to-camera matrix.
func (c *Camera) GetView() math.Mat4 {
	return c.viewMatrix
}

// The view is the inverse of the camera placement: undo the position first,
// then undo the yaw.
func (c *Camera) rebuildView() {
	translation := math.NewMat4Translation(c.Position.Negate())
	rotation := math.NewMat4RotationY(-c.Yaw)
	c.viewMatrix = rotation.Mul(translation)
	c.changed = true

	core.LogDebug("camera %s: pos [%.3f, %.3f, %.3f] yaw %.2f", c.ID, c.Position.X, c.Position.Y, c.Position.Z, c.Yaw)
}
