package renderer

import (
	"math"

	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Origin      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera is looking at
	Up          core.Vec3 // World up direction
	VFovDegrees float64   // Vertical field of view in degrees
	AspectRatio float64   // Viewport width / height
}

// DefaultCameraConfig returns a camera at the origin looking down -z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Origin:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFovDegrees: 40.0,
		AspectRatio: 16.0 / 9.0,
	}
}

// Camera generates rays for rendering. It is immutable: Move and Rotate return a new camera.
type Camera struct {
	config          CameraConfig
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal basis: right, up, backward
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	if config.VFovDegrees <= 0 || config.VFovDegrees >= 180 {
		config.VFovDegrees = DefaultCameraConfig().VFovDegrees
	}
	if config.AspectRatio <= 0 {
		config.AspectRatio = DefaultCameraConfig().AspectRatio
	}
	if config.Up.LengthSquared() == 0 {
		config.Up = core.NewVec3(0, 1, 0)
	}

	w := config.Origin.Subtract(config.LookAt).Normalize()
	if w.LengthSquared() == 0 {
		w = core.NewVec3(0, 0, 1)
	}
	u := config.Up.Cross(w).Normalize()
	if u.LengthSquared() == 0 {
		// Looking along the up vector: pick any perpendicular right vector
		u = core.NewVec3(0, 0, 1).Cross(w).Normalize()
		if u.LengthSquared() == 0 {
			u = core.NewVec3(1, 0, 0)
		}
	}
	v := w.Cross(u)

	viewportHeight := 2.0 * math.Tan(config.VFovDegrees*math.Pi/360.0)
	viewportWidth := config.AspectRatio * viewportHeight

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := config.Origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return &Camera{
		config:          config,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
	}
}

// GetRay generates a ray for image-plane coordinates (s, t) where 0 <= s,t <= 1.
// (0, 0) is the lower-left corner of the viewport.
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.config.Origin)

	return core.NewRay(c.config.Origin, direction)
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Move returns a camera translated by delta expressed in the camera's own basis:
// x to the right, y up and z forward.
func (c *Camera) Move(delta core.Vec3) *Camera {
	offset := c.u.Multiply(delta.X).
		Add(c.v.Multiply(delta.Y)).
		Add(c.w.Multiply(-delta.Z))

	config := c.config
	config.Origin = config.Origin.Add(offset)
	config.LookAt = config.LookAt.Add(offset)
	return NewCamera(config)
}

// Rotate returns a camera whose look direction is rotated by Euler angles (radians)
// about the X, then Y, then Z axis, pivoting around the camera origin.
func (c *Camera) Rotate(euler core.Vec3) *Camera {
	config := c.config
	direction := config.LookAt.Subtract(config.Origin)
	config.LookAt = config.Origin.Add(direction.Rotate(euler))
	return NewCamera(config)
}

// WithAspectRatio returns a camera with the same pose and a new aspect ratio
func (c *Camera) WithAspectRatio(aspectRatio float64) *Camera {
	config := c.config
	config.AspectRatio = aspectRatio
	return NewCamera(config)
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	if override.Origin != (core.Vec3{}) {
		base.Origin = override.Origin
	}
	if override.LookAt != (core.Vec3{}) {
		base.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		base.Up = override.Up
	}
	if override.VFovDegrees > 0 {
		base.VFovDegrees = override.VFovDegrees
	}
	if override.AspectRatio > 0 {
		base.AspectRatio = override.AspectRatio
	}
	return base
}
