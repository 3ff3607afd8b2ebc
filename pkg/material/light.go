package material

import (
	"math"

	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// AmbientLight is the single fixed light used by the analytic scatter terms.
// There is no light sampling: every surface is lit by this one global light.
type AmbientLight struct {
	Direction core.Vec3 // Zero means "along the surface normal"
	Color     core.Vec3
	Intensity float64
}

// DefaultAmbientLight returns a white light of intensity 3 aligned with each surface normal
func DefaultAmbientLight() AmbientLight {
	return AmbientLight{
		Direction: core.Vec3{},
		Color:     core.NewVec3(1, 1, 1),
		Intensity: 3.0,
	}
}

// Illuminate returns albedo/π lit by the light, without any cosine term
func (l AmbientLight) Illuminate(albedo core.Vec3) core.Vec3 {
	return albedo.Multiply(1.0 / math.Pi).MultiplyVec(l.Color).Multiply(l.Intensity)
}

// Cosine returns max(0, normal · direction), or 1 when the light follows the normal
func (l AmbientLight) Cosine(normal core.Vec3) float64 {
	if l.Direction.LengthSquared() == 0 {
		return 1.0
	}
	return math.Max(0, normal.Dot(l.Direction.Normalize()))
}
