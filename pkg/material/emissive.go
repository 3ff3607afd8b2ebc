package material

import (
	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// Emissive represents a light-emitting material that terminates paths
type Emissive struct {
	Emission core.Vec3 // Emitted light color/intensity
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// Scatter returns the emitted light
func (e *Emissive) Scatter(rayIn core.Ray, hit *core.Collision) core.Vec3 {
	return e.Emission
}

// Bounce never continues the path
func (e *Emissive) Bounce(rayIn core.Ray, hit *core.Collision, sampler core.Sampler) (core.Ray, bool) {
	return core.Ray{}, false
}
