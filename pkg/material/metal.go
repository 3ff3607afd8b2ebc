package material

import (
	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Vec3 // Metal color
	Fuzzness float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
	Light    AmbientLight
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	// Clamp fuzzness to valid range
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return &Metal{Albedo: albedo, Fuzzness: fuzzness, Light: DefaultAmbientLight()}
}

// Scatter returns the lit albedo; metals have no cosine falloff
func (m *Metal) Scatter(rayIn core.Ray, hit *core.Collision) core.Vec3 {
	return m.Light.Illuminate(m.Albedo)
}

// Bounce mirrors the incoming direction, perturbed by the fuzziness.
// Directions that end up below the surface are absorbed.
func (m *Metal) Bounce(rayIn core.Ray, hit *core.Collision, sampler core.Sampler) (core.Ray, bool) {
	normal := hit.Normal()
	reflected := reflect(rayIn.Direction.Normalize(), normal)

	if m.Fuzzness > 0 {
		reflected = reflected.Add(core.RandomUnitVector(sampler).Multiply(m.Fuzzness))
	}

	if reflected.Dot(normal) < 0 {
		return core.Ray{}, false
	}

	return core.NewRay(hit.Position, reflected), true
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
