package material

import (
	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
	Light  AmbientLight
}

// NewLambertian creates a new lambertian material lit by the default ambient light
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo, Light: DefaultAmbientLight()}
}

// NewLambertianFromHex creates a lambertian material from a 0xRRGGBB albedo
func NewLambertianFromHex(color uint32) *Lambertian {
	return NewLambertian(core.NewVec3FromHex(color))
}

// Scatter returns albedo/π · light color · intensity · max(0, n·l)
func (l *Lambertian) Scatter(rayIn core.Ray, hit *core.Collision) core.Vec3 {
	return l.Light.Illuminate(l.Albedo).Multiply(l.Light.Cosine(hit.Normal()))
}

// Bounce reflects in a cosine-weighted direction: normal + random unit vector
func (l *Lambertian) Bounce(rayIn core.Ray, hit *core.Collision, sampler core.Sampler) (core.Ray, bool) {
	normal := hit.Normal()
	direction := normal.Add(core.RandomUnitVector(sampler))

	// The random vector can cancel the normal almost exactly
	if direction.LengthSquared() < 1e-16 {
		direction = normal
	}

	return core.NewRay(hit.Position, direction), true
}
