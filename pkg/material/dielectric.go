package material

import (
	"math"

	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	Albedo          core.Vec3 // Tint applied by the ambient light term
	RefractiveIndex float64   // Index of refraction (e.g., 1.5 for glass)
	Light           AmbientLight
}

// NewDielectric creates a new clear dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return NewTintedDielectric(core.NewVec3(1, 1, 1), refractiveIndex)
}

// NewTintedDielectric creates a dielectric with a colored tint
func NewTintedDielectric(albedo core.Vec3, refractiveIndex float64) *Dielectric {
	return &Dielectric{Albedo: albedo, RefractiveIndex: refractiveIndex, Light: DefaultAmbientLight()}
}

// Scatter returns the lit tint
func (d *Dielectric) Scatter(rayIn core.Ray, hit *core.Collision) core.Vec3 {
	return d.Light.Illuminate(d.Albedo)
}

// Bounce chooses between reflection and refraction with Schlick's approximation.
// Total internal reflection always reflects.
func (d *Dielectric) Bounce(rayIn core.Ray, hit *core.Collision, sampler core.Sampler) (core.Ray, bool) {
	normal := hit.Normal()
	direction := rayIn.Direction
	length := direction.Length()
	if length == 0 {
		return core.Ray{}, false
	}

	reflected := reflect(direction.Normalize(), normal)

	// Exiting the medium flips the normal and the index ratio
	var outwardNormal core.Vec3
	var refractionRatio, cosine float64
	dot := direction.Dot(normal)
	if dot > 0 {
		outwardNormal = normal.Negate()
		refractionRatio = d.RefractiveIndex
		cosine = d.RefractiveIndex * dot / length
	} else {
		outwardNormal = normal
		refractionRatio = 1.0 / d.RefractiveIndex
		cosine = -dot / length
	}

	refracted, canRefract := refract(direction, outwardNormal, refractionRatio)

	reflectProbability := 1.0
	if canRefract {
		reflectProbability = Reflectance(cosine, d.RefractiveIndex)
	}

	if !canRefract || reflectProbability > sampler.Get1D() {
		return core.NewRay(hit.Position, reflected), true
	}
	return core.NewRay(hit.Position, refracted), true
}

// refract applies Snell's law; false when the discriminant is negative (total internal reflection)
func refract(v, n core.Vec3, refractionRatio float64) (core.Vec3, bool) {
	unit := v.Normalize()
	dt := unit.Dot(n)
	discriminant := 1.0 - refractionRatio*refractionRatio*(1.0-dt*dt)
	if discriminant < 0 {
		return core.Vec3{}, false
	}
	return unit.Subtract(n.Multiply(dt)).Multiply(refractionRatio).Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractiveIndex float64) float64 {
	// R0 is the reflectance at normal incidence
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
