package geometry

import (
	"math"

	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	material core.Material
}

// NewSphere creates a new sphere that owns the given material
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		material: material,
	}
}

// Collide tests if a ray intersects with the sphere
func (s *Sphere) Collide(ray core.Ray, tMin, tMax float64) (*core.Collision, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.LengthSquared()
	if !(a >= 1e-12) {
		return nil, false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	// Tangent, missing and NaN rays count as no intersection
	discriminant := halfB*halfB - a*c
	if !(discriminant > 0) {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if !(root > tMin && root < tMax) {
		root = (-halfB + sqrtD) / a
		if !(root > tMin && root < tMax) {
			return nil, false
		}
	}

	return core.NewCollision(root, ray.At(root), s), true
}

// NormalAt returns the outward normal (position - center) / radius
func (s *Sphere) NormalAt(position core.Vec3) core.Vec3 {
	return position.Subtract(s.Center).Multiply(1.0 / s.Radius)
}

// TextureCoordsAt maps a surface position to spherical (u, v) coordinates in [0,1]
func (s *Sphere) TextureCoordsAt(position core.Vec3) core.Vec2 {
	p := position.Subtract(s.Center).Normalize()
	u := 0.5 + math.Atan2(p.Z, p.X)/(2*math.Pi)
	v := 0.5 - math.Asin(max(-1, min(1, p.Y)))/math.Pi
	return core.NewVec2(u, v)
}

// Material returns the sphere's material
func (s *Sphere) Material() core.Material {
	return s.material
}
