package geometry

import (
	"math"

	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// Quad represents a parallelogram surface defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3 // One corner of the quad
	U        core.Vec3 // First edge vector
	V        core.Vec3 // Second edge vector
	Normal   core.Vec3 // Unit normal (U × V)
	D        float64   // Plane equation constant: normal · p = D
	W        core.Vec3 // Cached vector for planar coordinates
	material core.Material
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, material core.Material) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	// w = n / (n · n) for the unnormalized cross product
	w := cross.Multiply(1.0 / cross.Dot(cross))

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		D:        normal.Dot(corner),
		W:        w,
		material: material,
	}
}

// Collide tests if a ray intersects with the quad
func (q *Quad) Collide(ray core.Ray, tMin, tMax float64) (*core.Collision, bool) {
	denominator := ray.Direction.Dot(q.Normal)

	// Parallel and NaN rays never hit
	if !(math.Abs(denominator) >= 1e-8) {
		return nil, false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if !(t > tMin && t < tMax) {
		return nil, false
	}

	hitPoint := ray.At(t)
	alpha, beta := q.planarCoords(hitPoint)
	if !(alpha >= 0 && alpha <= 1 && beta >= 0 && beta <= 1) {
		return nil, false
	}

	return core.NewCollision(t, hitPoint, q), true
}

// planarCoords returns the (alpha, beta) coordinates of a point along U and V
func (q *Quad) planarCoords(point core.Vec3) (float64, float64) {
	hitVector := point.Subtract(q.Corner)
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	return alpha, beta
}

// NormalAt returns the quad's constant normal
func (q *Quad) NormalAt(position core.Vec3) core.Vec3 {
	return q.Normal
}

// TextureCoordsAt returns the planar coordinates along the edges
func (q *Quad) TextureCoordsAt(position core.Vec3) core.Vec2 {
	alpha, beta := q.planarCoords(position)
	return core.NewVec2(alpha, beta)
}

// Material returns the quad's material
func (q *Quad) Material() core.Material {
	return q.material
}
