package integrator

import (
	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// Parametric interval searched for intersections
const (
	TMin = 0.001
	TMax = 100000.0
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the linear radiance carried back along a ray
	RayColor(ray core.Ray, shapes []core.Shape, sampler core.Sampler) core.Vec3
}

// FindCollision returns the nearest hit across all shapes and the index of the shape hit.
// Shapes are tested exhaustively; only a strictly closer hit replaces the current one.
func FindCollision(ray core.Ray, shapes []core.Shape, tMin, tMax float64) (*core.Collision, int) {
	var closest *core.Collision
	index := -1
	closestSoFar := tMax

	for i, shape := range shapes {
		if hit, isHit := shape.Collide(ray, tMin, closestSoFar); isHit {
			closest = hit
			closestSoFar = hit.Distance
			index = i
		}
	}

	return closest, index
}

// Background returns the sky gradient: white at the horizon below, light blue above
func Background(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	white := core.NewVec3(1.0, 1.0, 1.0)
	blue := core.NewVec3(0.5, 0.7, 1.0)
	return white.Multiply(1.0 - t).Add(blue.Multiply(t))
}
