package integrator

import (
	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// DefaultMaxDepth is the bounce limit used when none is configured
const DefaultMaxDepth = 50

// PathTracingIntegrator implements recursive unidirectional path tracing
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor traces a camera ray up to the configured bounce limit
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, shapes []core.Shape, sampler core.Sampler) core.Vec3 {
	return ProjectRay(ray, shapes, pt.MaxDepth, sampler)
}

// ProjectRay follows a light path through the shapes for at most depth bounces.
// Each vertex's local color is multiplied with the color of the continuation.
// Running out of depth returns the background rather than black.
func ProjectRay(ray core.Ray, shapes []core.Shape, depth int, sampler core.Sampler) core.Vec3 {
	if depth <= 0 {
		return Background(ray)
	}

	hit, index := FindCollision(ray, shapes, TMin, TMax)
	if index < 0 {
		return Background(ray)
	}

	color := hit.Color(ray)

	next, bounced := hit.Bounce(ray, sampler)
	if !bounced {
		return color
	}

	return color.MultiplyVec(ProjectRay(next, shapes, depth-1, sampler))
}
