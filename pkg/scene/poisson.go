package scene

import (
	"math"

	"github.com/df07/go-anytime-raytracer/pkg/core"
	"github.com/df07/go-anytime-raytracer/pkg/geometry"
	"github.com/df07/go-anytime-raytracer/pkg/material"
	"github.com/df07/go-anytime-raytracer/pkg/renderer"
)

const (
	poissonMaxShapes = 40  // Including the ground
	poissonRadius    = 3.0 // Minimum spacing between sphere centers
	poissonAttempts  = 10  // Candidates tried around each reference point
	poissonEpsilon   = 0.01
)

// PoissonPosition tries attempts evenly spaced candidates on a circle just outside radius
// around near, starting at a random angle. It returns the first candidate no closer than
// radius to any existing point, or false when every candidate is rejected.
func PoissonPosition(existing []core.Vec2, near core.Vec2, radius float64, attempts int, sampler core.Sampler) (core.Vec2, bool) {
	start := sampler.Get1D()
	distance := radius + poissonEpsilon
	radiusSquared := radius * radius

	for attempt := 0; attempt < attempts; attempt++ {
		theta := 2 * math.Pi * (start + float64(attempt)/float64(attempts))
		candidate := core.NewVec2(near.X+distance*math.Cos(theta), near.Y+distance*math.Sin(theta))

		accepted := true
		for _, point := range existing {
			dx := candidate.X - point.X
			dy := candidate.Y - point.Y
			if dx*dx+dy*dy < radiusSquared {
				accepted = false
				break
			}
		}
		if accepted {
			return candidate, true
		}
	}

	return core.Vec2{}, false
}

// NewPoissonScene scatters glass spheres over the ground with Poisson-disc spacing.
// One sphere, recorded in TargetShape, uses a different pink glass. The layout is
// fully determined by seed.
func NewPoissonScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Origin:      core.NewVec3(0, 3, 12),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFovDegrees: 50.0,
		AspectRatio: 16.0 / 9.0,
	}

	s := newScene("poisson", defaultCameraConfig, cameraOverrides)
	s.SamplingConfig.MaxDepth = 20

	sampler := core.NewSeededSampler(seed)
	s.Add(NewGroundSphere(material.NewLambertianFromHex(0x007070)))

	target := 1 + core.SampleIndex(sampler, poissonMaxShapes-3)
	targetGlass := material.NewTintedDielectric(core.NewVec3(1, 0.6, 0.6), 1.05)

	positions := []core.Vec2{core.NewVec2(0, 5), core.NewVec2(0, 0)}
	for index := 0; index < len(positions) && len(s.Shapes) < poissonMaxShapes; {
		position, ok := PoissonPosition(positions, positions[index], poissonRadius, poissonAttempts, sampler)
		if !ok {
			index++
			continue
		}

		center := core.NewVec3(position.X, 0, position.Y)
		var glass core.Material = material.NewTintedDielectric(core.NewVec3(0, 0.6, 1), 1.5)
		if len(s.Shapes) == target {
			glass = targetGlass
			s.TargetShape = target
		}
		s.Add(geometry.NewSphere(center, 0.5, glass))
		positions = append(positions, position)
	}

	return s
}
