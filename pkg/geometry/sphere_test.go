package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// stubMaterial is a material without behavior, used to build shapes in tests
type stubMaterial struct{}

func (stubMaterial) Scatter(rayIn core.Ray, hit *core.Collision) core.Vec3 {
	return core.NewVec3(1, 1, 1)
}

func (stubMaterial) Bounce(rayIn core.Ray, hit *core.Collision, sampler core.Sampler) (core.Ray, bool) {
	return core.Ray{}, false
}

func TestSphere_Collide_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, stubMaterial{})
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Collide(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.Distance)
	}
}

func TestSphere_Collide_RandomMisses(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	center := core.NewVec3(0, 0, -1)
	radius := 0.5
	sphere := NewSphere(center, radius, stubMaterial{})

	for i := 0; i < 500; i++ {
		// Rays parallel to z, offset beyond the bounding sphere
		angle := random.Float64() * 2 * math.Pi
		offset := radius + 0.01 + random.Float64()*5
		origin := core.NewVec3(offset*math.Cos(angle), offset*math.Sin(angle), 5)
		ray := core.NewRay(origin, core.NewVec3(0, 0, -1))

		if hit, isHit := sphere.Collide(ray, 0.001, 100000.0); isHit {
			t.Fatalf("Ray at offset %f should miss, got hit at t=%f", offset, hit.Distance)
		}
	}
}

func TestSphere_Collide_HitOnSurface(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	center := core.NewVec3(0.3, -0.2, -1)
	radius := 0.5
	sphere := NewSphere(center, radius, stubMaterial{})

	for i := 0; i < 500; i++ {
		// Aim from outside at a random point inside the sphere
		origin := core.NewVec3(random.Float64()*4-2, random.Float64()*4-2, 3)
		target := center.Add(core.RandomUnitVector(core.NewRandomSampler(random)).Multiply(radius * 0.9 * random.Float64()))
		ray := core.NewRay(origin, target.Subtract(origin))

		hit, isHit := sphere.Collide(ray, 0.001, 100000.0)
		if !isHit {
			t.Fatalf("Expected hit for ray %v", ray)
		}
		if hit.Distance < 0 {
			t.Errorf("Expected non-negative distance, got %f", hit.Distance)
		}
		if d := hit.Position.Subtract(center).Length(); math.Abs(d-radius) > 1e-9 {
			t.Errorf("Hit point not on surface: |hit-C|=%f, r=%f", d, radius)
		}
		if n := sphere.NormalAt(hit.Position).Length(); math.Abs(n-1) > 1e-9 {
			t.Errorf("Expected unit normal, got length %f", n)
		}
		if hit.Shape != sphere {
			t.Errorf("Collision should reference the sphere")
		}
	}
}

func TestSphere_Collide_FromOutsideAndInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, stubMaterial{})

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "from outside",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "from inside",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Collide(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.Distance-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.Distance)
			}
			if !hit.Normal().ApproxEqual(tt.expectedNormal, 1e-9) {
				t.Errorf("Expected outward normal %v, got %v", tt.expectedNormal, hit.Normal())
			}
		})
	}
}

func TestSphere_Collide_TangentIsMiss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, stubMaterial{})
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	if _, isHit := sphere.Collide(ray, 0.001, 1000.0); isHit {
		t.Error("A ray with zero discriminant should not intersect")
	}
}

func TestSphere_Collide_DegenerateDirection(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, stubMaterial{})

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"zero-length direction", core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, 0))},
		{"NaN origin", core.NewRay(core.NewVec3(math.NaN(), 0, 0), core.NewVec3(0, 0, -1))},
		{"NaN direction", core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(math.NaN(), 0, -1))},
		{"infinite origin", core.NewRay(core.NewVec3(math.Inf(1), 0, 2), core.NewVec3(0, 0, -1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, isHit := sphere.Collide(tt.ray, 0.001, 1000.0); isHit {
				t.Errorf("Expected no intersection, got hit at t=%f", hit.Distance)
			}
		})
	}
}

func TestSphere_Collide_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, stubMaterial{})
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Test tMax bound
	hit, isHit := sphere.Collide(ray, 0.001, 0.5)
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.Distance)
	}

	// Test tMin bound
	hit, isHit = sphere.Collide(ray, 3.5, 1000.0)
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.Distance)
	}

	// Near root excluded, far root kept
	hit, isHit = sphere.Collide(ray, 1.5, 1000.0)
	if !isHit || math.Abs(hit.Distance-3.0) > 1e-9 {
		t.Errorf("Expected far intersection at t=3, got %v %v", hit, isHit)
	}
}

func TestSphere_TextureCoords(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2.0, stubMaterial{})

	tests := []struct {
		name     string
		position core.Vec3
		expected core.Vec2
	}{
		{"north pole", core.NewVec3(0, 2, 0), core.NewVec2(0.5, 0)},
		{"south pole", core.NewVec3(0, -2, 0), core.NewVec2(0.5, 1)},
		{"+x equator", core.NewVec3(2, 0, 0), core.NewVec2(0.5, 0.5)},
		{"+z equator", core.NewVec3(0, 0, 2), core.NewVec2(0.75, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uv := sphere.TextureCoordsAt(tt.position)
			if math.Abs(uv.X-tt.expected.X) > 1e-9 || math.Abs(uv.Y-tt.expected.Y) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, uv)
			}
		})
	}
}

func TestSphere_OwnsMaterial(t *testing.T) {
	m := stubMaterial{}
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, m)
	if sphere.Material() != m {
		t.Error("Sphere should return the material it was built with")
	}
}
