package material

import (
	"math/rand"

	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// flatShape is a shape with a constant normal and texture coordinate, used to build collisions
type flatShape struct {
	normal core.Vec3
	uv     core.Vec2
	mat    core.Material
}

func (s *flatShape) Collide(ray core.Ray, tMin, tMax float64) (*core.Collision, bool) {
	return nil, false
}

func (s *flatShape) NormalAt(position core.Vec3) core.Vec3 { return s.normal }

func (s *flatShape) TextureCoordsAt(position core.Vec3) core.Vec2 { return s.uv }

func (s *flatShape) Material() core.Material { return s.mat }

func hitWithNormal(mat core.Material, normal core.Vec3) *core.Collision {
	return core.NewCollision(1.0, core.NewVec3(0, 0, 0), &flatShape{normal: normal, mat: mat})
}

func hitWithCoords(mat core.Material, uv core.Vec2) *core.Collision {
	return core.NewCollision(1.0, core.NewVec3(0, 0, 0), &flatShape{normal: core.NewVec3(0, 1, 0), uv: uv, mat: mat})
}

func testSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}
