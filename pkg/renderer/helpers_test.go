package renderer

import (
	"github.com/df07/go-anytime-raytracer/pkg/core"
	"github.com/df07/go-anytime-raytracer/pkg/geometry"
	"github.com/df07/go-anytime-raytracer/pkg/material"
)

// testScene is a minimal Scene implementation
type testScene struct {
	camera *Camera
	shapes []core.Shape
}

func (s *testScene) GetCamera() *Camera      { return s.camera }
func (s *testScene) GetShapes() []core.Shape { return s.shapes }

// newSpheresScene builds a diffuse sphere on a large ground sphere
func newSpheresScene() *testScene {
	config := DefaultCameraConfig()
	config.Origin = core.NewVec3(-1.8, 1, 2)
	config.LookAt = core.NewVec3(0, 0, -1)

	return &testScene{
		camera: NewCamera(config),
		shapes: []core.Shape{
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
			geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0))),
		},
	}
}

// newWallScene builds an emissive wall filling the whole view, so every sample is identical
func newWallScene(emission core.Vec3) *testScene {
	return &testScene{
		camera: NewCamera(DefaultCameraConfig()),
		shapes: []core.Shape{
			geometry.NewQuad(
				core.NewVec3(-100, -100, -5),
				core.NewVec3(200, 0, 0),
				core.NewVec3(0, 200, 0),
				material.NewEmissive(emission),
			),
		},
	}
}

// recordingSink remembers every update
type recordingSink struct {
	pixels      map[PixelPosition]PixelColor
	writes      int
	invalidates int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{pixels: make(map[PixelPosition]PixelColor)}
}

func (r *recordingSink) SetPixel(pos PixelPosition, color PixelColor) {
	r.pixels[pos] = color
	r.writes++
}

func (r *recordingSink) InvalidatePixels() {
	r.pixels = make(map[PixelPosition]PixelColor)
	r.invalidates++
}
