package scene

import (
	"github.com/df07/go-anytime-raytracer/pkg/core"
	"github.com/df07/go-anytime-raytracer/pkg/geometry"
	"github.com/df07/go-anytime-raytracer/pkg/renderer"
)

// NoTarget marks a scene without a distinguished shape
const NoTarget = -1

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	Shapes         []core.Shape // Objects in the scene, tested exhaustively
	SamplingConfig renderer.SamplingConfig
	TargetShape    int // Index into Shapes of the distinguished shape, or NoTarget
}

// newScene creates an empty scene whose camera is defaultCamera with the first override applied
func newScene(name string, defaultCamera renderer.CameraConfig, cameraOverrides []renderer.CameraConfig) *Scene {
	cameraConfig := defaultCamera
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCamera, cameraOverrides[0])
	}

	return &Scene{
		Name:           name,
		Camera:         renderer.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		Shapes:         make([]core.Shape, 0),
		SamplingConfig: renderer.DefaultSamplingConfig(),
		TargetShape:    NoTarget,
	}
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetShapes returns the shapes to render
func (s *Scene) GetShapes() []core.Shape {
	return s.Shapes
}

// GetSamplingConfig returns the recommended sampling configuration
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig {
	return s.SamplingConfig
}

// Add appends shapes to the scene and returns the index of the first one
func (s *Scene) Add(shapes ...core.Shape) int {
	index := len(s.Shapes)
	s.Shapes = append(s.Shapes, shapes...)
	return index
}

// NewGroundSphere creates the large sphere every built-in scene stands on
func NewGroundSphere(material core.Material) *geometry.Sphere {
	return geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material)
}
