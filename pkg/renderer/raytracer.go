package renderer

import (
	"fmt"

	"github.com/df07/go-anytime-raytracer/pkg/core"
	"github.com/df07/go-anytime-raytracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel    int  // Rays traced per pixel visit
	MaxDepth           int  // Maximum ray bounce depth
	StabilityThreshold int  // Identical resolutions in a row before a pixel is Final
	PropagationRadius  int  // Neighborhood painted with preview colors
	ReshuffleEachPass  bool // Draw a new visiting order after every full pass
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel:    1,
		MaxDepth:           integrator.DefaultMaxDepth,
		StabilityThreshold: 3,
		PropagationRadius:  3,
		ReshuffleEachPass:  false,
	}
}

// MergeSamplingConfig overlays the non-zero fields of updates onto base
func MergeSamplingConfig(base, updates SamplingConfig) SamplingConfig {
	if updates.SamplesPerPixel > 0 {
		base.SamplesPerPixel = updates.SamplesPerPixel
	}
	if updates.MaxDepth > 0 {
		base.MaxDepth = updates.MaxDepth
	}
	if updates.StabilityThreshold > 0 {
		base.StabilityThreshold = updates.StabilityThreshold
	}
	if updates.PropagationRadius > 0 {
		base.PropagationRadius = updates.PropagationRadius
	}
	if updates.ReshuffleEachPass {
		base.ReshuffleEachPass = true
	}
	return base
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetShapes() []core.Shape
}

// Raytracer traces pixels through a camera into a fixed set of shapes
type Raytracer struct {
	shapes     []core.Shape
	camera     *Camera
	width      int
	height     int
	integrator integrator.Integrator
	sampler    core.Sampler
}

// NewRaytracer creates a new raytracer. An empty scene or zero-sized target is a programming error.
func NewRaytracer(scene Scene, width, height int, config SamplingConfig, sampler core.Sampler) *Raytracer {
	shapes := scene.GetShapes()
	if len(shapes) == 0 {
		panic("renderer: scene has no shapes")
	}
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("renderer: invalid render target %dx%d", width, height))
	}

	camera := scene.GetCamera()
	if camera == nil {
		camera = NewCamera(DefaultCameraConfig())
	}

	return &Raytracer{
		shapes:     shapes,
		camera:     camera.WithAspectRatio(float64(width) / float64(height)),
		width:      width,
		height:     height,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		sampler:    sampler,
	}
}

// RenderPixel samples the next scheduled pixel and pushes its new color to the sink.
// Final pixels are skipped. Returns false only when every pixel is Final.
func (rt *Raytracer) RenderPixel(gen *Generator, samples int, sink PixelSink) bool {
	if gen.Cache().AllFinal() {
		return false
	}
	if samples <= 0 {
		samples = 1
	}

	index := gen.Next()
	if gen.Cache().Entry(index).Status == Final {
		return true
	}

	pos := gen.Cache().Position(index)
	colorSum := core.Vec3{}
	for s := 0; s < samples; s++ {
		// Jitter inside the pixel footprint
		u := (float64(pos.X) + rt.sampler.Get1D()) / float64(gen.Width())
		v := (float64(pos.Y) + rt.sampler.Get1D()) / float64(gen.Height())
		ray := rt.camera.GetRay(u, v)
		colorSum = colorSum.Add(rt.integrator.RayColor(ray, rt.shapes, rt.sampler))
	}

	color := gen.Accumulate(index, colorSum, uint64(samples))
	if sink != nil {
		sink.SetPixel(pos, color)
	}
	return true
}

// ShapeAt returns the index of the nearest shape seen through the center of a pixel, or -1
func (rt *Raytracer) ShapeAt(x, y int) int {
	u := (float64(x) + 0.5) / float64(rt.width)
	v := (float64(y) + 0.5) / float64(rt.height)
	_, index := integrator.FindCollision(rt.camera.GetRay(u, v), rt.shapes, integrator.TMin, integrator.TMax)
	return index
}

// Shapes returns the shapes being rendered
func (rt *Raytracer) Shapes() []core.Shape {
	return rt.shapes
}

// Camera returns the current camera
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// SetCamera installs a new camera, adjusted to the raytracer's aspect ratio
func (rt *Raytracer) SetCamera(camera *Camera) {
	rt.camera = camera.WithAspectRatio(float64(rt.width) / float64(rt.height))
}

// MoveCamera installs a camera translated by delta in its own basis
func (rt *Raytracer) MoveCamera(delta core.Vec3) {
	rt.camera = rt.camera.Move(delta)
}

// RotateCamera installs a camera whose view is rotated by Euler angles in radians
func (rt *Raytracer) RotateCamera(euler core.Vec3) {
	rt.camera = rt.camera.Rotate(euler)
}

// Resize changes the target dimensions and the camera aspect ratio
func (rt *Raytracer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("renderer: invalid render target %dx%d", width, height))
	}
	rt.width = width
	rt.height = height
	rt.camera = rt.camera.WithAspectRatio(float64(width) / float64(height))
}
