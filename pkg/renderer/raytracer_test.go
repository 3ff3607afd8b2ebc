package renderer

import (
	"testing"

	"github.com/df07/go-anytime-raytracer/pkg/core"
	"github.com/df07/go-anytime-raytracer/pkg/integrator"
)

func TestRaytracer_EndToEndFirstPass(t *testing.T) {
	const width, height = 48, 27
	scene := newSpheresScene()
	sampler := core.NewSeededSampler(42)
	config := DefaultSamplingConfig()
	rt := NewRaytracer(scene, width, height, config, sampler)
	gen := NewGenerator(width, height, config, sampler)
	sink := newRecordingSink()

	for i := 0; i < width*height; i++ {
		if !rt.RenderPixel(gen, 1, sink) {
			t.Fatalf("RenderPixel returned false at call %d", i)
		}
	}

	if gen.Passes() != 1 {
		t.Fatalf("Expected one full pass, got %d", gen.Passes())
	}
	if len(sink.pixels) != width*height {
		t.Errorf("Expected %d pixels in the sink, got %d", width*height, len(sink.pixels))
	}
	for i := 0; i < gen.Cache().Len(); i++ {
		if entry := gen.Cache().Entry(i); entry.Status == NotStarted || entry.SampleCount != 1 {
			t.Fatalf("Pixel %d: status %v with %d samples after one pass", i, entry.Status, entry.SampleCount)
		}
	}

	// The top row looks above the horizon and sees only sky
	camera := rt.Camera()
	for x := 0; x < width; x++ {
		pos := PixelPosition{X: x, Y: height - 1}
		if rt.ShapeAt(pos.X, pos.Y) != -1 {
			t.Fatalf("Top row pixel %d should miss every shape", x)
		}

		got := sink.pixels[pos]
		center := camera.GetRay((float64(x)+0.5)/width, (float64(pos.Y)+0.5)/height)
		entry := PixelEntry{Accumulated: integrator.Background(center), SampleCount: 1}
		expected, _ := entry.ResolveColor()

		if got.R == 0 && got.G == 0 && got.B == 0 {
			t.Fatalf("Background pixel %d resolved to black", x)
		}
		if absDiff(got.R, expected.R) > 3 || absDiff(got.G, expected.G) > 3 || absDiff(got.B, expected.B) > 3 {
			t.Errorf("Pixel %d: expected sky %v, got %+v", x, expected, got)
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestRaytracer_ConvergesAndStops(t *testing.T) {
	const width, height = 4, 3
	scene := newWallScene(core.NewVec3(0.25, 0.25, 0.25))
	sampler := core.NewSeededSampler(1)
	config := DefaultSamplingConfig()
	rt := NewRaytracer(scene, width, height, config, sampler)
	gen := NewGenerator(width, height, config, sampler)
	sink := newRecordingSink()

	// threshold+1 identical samples per pixel converge every pixel
	for i := 0; i < (config.StabilityThreshold+1)*width*height; i++ {
		if !rt.RenderPixel(gen, 1, sink) {
			t.Fatalf("Stopped early at call %d", i)
		}
	}

	if !gen.Cache().AllFinal() {
		t.Fatalf("Expected every pixel Final, got %d of %d", gen.Cache().FinalCount(), width*height)
	}
	if rt.RenderPixel(gen, 1, sink) {
		t.Error("RenderPixel should report no work once every pixel is Final")
	}
	for pos, c := range sink.pixels {
		if c.Status != Final || c.R != 127 {
			t.Errorf("Pixel %v: expected Final gray, got %+v", pos, c)
		}
	}
}

func TestRaytracer_SkipsFinalPixels(t *testing.T) {
	const width, height = 3, 2
	scene := newWallScene(core.NewVec3(1, 0, 0))
	sampler := core.NewSeededSampler(5)
	config := DefaultSamplingConfig()
	rt := NewRaytracer(scene, width, height, config, sampler)
	gen := NewGenerator(width, height, config, sampler)

	// Converge one pixel by hand before rendering
	first := gen.Cache().Index(PixelPosition{X: 1, Y: 1})
	for i := 0; i <= config.StabilityThreshold; i++ {
		gen.Accumulate(first, core.NewVec3(1, 0, 0), 1)
	}
	samples := gen.Cache().Entry(first).SampleCount

	sink := newRecordingSink()
	for i := 0; i < width*height; i++ {
		if !rt.RenderPixel(gen, 1, sink) {
			t.Fatalf("RenderPixel should keep returning true while pixels remain, call %d", i)
		}
	}

	if entry := gen.Cache().Entry(first); entry.SampleCount != samples {
		t.Errorf("Final pixel was sampled again: %d samples", entry.SampleCount)
	}
	if _, written := sink.pixels[gen.Cache().Position(first)]; written {
		t.Error("Skipped pixels should not be written to the sink")
	}
	if len(sink.pixels) != width*height-1 {
		t.Errorf("Expected %d writes, got %d", width*height-1, len(sink.pixels))
	}
}

func TestRaytracer_SamplesPerCall(t *testing.T) {
	scene := newSpheresScene()
	sampler := core.NewSeededSampler(9)
	rt := NewRaytracer(scene, 8, 8, DefaultSamplingConfig(), sampler)
	gen := NewGenerator(8, 8, DefaultSamplingConfig(), sampler)

	rt.RenderPixel(gen, 5, nil)
	stats := gen.Stats()
	if stats.TotalSamples != 5 || stats.MaxSamples != 5 {
		t.Errorf("Expected 5 samples in one pixel, got %+v", stats)
	}
}

func TestRaytracer_ShapeAt(t *testing.T) {
	const width, height = 64, 36
	scene := newSpheresScene()
	rt := NewRaytracer(scene, width, height, DefaultSamplingConfig(), core.NewSeededSampler(1))

	if got := rt.ShapeAt(width/2, height/2); got != 0 {
		t.Errorf("Center pixel should see the small sphere, got %d", got)
	}
	if got := rt.ShapeAt(width/2, 0); got != 1 {
		t.Errorf("Bottom pixel should see the ground, got %d", got)
	}
	if got := rt.ShapeAt(width/2, height-1); got != -1 {
		t.Errorf("Top pixel should see the sky, got %d", got)
	}
}

func TestRaytracer_CameraOperations(t *testing.T) {
	scene := newSpheresScene()
	rt := NewRaytracer(scene, 16, 9, DefaultSamplingConfig(), core.NewSeededSampler(1))
	original := rt.Camera()

	rt.MoveCamera(core.NewVec3(0, 0, 1))
	if rt.Camera() == original {
		t.Fatal("MoveCamera should install a new camera")
	}
	if original.Config().Origin != scene.camera.Config().Origin {
		t.Error("The previous camera must be left unchanged")
	}

	rt.RotateCamera(core.NewVec3(0, 0.1, 0))
	rt.Resize(10, 10)
	if got := rt.Camera().Config().AspectRatio; got != 1 {
		t.Errorf("Resize should update the aspect ratio, got %f", got)
	}
}

func TestNewRaytracer_EmptyScenePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for empty scene")
		}
	}()
	NewRaytracer(&testScene{}, 4, 4, DefaultSamplingConfig(), core.NewSeededSampler(1))
}

func TestMergeSamplingConfig(t *testing.T) {
	base := DefaultSamplingConfig()
	merged := MergeSamplingConfig(base, SamplingConfig{SamplesPerPixel: 4, ReshuffleEachPass: true})

	if merged.SamplesPerPixel != 4 || !merged.ReshuffleEachPass {
		t.Errorf("Overrides not applied: %+v", merged)
	}
	if merged.MaxDepth != base.MaxDepth || merged.StabilityThreshold != base.StabilityThreshold || merged.PropagationRadius != base.PropagationRadius {
		t.Errorf("Zero fields should keep base values: %+v", merged)
	}
}
