package material

import (
	"testing"

	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// newGradientTexture builds a texture whose red channel encodes x and green channel encodes y
func newGradientTexture(width, height int, scale float64) *Texture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixels[y*width+x] = core.NewVec3(float64(x), float64(y), 0)
		}
	}
	return NewTexture(width, height, pixels, scale)
}

func TestTexture_Lookup(t *testing.T) {
	texture := newGradientTexture(4, 2, 1.0)

	tests := []struct {
		name      string
		uv        core.Vec2
		expectedX int
		expectedY int
	}{
		{"origin", core.NewVec2(0, 0), 0, 0},
		{"middle", core.NewVec2(0.5, 0.5), 2, 1},
		{"just below one", core.NewVec2(0.99, 0.99), 3, 1},
		{"wraps at one", core.NewVec2(1.0, 1.0), 0, 0},
		{"wraps above one", core.NewVec2(1.25, 1.5), 1, 1},
		{"negative wraps", core.NewVec2(-0.25, -0.5), 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := hitWithCoords(texture, tt.uv)
			got := texture.Scatter(core.Ray{}, hit)
			if int(got.X) != tt.expectedX || int(got.Y) != tt.expectedY {
				t.Errorf("Expected texel (%d,%d), got (%d,%d)", tt.expectedX, tt.expectedY, int(got.X), int(got.Y))
			}
		})
	}
}

func TestTexture_Scale(t *testing.T) {
	texture := newGradientTexture(4, 4, 2.0)

	// Scale 2 repeats the image twice per unit coordinate
	hit := hitWithCoords(texture, core.NewVec2(0.5, 0.625))
	got := texture.Scatter(core.Ray{}, hit)
	if int(got.X) != 0 || int(got.Y) != 1 {
		t.Errorf("Expected texel (0,1), got (%d,%d)", int(got.X), int(got.Y))
	}
}

func TestTexture_NeverBounces(t *testing.T) {
	texture := newGradientTexture(2, 2, 1.0)
	hit := hitWithCoords(texture, core.NewVec2(0.1, 0.1))
	if _, ok := texture.Bounce(core.Ray{}, hit, testSampler(3)); ok {
		t.Error("Textures should terminate the path")
	}
}

func TestNewTexture_PanicsOnMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for mismatched pixel data")
		}
	}()
	NewTexture(2, 2, make([]core.Vec3, 3), 1.0)
}
