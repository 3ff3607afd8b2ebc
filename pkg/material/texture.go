package material

import (
	"math"

	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// Texture samples a 2D image with the hit shape's texture coordinates.
// It never bounces, so textured surfaces act as terminal emitters.
type Texture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
	Scale  float64     // Repetitions of the image per unit of texture coordinate
}

// NewTexture creates a new image texture material
func NewTexture(width, height int, pixels []core.Vec3, scale float64) *Texture {
	if width <= 0 || height <= 0 || len(pixels) != width*height {
		panic("material: texture dimensions do not match pixel data")
	}
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: pixels,
		Scale:  scale,
	}
}

// Scatter returns the texel under the hit's texture coordinates
func (t *Texture) Scatter(rayIn core.Ray, hit *core.Collision) core.Vec3 {
	uv := hit.TextureCoords()
	x := t.wrap(uv.X, t.Width)
	y := t.wrap(uv.Y, t.Height)
	return t.Pixels[y*t.Width+x]
}

// Bounce never continues the path
func (t *Texture) Bounce(rayIn core.Ray, hit *core.Collision, sampler core.Sampler) (core.Ray, bool) {
	return core.Ray{}, false
}

// wrap maps a texture coordinate onto [0, bound) with a sign-corrected modulo
func (t *Texture) wrap(val float64, bound int) int {
	coord := val * t.Scale * float64(bound)
	if math.IsNaN(coord) || math.IsInf(coord, 0) {
		return 0
	}
	wrapped := int(math.Mod(math.Trunc(coord), float64(bound)))
	if wrapped < 0 {
		wrapped += bound
	}
	return wrapped
}
