package material

import (
	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// NewCheckerboardTexture creates a checkerboard of checkSize-pixel squares
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3, scale float64) *Texture {
	if checkSize <= 0 {
		checkSize = 1
	}
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			color := color1
			if (x/checkSize+y/checkSize)%2 != 0 {
				color = color2
			}
			pixels[y*width+x] = color
		}
	}

	return NewTexture(width, height, pixels, scale)
}

// NewGradientTexture creates a vertical gradient from color1 (top row) to color2 (bottom row)
func NewGradientTexture(width, height int, color1, color2 core.Vec3, scale float64) *Texture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		t := 0.0
		if height > 1 {
			t = float64(y) / float64(height-1)
		}
		color := color1.Multiply(1.0 - t).Add(color2.Multiply(t))

		for x := 0; x < width; x++ {
			pixels[y*width+x] = color
		}
	}

	return NewTexture(width, height, pixels, scale)
}
