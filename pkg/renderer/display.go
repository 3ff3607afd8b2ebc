package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ScaleImage enlarges a frame for display by an integer factor.
// Nearest-neighbor keeps the blocky look of a low-resolution progressive render; smooth uses bilinear filtering.
func ScaleImage(src *image.RGBA, factor int, smooth bool) *image.RGBA {
	if factor <= 1 {
		return src
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))

	var scaler xdraw.Scaler = xdraw.NearestNeighbor
	if smooth {
		scaler = xdraw.ApproxBiLinear
	}
	scaler.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)

	return dst
}

// FormatProgress renders the pass counter and the percentage of the current pass
func FormatProgress(passes uint64, fraction float64) string {
	return fmt.Sprintf("%d, %.1f", passes, fraction*100)
}

// DrawOverlay writes the progress line in the top-left corner of img on a black box
func DrawOverlay(img *image.RGBA, passes uint64, fraction float64) {
	text := FormatProgress(passes, fraction)
	face := basicfont.Face7x13

	const padding = 2
	width := font.MeasureString(face, text).Ceil()
	height := face.Metrics().Height.Ceil()
	box := image.Rect(0, 0, width+2*padding, height+2*padding).Intersect(img.Bounds())
	draw.Draw(img, box, image.NewUniform(color.Black), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(padding, padding+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}
