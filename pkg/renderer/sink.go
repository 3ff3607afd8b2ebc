package renderer

import (
	"image"
	"sync"
)

// PixelPosition is a 0-based pixel coordinate with y=0 at the bottom row
type PixelPosition struct {
	X, Y int
}

// PixelSink receives pixel updates from the renderer. It is implemented by the host.
type PixelSink interface {
	SetPixel(pos PixelPosition, color PixelColor)
	InvalidatePixels()
}

// ImageSink keeps the latest pixel colors in an RGBA image with a top-left origin.
// It is safe to snapshot from another goroutine while rendering.
type ImageSink struct {
	mu  sync.Mutex
	img *image.RGBA
}

// NewImageSink creates a sink backed by a width x height image
func NewImageSink(width, height int) *ImageSink {
	return &ImageSink{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// SetPixel writes a pixel, flipping from the bottom-left render origin
func (s *ImageSink) SetPixel(pos PixelPosition, color PixelColor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bounds := s.img.Bounds()
	y := bounds.Dy() - 1 - pos.Y
	if pos.X < 0 || pos.X >= bounds.Dx() || y < 0 || y >= bounds.Dy() {
		return
	}
	s.img.SetRGBA(pos.X, y, color.RGBA())
}

// InvalidatePixels clears the image to transparent black
func (s *ImageSink) InvalidatePixels() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.img.Pix)
}

// Resize replaces the backing image with an empty one of the new size
func (s *ImageSink) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Snapshot returns a copy of the current image
func (s *ImageSink) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := image.NewRGBA(s.img.Bounds())
	copy(snapshot.Pix, s.img.Pix)
	return snapshot
}

// FuncSink adapts plain functions to the PixelSink interface. Nil functions are ignored.
type FuncSink struct {
	OnSetPixel   func(pos PixelPosition, color PixelColor)
	OnInvalidate func()
}

// SetPixel forwards to OnSetPixel
func (f FuncSink) SetPixel(pos PixelPosition, color PixelColor) {
	if f.OnSetPixel != nil {
		f.OnSetPixel(pos, color)
	}
}

// InvalidatePixels forwards to OnInvalidate
func (f FuncSink) InvalidatePixels() {
	if f.OnInvalidate != nil {
		f.OnInvalidate()
	}
}

// multiSink fans pixel updates out to several sinks
type multiSink []PixelSink

// MultiSink returns a sink that forwards every update to all given sinks
func MultiSink(sinks ...PixelSink) PixelSink {
	return multiSink(sinks)
}

func (m multiSink) SetPixel(pos PixelPosition, color PixelColor) {
	for _, s := range m {
		s.SetPixel(pos, color)
	}
}

func (m multiSink) InvalidatePixels() {
	for _, s := range m {
		s.InvalidatePixels()
	}
}
