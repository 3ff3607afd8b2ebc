package renderer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// PixelStatus is the lifecycle state of a pixel
type PixelStatus int

const (
	// NotStarted pixels have no samples and no guessed color
	NotStarted PixelStatus = iota
	// Unstable pixels have samples but their resolved color is still changing
	Unstable
	// CopyNearPixel pixels show a color copied from a sampled neighbor
	CopyNearPixel
	// Final pixels are converged and are skipped until invalidation
	Final
)

func (s PixelStatus) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Unstable:
		return "Unstable"
	case CopyNearPixel:
		return "CopyNearPixel"
	case Final:
		return "Final"
	default:
		return fmt.Sprintf("PixelStatus(%d)", int(s))
	}
}

// PixelColor is a displayable 8-bit color together with the pixel's lifecycle state
type PixelColor struct {
	R, G, B  uint8
	Status   PixelStatus
	Distance int // Rectilinear distance to the source pixel, only for CopyNearPixel
}

// RGBA returns the opaque color, or transparent black for a pixel that has nothing to show
func (c PixelColor) RGBA() color.RGBA {
	if c.Status == NotStarted {
		return color.RGBA{}
	}
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// PixelEntry tracks the accumulated samples and convergence state of one pixel.
// SampleCount == 0 exactly when Status is NotStarted or CopyNearPixel.
type PixelEntry struct {
	Accumulated core.Vec3   // Unnormalized sum of all samples
	SampleCount uint64      // Number of samples folded into Accumulated
	Streak      uint8       // Consecutive resolutions with an identical color
	Status      PixelStatus // Lifecycle state
	Distance    int         // Guess distance while CopyNearPixel

	lastColor color.RGBA // Most recent resolved color, valid when SampleCount > 0
	nearColor color.RGBA // Guessed color, valid when Status is CopyNearPixel
}

// ResolveColor maps the average radiance to an 8-bit color: clamp to [0,1], square root, scale by 255.
// It does not modify the entry.
func (e *PixelEntry) ResolveColor() (color.RGBA, bool) {
	if e.SampleCount == 0 {
		return color.RGBA{}, false
	}
	scale := 1.0 / float64(e.SampleCount)
	return color.RGBA{
		R: toChannel(e.Accumulated.X * scale),
		G: toChannel(e.Accumulated.Y * scale),
		B: toChannel(e.Accumulated.Z * scale),
		A: 255,
	}, true
}

// toChannel applies clamping and gamma 2 before quantizing
func toChannel(value float64) uint8 {
	if math.IsNaN(value) {
		return 0
	}
	value = math.Max(0, math.Min(1, value))
	return uint8(math.Sqrt(value) * 255.0)
}

// Accumulate folds samplesTaken samples with the given color sum into the entry and
// updates the convergence state. A Final entry is left untouched.
func (e *PixelEntry) Accumulate(sum core.Vec3, samplesTaken uint64, threshold int) PixelColor {
	if e.Status == Final || samplesTaken == 0 {
		return e.Color()
	}

	first := e.SampleCount == 0
	e.Accumulated = e.Accumulated.Add(sum)
	e.SampleCount += samplesTaken

	resolved, _ := e.ResolveColor()
	if !first && resolved == e.lastColor {
		if e.Streak < math.MaxUint8 {
			e.Streak++
		}
	} else {
		e.Streak = 0
	}

	e.lastColor = resolved
	e.Status = Unstable
	e.Distance = 0
	if int(e.Streak) >= threshold {
		e.Status = Final
	}

	return e.Color()
}

// Color returns what the pixel currently displays
func (e *PixelEntry) Color() PixelColor {
	switch e.Status {
	case Unstable, Final:
		return PixelColor{R: e.lastColor.R, G: e.lastColor.G, B: e.lastColor.B, Status: e.Status}
	case CopyNearPixel:
		return PixelColor{R: e.nearColor.R, G: e.nearColor.G, B: e.nearColor.B, Status: CopyNearPixel, Distance: e.Distance}
	default:
		return PixelColor{Status: NotStarted}
	}
}

// acceptsGuess reports whether a guess at the given distance may replace the current display
func (e *PixelEntry) acceptsGuess(distance int) bool {
	switch e.Status {
	case NotStarted:
		return true
	case CopyNearPixel:
		return distance < e.Distance
	default:
		return false
	}
}

// PixelCache owns one entry per pixel, indexed by y*width+x with y=0 at the bottom row
type PixelCache struct {
	width, height int
	threshold     int
	entries       []PixelEntry
	finalCount    int
}

// NewPixelCache creates an empty cache. A zero-sized target is a programming error.
// A threshold below 1 falls back to the default, otherwise every pixel would be Final
// after its first sample.
func NewPixelCache(width, height, threshold int) *PixelCache {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("renderer: invalid render target %dx%d", width, height))
	}
	if threshold < 1 {
		threshold = DefaultSamplingConfig().StabilityThreshold
	}
	return &PixelCache{
		width:     width,
		height:    height,
		threshold: threshold,
		entries:   make([]PixelEntry, width*height),
	}
}

// Width returns the cache width in pixels
func (pc *PixelCache) Width() int { return pc.width }

// Height returns the cache height in pixels
func (pc *PixelCache) Height() int { return pc.height }

// Len returns the number of pixels
func (pc *PixelCache) Len() int { return len(pc.entries) }

// Entry returns the entry at index for inspection
func (pc *PixelCache) Entry(index int) *PixelEntry {
	return &pc.entries[index]
}

// Index converts a position into an entry index
func (pc *PixelCache) Index(pos PixelPosition) int {
	return pos.Y*pc.width + pos.X
}

// Position converts an entry index into a position
func (pc *PixelCache) Position(index int) PixelPosition {
	return PixelPosition{X: index % pc.width, Y: index / pc.width}
}

// Accumulate merges samples into the pixel at index
func (pc *PixelCache) Accumulate(index int, sum core.Vec3, samplesTaken uint64) PixelColor {
	entry := &pc.entries[index]
	wasFinal := entry.Status == Final
	result := entry.Accumulate(sum, samplesTaken, pc.threshold)
	if !wasFinal && entry.Status == Final {
		pc.finalCount++
	}
	return result
}

// Propagate paints the resolved color of the pixel at index onto not-yet-sampled neighbors
// within a square of the given radius. A guess only replaces a strictly farther guess.
// Painted pixels are reported to sink, which may be nil. Returns the number of pixels painted.
func (pc *PixelCache) Propagate(index, radius int, sink PixelSink) int {
	source := &pc.entries[index]
	if source.SampleCount == 0 {
		return 0
	}

	origin := pc.Position(index)
	painted := 0
	for dy := -radius; dy <= radius; dy++ {
		y := origin.Y + dy
		if y < 0 || y >= pc.height {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			x := origin.X + dx
			if x < 0 || x >= pc.width || (dx == 0 && dy == 0) {
				continue
			}

			distance := abs(dx) + abs(dy)
			target := &pc.entries[y*pc.width+x]
			if !target.acceptsGuess(distance) {
				continue
			}

			target.Status = CopyNearPixel
			target.Distance = distance
			target.nearColor = source.lastColor
			painted++

			if sink != nil {
				sink.SetPixel(PixelPosition{X: x, Y: y}, target.Color())
			}
		}
	}
	return painted
}

// Reset clears every entry back to NotStarted
func (pc *PixelCache) Reset() {
	clear(pc.entries)
	pc.finalCount = 0
}

// FinalCount returns the number of converged pixels
func (pc *PixelCache) FinalCount() int {
	return pc.finalCount
}

// AllFinal reports whether every pixel has converged
func (pc *PixelCache) AllFinal() bool {
	return pc.finalCount == len(pc.entries)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
