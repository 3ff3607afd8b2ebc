package renderer

import (
	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// Generator schedules pixel visits in a shuffled order that covers every pixel once per pass.
// It exclusively owns the pixel cache.
type Generator struct {
	cache     *PixelCache
	order     []int // Permutation of all pixel indices
	cursor    int
	passes    uint64
	sampler   core.Sampler
	reshuffle bool
	radius    int
	pending   []int // Pixels resolved for the first time since the last propagation
}

// NewGenerator creates a scheduler and its pixel cache for a width x height target
func NewGenerator(width, height int, config SamplingConfig, sampler core.Sampler) *Generator {
	g := &Generator{
		cache:     NewPixelCache(width, height, config.StabilityThreshold),
		sampler:   sampler,
		reshuffle: config.ReshuffleEachPass,
		radius:    config.PropagationRadius,
	}
	g.shuffle()
	return g
}

// shuffle draws a fresh permutation of all pixel indices
func (g *Generator) shuffle() {
	n := g.cache.Len()
	if cap(g.order) >= n {
		g.order = g.order[:n]
	} else {
		g.order = make([]int, n)
	}
	for i := range g.order {
		g.order[i] = i
	}
	core.Shuffle(g.order, g.sampler)
}

// Next returns the pixel index at the cursor and advances. Wrapping past the last
// index completes a full pass.
func (g *Generator) Next() int {
	index := g.order[g.cursor]
	g.cursor++
	if g.cursor == len(g.order) {
		g.cursor = 0
		g.passes++
		if g.reshuffle {
			g.shuffle()
		}
	}
	return index
}

// Cursor returns the position within the current pass
func (g *Generator) Cursor() int {
	return g.cursor
}

// Passes returns the number of completed full passes
func (g *Generator) Passes() uint64 {
	return g.passes
}

// Progress returns the completed passes and the cursor within the current pass
func (g *Generator) Progress() (uint64, int) {
	return g.passes, g.cursor
}

// Fraction returns how far the current pass has progressed, in [0,1)
func (g *Generator) Fraction() float64 {
	return float64(g.cursor) / float64(len(g.order))
}

// Cache returns the pixel cache owned by the generator
func (g *Generator) Cache() *PixelCache {
	return g.cache
}

// Width returns the render target width
func (g *Generator) Width() int {
	return g.cache.Width()
}

// Height returns the render target height
func (g *Generator) Height() int {
	return g.cache.Height()
}

// Accumulate merges samples into a pixel and remembers first resolutions for propagation
func (g *Generator) Accumulate(index int, sum core.Vec3, samplesTaken uint64) PixelColor {
	first := g.cache.Entry(index).SampleCount == 0
	result := g.cache.Accumulate(index, sum, samplesTaken)
	if first && g.cache.Entry(index).SampleCount > 0 && g.radius > 0 {
		g.pending = append(g.pending, index)
	}
	return result
}

// PropagatePixels paints the neighborhoods of pixels that resolved since the last call.
// Returns the number of pixels painted.
func (g *Generator) PropagatePixels(sink PixelSink) int {
	painted := 0
	for _, index := range g.pending {
		painted += g.cache.Propagate(index, g.radius, sink)
	}
	g.pending = g.pending[:0]
	return painted
}

// Invalidate discards all progress and reschedules a width x height target.
// The sink, if any, is told to drop its pixels.
func (g *Generator) Invalidate(width, height int, sink PixelSink) {
	if width != g.cache.Width() || height != g.cache.Height() {
		g.cache = NewPixelCache(width, height, g.cache.threshold)
	} else {
		g.cache.Reset()
	}
	g.cursor = 0
	g.passes = 0
	g.pending = g.pending[:0]
	g.shuffle()

	if sink != nil {
		sink.InvalidatePixels()
	}
}
