package renderer

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels in the target
	NotStarted     int     // Pixels without samples or guesses
	Unstable       int     // Pixels still converging
	CopyNearPixel  int     // Pixels showing a neighbor's preview color
	Final          int     // Converged pixels
	TotalSamples   uint64  // Total number of samples taken
	AverageSamples float64 // Average samples per pixel
	MinSamples     uint64  // Minimum samples taken by any pixel
	MaxSamples     uint64  // Maximum samples taken by any pixel
	Passes         uint64  // Completed full passes
}

// Stats computes statistics over the cache in a single sweep
func (pc *PixelCache) Stats() RenderStats {
	stats := RenderStats{TotalPixels: len(pc.entries)}
	if len(pc.entries) == 0 {
		return stats
	}

	stats.MinSamples = pc.entries[0].SampleCount
	for i := range pc.entries {
		entry := &pc.entries[i]
		switch entry.Status {
		case NotStarted:
			stats.NotStarted++
		case Unstable:
			stats.Unstable++
		case CopyNearPixel:
			stats.CopyNearPixel++
		case Final:
			stats.Final++
		}
		stats.TotalSamples += entry.SampleCount
		stats.MinSamples = min(stats.MinSamples, entry.SampleCount)
		stats.MaxSamples = max(stats.MaxSamples, entry.SampleCount)
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)

	return stats
}

// Stats returns cache statistics with the generator's pass count
func (g *Generator) Stats() RenderStats {
	stats := g.cache.Stats()
	stats.Passes = g.passes
	return stats
}

// FinalFraction returns the share of converged pixels
func (s RenderStats) FinalFraction() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.Final) / float64(s.TotalPixels)
}

var statsPrinter = message.NewPrinter(language.English)

// String formats the statistics with grouped digits for logs
func (s RenderStats) String() string {
	return statsPrinter.Sprintf("%d samples over %d pixels (avg %.2f, min %d, max %d), %d final, %d unstable, %d previewed",
		s.TotalSamples, s.TotalPixels, s.AverageSamples, s.MinSamples, s.MaxSamples,
		s.Final, s.Unstable, s.CopyNearPixel)
}
