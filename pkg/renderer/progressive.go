package renderer

import (
	"context"
	"sync"
	"time"

	"github.com/df07/go-anytime-raytracer/pkg/core"
)

// SessionConfig controls how a session paces its work
type SessionConfig struct {
	PixelsPerStep int           // Upper bound of pixel visits per step
	StepBudget    time.Duration // Time slice per step (0 = unlimited)
	MaxPasses     int           // Stop after this many full passes (0 = until every pixel is Final)
	Propagate     bool          // Paint preview colors around freshly sampled pixels during the first pass
	Seed          int64         // Seed for pixel order and path sampling
}

// DefaultSessionConfig returns sensible default values
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		PixelsPerStep: 1300,
		StepBudget:    50 * time.Millisecond,
		MaxPasses:     8,
		Propagate:     true,
		Seed:          42,
	}
}

// budgetCheckInterval is how many pixels are rendered between clock reads
const budgetCheckInterval = 64

// StepResult describes the work done by one step
type StepResult struct {
	Rendered      int  // Pixel visits performed
	Painted       int  // Preview pixels painted by propagation
	PassCompleted bool // At least one full pass finished during the step
	Done          bool // Every pixel is Final
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Stats      RenderStats
	Elapsed    time.Duration
	IsLast     bool
}

// Session drives progressive rendering of one scene into one sink.
// All methods are safe for concurrent use; camera changes and invalidation
// are serialized with stepping.
type Session struct {
	mu        sync.Mutex
	raytracer *Raytracer
	generator *Generator
	sink      PixelSink
	sampling  SamplingConfig
	config    SessionConfig
	logger    core.Logger
}

// NewSession creates a session for a width x height target. A nil sink discards pixels
// and a nil logger discards messages.
func NewSession(scene Scene, width, height int, sampling SamplingConfig, config SessionConfig, sink PixelSink, logger core.Logger) *Session {
	sampling = MergeSamplingConfig(DefaultSamplingConfig(), sampling)
	if !config.Propagate {
		sampling.PropagationRadius = 0
	}
	if config.PixelsPerStep <= 0 {
		config.PixelsPerStep = DefaultSessionConfig().PixelsPerStep
	}
	if sink == nil {
		sink = FuncSink{}
	}
	if logger == nil {
		logger = core.NopLogger()
	}

	sampler := core.NewSeededSampler(config.Seed)
	return &Session{
		raytracer: NewRaytracer(scene, width, height, sampling, sampler),
		generator: NewGenerator(width, height, sampling, sampler),
		sink:      sink,
		sampling:  sampling,
		config:    config,
		logger:    logger,
	}
}

// Step renders up to PixelsPerStep pixels, stopping early when the step budget runs out
// or a full pass completes. While the first pass is in progress, the step ends with a
// propagation pass.
func (s *Session) Step(ctx context.Context) StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	startPasses := s.generator.Passes()
	canPropagate := s.config.Propagate && startPasses == 0

	var deadline time.Time
	if s.config.StepBudget > 0 {
		deadline = time.Now().Add(s.config.StepBudget)
	}

	var result StepResult
	for result.Rendered < s.config.PixelsPerStep {
		if !s.raytracer.RenderPixel(s.generator, s.sampling.SamplesPerPixel, s.sink) {
			break
		}
		result.Rendered++

		if s.generator.Passes() > startPasses {
			break
		}
		if result.Rendered%budgetCheckInterval == 0 {
			if ctx.Err() != nil || (!deadline.IsZero() && time.Now().After(deadline)) {
				break
			}
		}
	}

	if canPropagate {
		result.Painted = s.generator.PropagatePixels(s.sink)
	}
	result.PassCompleted = s.generator.Passes() > startPasses
	result.Done = s.generator.Cache().AllFinal()
	return result
}

// RenderProgressive renders with channel-based communication (idiomatic Go).
// A PassResult is sent after every full pass; rendering stops after MaxPasses,
// when every pixel is Final, or when ctx is cancelled.
func (s *Session) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		width, height := s.Size()
		s.logger.Printf("Starting progressive rendering (%dx%d, max passes %d)...\n", width, height, s.config.MaxPasses)

		passStart := time.Now()
		for {
			select {
			case <-ctx.Done():
				s.logger.Printf("Rendering cancelled\n")
				errChan <- ctx.Err()
				return
			default:
			}

			step := s.Step(ctx)
			if !step.PassCompleted && !step.Done {
				continue
			}

			stats := s.Stats()
			passNumber := int(stats.Passes)
			if !step.PassCompleted {
				// Everything converged partway through a pass
				passNumber++
			}
			isLast := step.Done || (s.config.MaxPasses > 0 && passNumber >= s.config.MaxPasses)
			elapsed := time.Since(passStart)

			s.logger.Printf("Pass %d completed in %v: %s\n", passNumber, elapsed, stats)

			select {
			case passChan <- PassResult{PassNumber: passNumber, Stats: stats, Elapsed: elapsed, IsLast: isLast}:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			if isLast {
				if step.Done {
					s.logger.Printf("All %d pixels converged, stopping.\n", stats.TotalPixels)
				}
				return
			}
			passStart = time.Now()
		}
	}()

	return passChan, errChan
}

// Invalidate discards all progress and clears the sink
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidateLocked("invalidated")
}

func (s *Session) invalidateLocked(reason string) {
	s.generator.Invalidate(s.generator.Width(), s.generator.Height(), s.sink)
	s.logger.Printf("Render %s, restarting\n", reason)
}

// MoveCamera translates the camera in its own basis and restarts the render
func (s *Session) MoveCamera(delta core.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raytracer.MoveCamera(delta)
	s.invalidateLocked("camera moved")
}

// RotateCamera rotates the view by Euler angles in radians and restarts the render
func (s *Session) RotateCamera(euler core.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raytracer.RotateCamera(euler)
	s.invalidateLocked("camera rotated")
}

// SetCamera installs a camera and restarts the render
func (s *Session) SetCamera(camera *Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raytracer.SetCamera(camera)
	s.invalidateLocked("camera replaced")
}

// Resize changes the render target and restarts the render. Sinks that can resize are resized.
func (s *Session) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raytracer.Resize(width, height)
	if resizer, ok := s.sink.(interface{ Resize(width, height int) }); ok {
		resizer.Resize(width, height)
	}
	s.generator.Invalidate(width, height, s.sink)
	s.logger.Printf("Render resized to %dx%d, restarting\n", width, height)
}

// ShapeAt returns the index of the shape seen through the center of pixel (x, y), or -1
func (s *Session) ShapeAt(x, y int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raytracer.ShapeAt(x, y)
}

// Shape returns the shape at index, or nil when out of range
func (s *Session) Shape(index int) core.Shape {
	shapes := s.raytracer.Shapes()
	if index < 0 || index >= len(shapes) {
		return nil
	}
	return shapes[index]
}

// Pixel returns a copy of the cache entry for pixel (x, y) with y=0 at the bottom
func (s *Session) Pixel(x, y int) (PixelEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache := s.generator.Cache()
	if x < 0 || y < 0 || x >= cache.Width() || y >= cache.Height() {
		return PixelEntry{}, false
	}
	return *cache.Entry(cache.Index(PixelPosition{X: x, Y: y})), true
}

// Camera returns the current camera
func (s *Session) Camera() *Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raytracer.Camera()
}

// Stats returns the current render statistics
func (s *Session) Stats() RenderStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generator.Stats()
}

// Progress returns the completed passes and the fraction of the current pass
func (s *Session) Progress() (uint64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generator.Passes(), s.generator.Fraction()
}

// Size returns the render target dimensions
func (s *Session) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generator.Width(), s.generator.Height()
}
