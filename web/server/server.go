package server

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/df07/go-anytime-raytracer/pkg/renderer"
	"github.com/df07/go-anytime-raytracer/pkg/scene"
)

// Server handles web requests for the anytime raytracer
type Server struct {
	port int

	mu       sync.Mutex
	sessions map[string]*liveSession // Running renders by id, steerable through /api/camera
	nextID   int
}

// liveSession is a render currently streaming to a client
type liveSession struct {
	session *renderer.Session
	scene   *scene.Scene
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{
		port:     port,
		sessions: make(map[string]*liveSession),
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene         string        `json:"scene"`         // Registered scene name
	Width         int           `json:"width"`         // Image width
	Height        int           `json:"height"`        // Image height
	MaxPasses     int           `json:"maxPasses"`     // Full passes before the stream ends (0 = until converged)
	Samples       int           `json:"samples"`       // Samples per pixel visit
	MaxDepth      int           `json:"maxDepth"`      // Maximum bounce depth
	Seed          int64         `json:"seed"`          // Sampling and layout seed
	Scale         int           `json:"scale"`         // Integer upscale of streamed frames
	Smooth        bool          `json:"smooth"`        // Bilinear upscaling
	HUD           bool          `json:"hud"`           // Draw pass/progress overlay
	FrameInterval time.Duration `json:"frameInterval"` // Minimum time between streamed frames
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	NotStarted     int     `json:"notStarted"`
	Unstable       int     `json:"unstable"`
	CopyNearPixel  int     `json:"copyNearPixel"`
	Final          int     `json:"final"`
	TotalSamples   uint64  `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MinSamples     uint64  `json:"minSamples"`
	MaxSamples     uint64  `json:"maxSamples"`
}

func newStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:    stats.TotalPixels,
		NotStarted:     stats.NotStarted,
		Unstable:       stats.Unstable,
		CopyNearPixel:  stats.CopyNearPixel,
		Final:          stats.Final,
		TotalSamples:   stats.TotalSamples,
		AverageSamples: stats.AverageSamples,
		MinSamples:     stats.MinSamples,
		MaxSamples:     stats.MaxSamples,
	}
}

// Handler returns the HTTP handler serving the API and static files
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/camera", s.handleCamera)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/health", s.handleHealth)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the registered scenes grouped by category
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	writeJSON(w, http.StatusOK, scene.ListAllScenes())
}

// newRenderID returns a fresh render id
func (s *Server) newRenderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return fmt.Sprintf("render-%d", s.nextID)
}

// register tracks a running session under id
func (s *Server) register(id string, live *liveSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = live
}

func (s *Server) unregister(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Server) lookupSession(id string) (*liveSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	live, ok := s.sessions[id]
	return live, ok
}

// parseSceneParams parses the parameters shared by render and inspect requests
func (s *Server) parseSceneParams(values url.Values, req *RenderRequest) error {
	req.Scene = values.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 16, 2000); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(values, "height", 225, 16, 2000); err != nil {
		return err
	}
	seed, err := parseIntParam(values, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return err
	}
	req.Seed = int64(seed)
	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	values := r.URL.Query()

	if err := s.parseSceneParams(values, req); err != nil {
		return nil, err
	}

	var err error
	if req.MaxPasses, err = parseIntParam(values, "maxPasses", 16, 0, 10000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 1, 1, 1000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", 50, 1, 1000); err != nil {
		return nil, err
	}
	if req.Scale, err = parseIntParam(values, "scale", 1, 1, 8); err != nil {
		return nil, err
	}
	if req.Smooth, err = parseBoolParam(values, "smooth", false); err != nil {
		return nil, err
	}
	if req.HUD, err = parseBoolParam(values, "hud", true); err != nil {
		return nil, err
	}
	intervalMs, err := parseIntParam(values, "frameInterval", 250, 0, 10000)
	if err != nil {
		return nil, err
	}
	req.FrameInterval = time.Duration(intervalMs) * time.Millisecond

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 8 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
