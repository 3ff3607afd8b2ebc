package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-anytime-raytracer/pkg/renderer"
	"github.com/df07/go-anytime-raytracer/pkg/scene"
)

// SSEEvent represents a single server-sent event
type SSEEvent struct {
	Type string `json:"type"` // "session", "console", "frame", "error", "complete"
	Data string `json:"data"` // JSON-encoded data or plain message
}

// SessionInfo is sent once when a render starts
type SessionInfo struct {
	RenderID    string `json:"renderId"`
	Scene       string `json:"scene"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	MaxPasses   int    `json:"maxPasses"`
	TargetShape int    `json:"targetShape"`
}

// FrameUpdate represents a displayable frame sent via SSE
type FrameUpdate struct {
	RenderID   string  `json:"renderId"`
	Passes     uint64  `json:"passes"`     // Completed full passes since the last restart
	Progress   float64 `json:"progress"`   // Fraction of the current pass
	ImageData  string  `json:"imageData"`  // Base64 encoded PNG
	Stats      Stats   `json:"stats"`
	IsComplete bool    `json:"isComplete"`
	ElapsedMs  int64   `json:"elapsedMs"`
}

// handleRender streams a progressive render as SSE frames until it converges, reaches
// maxPasses or the client disconnects. The session stays steerable via /api/camera.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.writeSSEEvent(w, SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		s.writeSSEEvent(w, SSEEvent{Type: "error", Data: err.Error()})
		return
	}

	renderID := s.newRenderID()
	consoleChan := make(chan ConsoleMessage, 50)
	logger := NewWebLogger(renderID, consoleChan)

	sink := renderer.NewImageSink(req.Width, req.Height)
	sampling := renderer.MergeSamplingConfig(sceneObj.GetSamplingConfig(), renderer.SamplingConfig{
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.MaxDepth,
	})
	config := renderer.DefaultSessionConfig()
	config.Seed = req.Seed
	config.MaxPasses = req.MaxPasses

	session := renderer.NewSession(sceneObj, req.Width, req.Height, sampling, config, sink, logger)

	s.register(renderID, &liveSession{session: session, scene: sceneObj})
	defer s.unregister(renderID)

	info := SessionInfo{
		RenderID:    renderID,
		Scene:       sceneObj.Name,
		Width:       req.Width,
		Height:      req.Height,
		MaxPasses:   req.MaxPasses,
		TargetShape: sceneObj.TargetShape,
	}
	if err := s.writeSSEJSON(w, "session", info); err != nil {
		return
	}

	if err := s.streamFrames(ctx, w, renderID, session, sink, req, consoleChan); err != nil {
		if ctx.Err() == nil {
			log.Printf("[%s] Stream stopped: %v", renderID, err)
		}
		return
	}

	s.writeSSEEvent(w, SSEEvent{Type: "complete", Data: "Rendering completed"})
}

// createScene builds the requested scene with a camera matching the request's aspect ratio
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	return scene.Lookup(req.Scene, scene.Options{
		Seed:   req.Seed,
		Camera: renderer.CameraConfig{AspectRatio: float64(req.Width) / float64(req.Height)},
	})
}

// streamFrames steps the session and writes frames at most every FrameInterval, plus one
// after every full pass and one when the render finishes
func (s *Server) streamFrames(ctx context.Context, w http.ResponseWriter, renderID string, session *renderer.Session,
	sink *renderer.ImageSink, req *RenderRequest, consoleChan <-chan ConsoleMessage) error {

	startTime := time.Now()
	var lastFrame time.Time

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		step := session.Step(ctx)
		if err := s.drainConsole(w, consoleChan); err != nil {
			return err
		}

		passes, fraction := session.Progress()
		finished := step.Done || (req.MaxPasses > 0 && passes >= uint64(req.MaxPasses))
		if !step.PassCompleted && !finished && time.Since(lastFrame) < req.FrameInterval {
			continue
		}

		imageData, err := s.encodeFrame(sink.Snapshot(), passes, fraction, req)
		if err != nil {
			return fmt.Errorf("failed to encode frame: %w", err)
		}

		update := FrameUpdate{
			RenderID:   renderID,
			Passes:     passes,
			Progress:   fraction,
			ImageData:  imageData,
			Stats:      newStats(session.Stats()),
			IsComplete: finished,
			ElapsedMs:  time.Since(startTime).Milliseconds(),
		}
		if err := s.writeSSEJSON(w, "frame", update); err != nil {
			return err
		}
		lastFrame = time.Now()

		if finished {
			return nil
		}
	}
}

// drainConsole forwards pending console messages without blocking
func (s *Server) drainConsole(w http.ResponseWriter, consoleChan <-chan ConsoleMessage) error {
	for {
		select {
		case msg := <-consoleChan:
			if err := s.writeSSEJSON(w, "console", msg); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// encodeFrame applies the overlay and upscaling, then encodes the frame as base64 PNG
func (s *Server) encodeFrame(img *image.RGBA, passes uint64, fraction float64, req *RenderRequest) (string, error) {
	if req.HUD {
		renderer.DrawOverlay(img, passes, fraction)
	}
	if req.Scale > 1 {
		img = renderer.ScaleImage(img, req.Scale, req.Smooth)
	}
	return s.imageToBase64PNG(img)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEJSON marshals data and writes it as an SSE event
func (s *Server) writeSSEJSON(w http.ResponseWriter, eventType string, data interface{}) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	return s.writeSSEEvent(w, SSEEvent{Type: eventType, Data: string(encoded)})
}

// writeSSEEvent writes a single SSE event and flushes it to the client
func (s *Server) writeSSEEvent(w http.ResponseWriter, event SSEEvent) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
