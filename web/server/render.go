package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// Stats represents render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	TotalTiles      int     `json:"totalTiles"`
	NumWorkers      int     `json:"numWorkers"`
	PixelsPerSecond float64 `json:"pixelsPerSecond"`
}

// CompleteUpdate is the final event of a streamed render
type CompleteUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

type renderResult struct {
	fb    *renderer.Framebuffer
	stats renderer.RenderStats
	err   error
}

// newRaytracer resolves the scene and builds a raytracer for the request
func (s *Server) newRaytracer(req *RenderRequest, logger core.Logger) (*renderer.Raytracer, error) {
	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return nil, err
	}
	cfg := req.Config()
	whitted := integrator.NewWhittedIntegrator(cfg.Integrator())
	return renderer.NewRaytracer(sceneObj, whitted, cfg.Render(), logger), nil
}

// handleRender renders the whole image and returns it encoded in the
// requested format
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	raytracer, err := s.newRaytracer(req, NewWebLogger(renderID, nil))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fb, stats, err := raytracer.Render(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, fb, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Failed to write %s response: %v", renderID, err)
	}
}

// handleRenderStream renders the image while streaming render logs as
// "console" events, then sends a "complete" event carrying the PNG
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	raytracer, err := s.newRaytracer(req, NewWebLogger(renderID, consoleChan))
	if err != nil {
		s.sendSSEEvent(w, "error", err.Error())
		return
	}

	startTime := time.Now()
	done := make(chan renderResult, 1)
	go func() {
		fb, stats, err := raytracer.Render(ctx)
		done <- renderResult{fb: fb, stats: stats, err: err}
	}()

	// Only this goroutine writes to w
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)
		case result := <-done:
			for drained := false; !drained; {
				select {
				case msg := <-consoleChan:
					s.sendConsoleMessage(w, msg)
				default:
					drained = true
				}
			}
			if result.err != nil {
				s.sendSSEEvent(w, "error", fmt.Sprintf("Render error: %v", result.err))
				return
			}
			s.sendComplete(w, result, startTime)
			return
		}
	}
}

func (s *Server) sendConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.sendSSEEvent(w, "console", string(data))
}

func (s *Server) sendComplete(w http.ResponseWriter, result renderResult, startTime time.Time) {
	var buf bytes.Buffer
	if err := output.Encode(&buf, result.fb, output.FormatPNG); err != nil {
		s.sendSSEEvent(w, "error", err.Error())
		return
	}

	update := CompleteUpdate{
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Stats: Stats{
			TotalPixels:     result.stats.TotalPixels,
			TotalTiles:      result.stats.TotalTiles,
			NumWorkers:      result.stats.NumWorkers,
			PixelsPerSecond: result.stats.PixelsPerSecond(),
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}
	data, err := json.Marshal(update)
	if err != nil {
		s.sendSSEEvent(w, "error", err.Error())
		return
	}
	s.sendSSEEvent(w, "complete", string(data))
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming not supported")
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
