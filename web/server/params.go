package server

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/output"
)

// RenderRequest represents the query parameters of a render or inspect request
type RenderRequest struct {
	Scene    string        // Scene name or scene file name
	Width    int           // Image width
	Height   int           // Image height
	FOV      float64       // Field of view in degrees
	MaxDepth int           // Maximum reflection depth
	Format   output.Format // Encoding of the returned image
}

// Config converts the request into render settings
func (req *RenderRequest) Config() config.RenderConfig {
	cfg := config.Default()
	cfg.Scene = req.Scene
	cfg.Width = req.Width
	cfg.Height = req.Height
	cfg.FOV = req.FOV * math.Pi / 180
	cfg.MaxDepth = req.MaxDepth
	return cfg
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default", Format: output.FormatPNG}

	if sceneName := query.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	}
	if format := query.Get("format"); format != "" {
		f, err := output.FormatFromPath("render." + format)
		if err != nil {
			return nil, fmt.Errorf("invalid format: %s", format)
		}
		req.Format = f
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 512, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 384, 1, 2000); err != nil {
		return nil, err
	}
	if req.FOV, err = parseFloatParam(query, "fov", 90, 1, 179); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 2, 0, 10); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 1500*1500 {
		log.Printf("Render warning: %dx%d image may render slowly", req.Width, req.Height)
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
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
