package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/integrator"
	"github.com/df07/go-light-transport/pkg/renderer"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene       string    // Scene preset ID
	Integrator  string    // Estimator name; empty selects the scene default
	Width       int       // Image width
	Height      int       // Image height
	Samples     int       // Samples per pixel
	Seed        int       // Base random seed
	MaxDepth    int       // Path length limit
	LightPos    core.Vec3 // Point light position for the simple estimator
	LightEnergy float64   // Point light energy for the simple estimator
	Format      string    // "png" or "json"
}

// RenderResponse is the JSON form of a finished render
type RenderResponse struct {
	Scene      string           `json:"scene"`
	Integrator string           `json:"integrator"`
	Width      int              `json:"width"`
	Height     int              `json:"height"`
	ImageData  string           `json:"imageData"` // Base64 encoded PNG
	Stats      Stats            `json:"stats"`
	ElapsedMs  int64            `json:"elapsedMs"`
	Console    []ConsoleMessage `json:"console"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int64   `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
	DroppedSamples int     `json:"droppedSamples"`
}

// handleRender renders the requested scene and returns it as PNG or JSON
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sceneObj, err := s.presets.Build(req.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	name, integ, err := s.createIntegrator(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := fmt.Sprintf("%s-%d", req.Scene, time.Now().UnixNano())
	consoleChan := make(chan ConsoleMessage, 32)
	logger := NewWebLogger(renderID, consoleChan)

	config := renderer.DefaultConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.SamplesPerPixel = req.Samples
	config.Seed = uint64(req.Seed)

	rend, err := renderer.NewRenderer(sceneObj, integ, name, config, logger, s.metrics)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	startTime := time.Now()
	film, stats, err := rend.Render(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("Render %s cancelled by client", renderID)
			return
		}
		writeError(w, http.StatusInternalServerError, "Render error: "+err.Error())
		return
	}

	if req.Format == "png" {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if err := renderer.WritePNG(w, film); err != nil {
			log.Printf("Error writing PNG for %s: %v", renderID, err)
		}
		return
	}

	imageData, err := filmToBase64PNG(film)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode image: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, RenderResponse{
		Scene:      req.Scene,
		Integrator: name,
		Width:      req.Width,
		Height:     req.Height,
		ImageData:  imageData,
		Stats: Stats{
			TotalPixels:    stats.TotalPixels,
			TotalSamples:   int64(stats.TotalSamples),
			AverageSamples: stats.AverageSamples,
			MinSamples:     stats.MinSamples,
			MaxSamplesUsed: stats.MaxSamplesUsed,
			DroppedSamples: stats.DroppedSamples,
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
		Console:   drainConsole(consoleChan),
	})
}

// createIntegrator resolves the estimator name and builds it with the request options
func (s *Server) createIntegrator(req *RenderRequest) (string, integrator.Integrator, error) {
	name := req.Integrator
	if name == "" {
		preset, err := s.presets.Lookup(req.Scene)
		if err != nil {
			return "", nil, err
		}
		name = preset.DefaultIntegrator
	}

	opts := integrator.DefaultOptions()
	opts.MaxDepth = req.MaxDepth
	opts.LightPosition = req.LightPos
	opts.LightEnergy = core.Splat(req.LightEnergy)

	integ, err := s.integrators.New(name, opts)
	if err != nil {
		return "", nil, err
	}
	return name, integ, nil
}

// parseSceneParams parses the parameters shared by render and inspect requests
func parseSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()
	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "cornell"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, minImageSize, maxImageSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 400, minImageSize, maxImageSize); err != nil {
		return err
	}
	return nil
}

// parseRenderRequest parses request parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := parseSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	req.Integrator = query.Get("integrator")

	var err error
	if req.Samples, err = parseIntParam(query, "samples", 16, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Seed, err = parseIntParam(query, "seed", 1, 0, 1<<31-1); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", integrator.DefaultOptions().MaxDepth, 1, 1000); err != nil {
		return nil, err
	}

	var x, y, z float64
	if x, err = parseFloatParam(query, "lightX", 0, -1e6, 1e6); err != nil {
		return nil, err
	}
	if y, err = parseFloatParam(query, "lightY", 0, -1e6, 1e6); err != nil {
		return nil, err
	}
	if z, err = parseFloatParam(query, "lightZ", 0, -1e6, 1e6); err != nil {
		return nil, err
	}
	req.LightPos = core.NewVec3(x, y, z)
	if req.LightEnergy, err = parseFloatParam(query, "lightEnergy", 1, 0, 1e12); err != nil {
		return nil, err
	}

	switch req.Format = query.Get("format"); req.Format {
	case "":
		req.Format = "png"
	case "png", "json":
	default:
		return nil, fmt.Errorf("unknown format: %s", req.Format)
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// filmToBase64PNG converts a film to a base64-encoded PNG
func filmToBase64PNG(film *renderer.Film) (string, error) {
	var buf bytes.Buffer
	if err := renderer.WritePNG(&buf, film); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
