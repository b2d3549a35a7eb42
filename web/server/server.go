package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/df07/go-light-transport/pkg/integrator"
	"github.com/df07/go-light-transport/pkg/renderer"
	"github.com/df07/go-light-transport/pkg/scene"
)

// Request limits shared by render and inspect endpoints
const (
	minImageSize = 1
	maxImageSize = 2000
	maxSamples   = 10000
)

// Server handles web requests for the light transport renderer
type Server struct {
	port        int
	presets     *scene.Presets
	integrators *integrator.Registry
	registry    *prometheus.Registry
	metrics     *renderer.Metrics
}

// NewServer creates a new web server with its own metrics registry
func NewServer(port int) *Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	return &Server{
		port:        port,
		presets:     scene.NewPresets(),
		integrators: integrator.NewRegistry(),
		registry:    reg,
		metrics:     renderer.NewMetrics(reg),
	}
}

// Handler returns the routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/integrators", s.handleIntegrators)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
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

// handleScenes lists the scene presets
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.presets.List())
}

// handleIntegrators lists the estimators and their default options
func (s *Server) handleIntegrators(w http.ResponseWriter, r *http.Request) {
	opts := integrator.DefaultOptions()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"integrators": s.integrators.Names(),
		"defaults": map[string]interface{}{
			"maxDepth":            opts.MaxDepth,
			"rouletteStartDepth":  opts.RouletteStartDepth,
			"rouletteMaxSurvival": opts.RouletteMaxSurvival,
			"whittedContinuation": opts.WhittedContinuation,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":  map[string]int{"min": minImageSize, "max": maxImageSize},
			"samples": map[string]int{"min": 1, "max": maxSamples},
		},
	})
}

// writeJSON encodes v with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError reports a client error as JSON
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
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
