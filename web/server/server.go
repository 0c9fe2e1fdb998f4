package server

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	minSize        = 16
	maxSize        = 2000
	maxDepthLimit  = 20
	minFieldOfView = 10.0
	maxFieldOfView = 170.0
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	meshDir   string
	staticDir string
}

// NewServer creates a new web server. meshDir is scanned for .obj and .ply scenes.
func NewServer(port int, meshDir string) *Server {
	return &Server{port: port, meshDir: meshDir, staticDir: "static/"}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene       string  `json:"scene"`       // Scene ID (e.g., "reflection" or "mesh:teapot.obj")
	Size        int     `json:"size"`        // Canvas width and height
	MaxDepth    int     `json:"maxDepth"`    // Reflection/refraction recursion limit
	FieldOfView float64 `json:"fieldOfView"` // Degrees; 0 keeps the scene's own
	TileSize    int     `json:"tileSize"`    // Tile edge in pixels
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/inspect", s.handleInspect)
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

// handleScenes lists built-in and mesh scenes by group
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.meshDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the defaults and limits for a scene's parameters
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	response := map[string]interface{}{
		"scene": req.Scene,
		"defaults": map[string]interface{}{
			"size":        req.Size,
			"maxDepth":    sceneObj.World.MaxDepth,
			"fieldOfView": sceneObj.Camera.FieldOfView * 180 / math.Pi,
			"tileSize":    renderer.DefaultTileSize,
		},
		"limits": map[string]interface{}{
			"size": map[string]int{
				"min": minSize,
				"max": maxSize,
			},
			"maxDepth": map[string]int{
				"min": 0,
				"max": maxDepthLimit,
			},
			"fieldOfView": map[string]float64{
				"min": minFieldOfView,
				"max": maxFieldOfView,
			},
			"tileSize": map[string]int{
				"min": 4,
				"max": 256,
			},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams parses the parameters that select and build a scene
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	if name := query.Get("scene"); name != "" {
		req.Scene = name
	} else {
		req.Scene = "default"
	}

	var err error
	if req.Size, err = parseIntParam(query, "size", 400, minSize, maxSize); err != nil {
		return err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", scene.DefaultMaxDepth, 0, maxDepthLimit); err != nil {
		return err
	}
	if req.FieldOfView, err = parseFloatParam(query, "fov", 0, minFieldOfView, maxFieldOfView); err != nil {
		return err
	}
	return nil
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

// createScene builds the requested scene and applies the overrides
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	info, err := scene.Find(req.Scene, s.meshDir)
	if err != nil {
		return nil, err
	}
	sceneObj, err := scene.Load(info, req.Size)
	if err != nil {
		return nil, err
	}
	sceneObj.World.MaxDepth = req.MaxDepth

	if req.FieldOfView > 0 {
		camera := renderer.NewCamera(req.Size, req.Size, req.FieldOfView*math.Pi/180)
		if err := camera.SetTransform(sceneObj.Camera.Transform()); err != nil {
			return nil, err
		}
		sceneObj.Camera = camera
	}
	return sceneObj, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
