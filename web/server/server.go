package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/df07/go-direct-raytracer/pkg/camera"
	"github.com/df07/go-direct-raytracer/pkg/loaders"
	"github.com/df07/go-direct-raytracer/pkg/output"
	"github.com/df07/go-direct-raytracer/pkg/renderer"
	"github.com/df07/go-direct-raytracer/pkg/scene"
)

const (
	defaultScene = "showcase"
	minSize      = 16
	maxSize      = 2000
	maxSamples   = 1024
	consoleSize  = 200
)

// Server serves rendered previews of the scene catalogue
type Server struct {
	port    int
	echo    *echo.Echo
	console *Console
	renders atomic.Int64
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`
	Width   int    `json:"width"`   // 0 keeps the scene default
	Height  int    `json:"height"`  // 0 keeps the scene default
	Samples int    `json:"samples"` // 0 keeps the scene default
	Seed    int64  `json:"seed"`
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{
		port:    port,
		echo:    echo.New(),
		console: NewConsole(consoleSize),
	}
	s.echo.HideBanner = true
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.Logger())

	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/scene-config", s.handleSceneConfig)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.GET("/api/inspect", s.handleInspect)
	s.echo.GET("/api/console", s.handleConsole)
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server
func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%d", s.port))
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(c echo.Context) error {
	response, err := scene.ListScenes()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) handleConsole(c echo.Context) error {
	return c.JSON(http.StatusOK, s.console.Recent())
}

// handleRender renders a scene synchronously and returns it as a PNG
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	sceneObj, err := loadScene(req.Scene, req.Width, req.Height)
	if err != nil {
		return err
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	cfg := renderer.DefaultConfig()
	cfg.SamplesPerPixel = req.Samples
	cfg.Seed = req.Seed

	r, err := renderer.New(sceneObj, cfg, NewWebLogger(renderID, s.console))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Request context cancels the render when the client goes away
	stats, err := r.Render(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Render error: "+err.Error())
	}

	var buf bytes.Buffer
	if err := output.EncodePNG(&buf, r.Image()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h := c.Response().Header()
	h.Set("Cache-Control", "no-cache")
	h.Set("X-Render-Id", renderID)
	h.Set("X-Render-Samples", strconv.Itoa(r.Config().SamplesPerPixel))
	h.Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneName := c.QueryParam("scene")
	if sceneName == "" {
		sceneName = defaultScene
	}

	sceneObj, err := loadScene(sceneName, 0, 0)
	if err != nil {
		return err
	}

	response := map[string]interface{}{
		"scene": sceneName,
		"name":  sceneObj.Name,
		"defaults": map[string]interface{}{
			"width":           sceneObj.CameraConfig.Width,
			"height":          sceneObj.CameraConfig.Height,
			"samplesPerPixel": sceneObj.SamplingConfig.SamplesPerPixel,
			"primitives":      sceneObj.NumPrimitives(),
			"lights":          sceneObj.NumLights(),
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": minSize, "max": maxSize},
			"height":  map[string]int{"min": minSize, "max": maxSize},
			"samples": map[string]int{"min": 1, "max": maxSamples},
		},
	}
	return c.JSON(http.StatusOK, response)
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	var err error
	if req.Width, err = parseSizeParam(values, "width"); err != nil {
		return nil, err
	}
	if req.Height, err = parseSizeParam(values, "height"); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(values, "seed", renderer.DefaultConfig().Seed); err != nil {
		return nil, err
	}
	return req, nil
}

func parseSizeParam(values url.Values, key string) (int, error) {
	return parseIntParam(values, key, 0, minSize, maxSize)
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

func parseInt64Param(values url.Values, key string, defaultValue int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// loadScene resolves a catalogue id. File paths are refused so clients cannot
// read arbitrary files through the server.
func loadScene(id string, width, height int) (*scene.Scene, error) {
	if strings.HasSuffix(strings.ToLower(id), ".json") || strings.ContainsAny(id, `/\`) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Unknown scene: "+id)
	}
	sceneObj, err := loaders.LoadScene(id, camera.Config{Width: width, Height: height})
	switch {
	case err == nil:
		return sceneObj, nil
	case errors.Is(err, scene.ErrUnknownScene):
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Unknown scene: "+id)
	default:
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
