package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/df07/go-direct-raytracer/pkg/camera"
	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/integrator"
	"github.com/df07/go-direct-raytracer/pkg/scene"
)

// ErrNoCamera is returned when the scene has no camera to render from
var ErrNoCamera = errors.New("scene has no camera")

// Config contains configuration for a render
type Config struct {
	SamplesPerPixel int   // Samples per pixel (0 = scene default)
	TileSize        int   // Size of each square tile in pixels
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	Seed            int64 // Base seed, each tile adds its id
	CameraIndex     int   // Which scene camera to render from
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		SamplesPerPixel: 16,
		TileSize:        32,
		NumWorkers:      0, // Auto-detect CPU count
		Seed:            42,
	}
}

// DefaultNumWorkers returns the number of logical CPUs
func DefaultNumWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Renderer turns a scene into an image on its camera's sensor
type Renderer struct {
	scene  *scene.Scene
	camera camera.Camera
	tiles  *TileRenderer
	config Config
	logger core.Logger
}

// New creates a renderer for the configured camera of s
func New(s *scene.Scene, config Config, logger core.Logger) (*Renderer, error) {
	cam, err := s.Camera(config.CameraIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCamera, err)
	}
	if config.SamplesPerPixel <= 0 {
		config.SamplesPerPixel = s.SamplingConfig.SamplesPerPixel
	}
	if config.SamplesPerPixel <= 0 {
		config.SamplesPerPixel = DefaultConfig().SamplesPerPixel
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = DefaultNumWorkers()
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Renderer{
		scene:  s,
		camera: cam,
		tiles:  NewTileRenderer(s, cam, integrator.NewDirectLighting(), config.SamplesPerPixel),
		config: config,
		logger: logger,
	}, nil
}

// Config returns the effective configuration after defaults were applied
func (r *Renderer) Config() Config {
	return r.config
}

// RenderPixel returns the averaged color of pixel (x, y). Safe for concurrent use.
func (r *Renderer) RenderPixel(x, y int, sampler core.Sampler) core.Color {
	return r.tiles.RenderPixel(x, y, sampler)
}

// Render fills the camera's sensor. The result is the same for any worker count.
func (r *Renderer) Render(ctx context.Context) (RenderStats, error) {
	start := time.Now()
	sensor := r.camera.ImageSensor()
	tiles := NewTileGrid(sensor.Width, sensor.Height, r.config.TileSize, r.config.Seed)

	r.logger.Printf("Rendering %dx%d, %d samples per pixel, %d tiles on %d workers...\n",
		sensor.Width, sensor.Height, r.config.SamplesPerPixel, len(tiles), r.config.NumWorkers)

	pool := NewWorkerPool(r.tiles, r.config.NumWorkers, len(tiles))
	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	var firstErr error
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.Merge(result.Stats)
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
	}
	pool.Stop()
	stats.Elapsed = time.Since(start)

	if firstErr != nil {
		r.logger.Printf("Rendering stopped after %d of %d tiles: %v\n", stats.Tiles, len(tiles), firstErr)
		return stats, firstErr
	}

	r.logger.Printf("Rendered %d pixels in %v (%.1f%% primary hits, %d shadow rays)\n",
		stats.TotalPixels, stats.Elapsed.Round(time.Millisecond), stats.HitRate()*100, stats.Tracing.ShadowRays)
	return stats, nil
}

// Image returns the display image of the camera's sensor
func (r *Renderer) Image() *image.RGBA {
	return r.camera.ImageSensor().Image()
}
