package renderer

import (
	"context"
	"image"

	"github.com/df07/go-direct-raytracer/pkg/camera"
	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/integrator"
	"github.com/df07/go-direct-raytracer/pkg/scene"
)

// TileRenderer renders pixels of one camera using an integrator.
// It holds no mutable state and may be shared between workers.
type TileRenderer struct {
	scene      *scene.Scene
	camera     camera.Camera
	integrator integrator.Integrator
	samples    int
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(s *scene.Scene, cam camera.Camera, integratorInst integrator.Integrator, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		camera:     cam,
		integrator: integratorInst,
		samples:    samplesPerPixel,
	}
}

// RenderPixel averages the configured number of radiance samples for pixel (x, y)
func (tr *TileRenderer) RenderPixel(x, y int, sampler core.Sampler) core.Color {
	return tr.renderPixel(x, y, sampler, nil)
}

func (tr *TileRenderer) renderPixel(x, y int, sampler core.Sampler, stats *integrator.Stats) core.Color {
	var ps PixelStats
	for ps.SampleCount < tr.samples {
		ray := tr.camera.SampleRay(x, y, sampler)
		ps.AddSample(tr.integrator.Li(ray, tr.scene, sampler, stats))
	}
	return ps.GetColor().ToColor()
}

// RenderTileBounds renders every pixel within bounds into the camera's sensor.
// The context is checked before each row.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, sampler core.Sampler) (RenderStats, error) {
	sensor := tr.camera.ImageSensor()
	stats := RenderStats{Tiles: 1}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := tr.renderPixel(x, y, sampler, &stats.Tracing)
			if err := sensor.SetPixel(x, y, c); err != nil {
				return stats, err
			}
			stats.TotalPixels++
			stats.TotalSamples += tr.samples
		}
	}

	return stats, nil
}
