package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/df07/go-direct-raytracer/pkg/camera"
	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/loaders"
	"github.com/df07/go-direct-raytracer/pkg/output"
	"github.com/df07/go-direct-raytracer/pkg/renderer"
	"github.com/df07/go-direct-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	Scene   string
	Width   int
	Height  int
	Samples int
	Workers int
	Seed    int64
	Output  string
	Caption bool
}

func main() {
	var opts options
	flag.StringVar(&opts.Scene, "scene", "showcase", "Built-in scene id, catalogue id (json:<name>) or path to a .json scene file")
	flag.IntVar(&opts.Width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&opts.Height, "height", 0, "Image height in pixels (0 = scene default)")
	flag.IntVar(&opts.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flag.IntVar(&opts.Workers, "workers", 0, "Number of parallel workers (0 = logical CPU count)")
	flag.Int64Var(&opts.Seed, "seed", renderer.DefaultConfig().Seed, "Base random seed")
	flag.StringVar(&opts.Output, "output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	flag.BoolVar(&opts.Caption, "caption", false, "Draw render statistics onto the image")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := run(ctx, opts, core.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Direct Lighting Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	response, err := scene.ListScenes()
	if err != nil {
		fmt.Printf("  (failed to list scenes: %v)\n", err)
	}
	for _, group := range response.Groups {
		fmt.Printf("  %s:\n", group.Name)
		for _, s := range group.Scenes {
			fmt.Printf("    %-24s %s\n", s.ID, s.Description)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

// run renders the selected scene and writes the PNG, returning its path
func run(ctx context.Context, opts options, logger core.Logger) (string, error) {
	logger.Printf("Starting Direct Lighting Raytracer on %s\n", hostInfo())

	s, err := createScene(opts.Scene, opts.Width, opts.Height)
	if err != nil {
		return "", err
	}
	logger.Printf("Loaded scene %q: %d primitives, %d lights\n", s.Name, s.NumPrimitives(), s.NumLights())

	cfg := renderer.DefaultConfig()
	cfg.SamplesPerPixel = opts.Samples
	cfg.NumWorkers = opts.Workers
	cfg.Seed = opts.Seed

	r, err := renderer.New(s, cfg, logger)
	if err != nil {
		return "", err
	}

	stats, err := r.Render(ctx)
	if err != nil {
		return "", fmt.Errorf("render failed: %w", err)
	}

	var img image.Image = r.Image()
	if opts.Caption {
		img = output.Annotate(img, captionLines(s.Name, r.Config(), stats)...)
	}

	path := opts.Output
	if path == "" {
		path = output.DefaultPath(sceneDirName(opts.Scene), time.Now())
	}
	if err := output.SavePNG(img, path); err != nil {
		return "", err
	}

	logger.Printf("Render saved as %s\n", path)
	return path, nil
}

// createScene loads a scene by reference, applying non-zero size overrides
func createScene(ref string, width, height int) (*scene.Scene, error) {
	if ref == "" {
		return nil, fmt.Errorf("scene name cannot be empty")
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("image size %dx%d must not be negative", width, height)
	}
	return loaders.LoadScene(ref, camera.Config{Width: width, Height: height})
}

// sceneDirName turns a scene reference into a directory name for output
func sceneDirName(ref string) string {
	name := strings.TrimPrefix(ref, scene.TypeJSON+":")
	name = filepath.Base(name)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func captionLines(name string, cfg renderer.Config, stats renderer.RenderStats) []string {
	return []string{
		fmt.Sprintf("%s  %d spp  seed %d", name, cfg.SamplesPerPixel, cfg.Seed),
		fmt.Sprintf("%v on %d workers  %.0f%% hits  %d shadow rays",
			stats.Elapsed.Round(time.Millisecond), stats.Workers, stats.HitRate()*100, stats.Tracing.ShadowRays),
	}
}

// hostInfo describes the CPU and memory of the machine
func hostInfo() string {
	desc := fmt.Sprintf("%d logical CPUs", renderer.DefaultNumWorkers())
	if info, err := cpu.Info(); err == nil && len(info) > 0 && info[0].ModelName != "" {
		desc = fmt.Sprintf("%s (%s)", desc, info[0].ModelName)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		desc = fmt.Sprintf("%s, %.1f GiB RAM", desc, float64(vm.Total)/(1<<30))
	}
	return desc
}
