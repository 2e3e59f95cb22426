package output

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestDefaultPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	got := DefaultPath("showcase", now)
	expected := filepath.Join("output", "showcase", "render_20240305_140709.png")
	if got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	src := solidImage(5, 3, color.RGBA{200, 100, 50, 255})
	src.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255})

	var buf bytes.Buffer
	if err := EncodePNG(&buf, src); err != nil {
		t.Fatalf("EncodePNG() error: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if decoded.Bounds() != src.Bounds() {
		t.Fatalf("Expected bounds %v, got %v", src.Bounds(), decoded.Bounds())
	}

	for _, p := range []image.Point{{0, 0}, {4, 2}} {
		r1, g1, b1, _ := src.At(p.X, p.Y).RGBA()
		r2, g2, b2, _ := decoded.At(p.X, p.Y).RGBA()
		if r1 != r2 || g1 != g2 || b1 != b2 {
			t.Errorf("Pixel %v: expected %d,%d,%d got %d,%d,%d", p, r1>>8, g1>>8, b1>>8, r2>>8, g2>>8, b2>>8)
		}
	}
}

func TestSavePNG_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scene", "render.png")
	if err := SavePNG(solidImage(4, 4, color.RGBA{255, 255, 255, 255}), path); err != nil {
		t.Fatalf("SavePNG() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Expected file at %s: %v", path, err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("Saved file is not a PNG: %v", err)
	}
	if cfg.Width != 4 || cfg.Height != 4 {
		t.Errorf("Expected 4x4, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestSavePNG_BadPath(t *testing.T) {
	// A regular file cannot be used as a directory
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	err := SavePNG(solidImage(1, 1, color.RGBA{}), filepath.Join(blocker, "out.png"))
	if err == nil || !strings.Contains(err.Error(), "output directory") {
		t.Errorf("Expected directory error, got %v", err)
	}
}

func TestAnnotate(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	src := solidImage(200, 100, white)

	if got := Annotate(src); got != image.Image(src) {
		t.Error("Annotate without lines should return the input image")
	}

	out := Annotate(src, "16 spp", "1.2s")
	if out.Bounds() != src.Bounds() {
		t.Fatalf("Expected bounds %v, got %v", src.Bounds(), out.Bounds())
	}

	// Top row untouched, bottom-right corner darkened by the band
	r, g, b, _ := out.At(100, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("Expected top row to stay white, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
	r, _, _, _ = out.At(199, 99).RGBA()
	if r>>8 > 200 {
		t.Errorf("Expected caption band to darken the bottom edge, got red %d", r>>8)
	}

	// Source is not modified
	if src.RGBAAt(199, 99) != white {
		t.Error("Annotate modified its input")
	}
}
