package output

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
)

const captionPadding = 4

// DefaultPath returns output/<scene>/render_<timestamp>.png
func DefaultPath(sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", timestamp))
}

// Annotate returns a copy of img with the given lines drawn in a dark band along the bottom edge.
// With no lines the image is returned as is.
func Annotate(img image.Image, lines ...string) image.Image {
	if len(lines) == 0 {
		return img
	}

	dc := gg.NewContextForImage(img)
	_, lineHeight := dc.MeasureString("Ag")
	step := lineHeight + captionPadding
	band := float64(len(lines))*step + captionPadding
	top := float64(dc.Height()) - band

	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, top, float64(dc.Width()), band)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	for i, line := range lines {
		dc.DrawString(line, captionPadding, top+float64(i+1)*step)
	}

	return dc.Image()
}

// SavePNG writes img to path, creating parent directories as needed
func SavePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := gg.NewContextForImage(img).SavePNG(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// EncodePNG writes img to w in PNG format
func EncodePNG(w io.Writer, img image.Image) error {
	return gg.NewContextForImage(img).EncodePNG(w)
}
