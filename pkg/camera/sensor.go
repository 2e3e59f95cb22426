package camera

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// ErrInvalidSensor is returned for sensors with non-positive dimensions
var ErrInvalidSensor = errors.New("invalid image sensor")

// DisplayGamma is the gamma applied when converting the sensor to an image
const DisplayGamma = 2.0

// ImageSensor is the pixel buffer a camera exposes.
// Row 0 is the bottom of the image.
type ImageSensor struct {
	Width     int
	Height    int
	PixelSize float64
	pixels    []core.Color
}

// NewImageSensor creates a sensor with unit pixel size
func NewImageSensor(width, height int) (*ImageSensor, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidSensor)
	}
	return &ImageSensor{
		Width:     width,
		Height:    height,
		PixelSize: 1.0,
		pixels:    make([]core.Color, width*height),
	}, nil
}

func (s *ImageSensor) index(x, y int) (int, error) {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return 0, fmt.Errorf("pixel (%d, %d) outside %dx%d: %w", x, y, s.Width, s.Height, core.ErrIndexOutOfRange)
	}
	return y*s.Width + x, nil
}

// SetPixel stores the color of pixel (x, y)
func (s *ImageSensor) SetPixel(x, y int, c core.Color) error {
	i, err := s.index(x, y)
	if err != nil {
		return err
	}
	s.pixels[i] = c
	return nil
}

// Pixel returns the color of pixel (x, y)
func (s *ImageSensor) Pixel(x, y int) (core.Color, error) {
	i, err := s.index(x, y)
	if err != nil {
		return core.Color{}, err
	}
	return s.pixels[i], nil
}

// SamplePixelPoint returns a jittered point inside pixel (x, y) in view-plane units,
// with the sensor centered on the optical axis
func (s *ImageSensor) SamplePixelPoint(x, y int, sampler core.Sampler) (float64, float64) {
	jitter := sampler.Get2D()
	px := s.PixelSize * (float64(x) - 0.5*float64(s.Width) + jitter.X)
	py := s.PixelSize * (float64(y) - 0.5*float64(s.Height) + jitter.Y)
	return px, py
}

// Image converts the sensor to 8-bit RGBA: rows are flipped so row 0 ends up at the bottom,
// then each pixel is gamma encoded and clamped
func (s *ImageSensor) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			c := s.pixels[y*s.Width+x].GammaCorrect(DisplayGamma)
			r, g, b := c.ToRGBA8()
			img.SetRGBA(x, s.Height-1-y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
