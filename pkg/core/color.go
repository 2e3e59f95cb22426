package core

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Color is a single-precision RGB triple used for surface parameters and display output.
// Radiometric work happens in Vec3; values are only clamped when converted for display.
type Color struct {
	R, G, B float32
}

// NewColor creates a new Color
func NewColor(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// Gray returns a color with all channels set to v
func Gray(v float32) Color {
	return Color{v, v, v}
}

// ColorFromSlice builds a color from a literal of 0, 1 or 3 values
func ColorFromSlice(values []float32) (Color, error) {
	switch len(values) {
	case 0:
		return Color{}, nil
	case 1:
		return Gray(values[0]), nil
	case 3:
		return Color{values[0], values[1], values[2]}, nil
	default:
		return Color{}, fmt.Errorf("color literal with %d values: %w", len(values), ErrInvalidLength)
	}
}

// Component returns the channel at idx where (0,1,2) -> (r,g,b)
func (c Color) Component(idx int) (float32, error) {
	switch idx {
	case 0:
		return c.R, nil
	case 1:
		return c.G, nil
	case 2:
		return c.B, nil
	default:
		return 0, fmt.Errorf("color component %d: %w", idx, ErrIndexOutOfRange)
	}
}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply scales every channel by s
func (c Color) Multiply(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// MultiplyColor returns the channel-wise product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Clamp limits each channel to [min, max]
func (c Color) Clamp(min, max float32) Color {
	return Color{
		R: math32.Max(min, math32.Min(max, c.R)),
		G: math32.Max(min, math32.Min(max, c.G)),
		B: math32.Max(min, math32.Min(max, c.B)),
	}
}

// GammaCorrect applies gamma correction to each channel
func (c Color) GammaCorrect(gamma float32) Color {
	inv := 1.0 / gamma
	return Color{
		R: math32.Pow(math32.Max(0, c.R), inv),
		G: math32.Pow(math32.Max(0, c.G), inv),
		B: math32.Pow(math32.Max(0, c.B), inv),
	}
}

// Luminance returns the perceptual luminance of the color
func (c Color) Luminance() float32 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// InUnitRange reports whether every channel lies in [0, 1]
func (c Color) InUnitRange() bool {
	return c.R >= 0 && c.R <= 1 &&
		c.G >= 0 && c.G <= 1 &&
		c.B >= 0 && c.B <= 1
}

// IsFinite reports whether no channel is NaN or infinite
func (c Color) IsFinite() bool {
	for _, v := range [3]float32{c.R, c.G, c.B} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Equals checks if two colors are equal within a small tolerance
func (c Color) Equals(other Color) bool {
	const tolerance = 1e-6
	return math32.Abs(c.R-other.R) < tolerance &&
		math32.Abs(c.G-other.G) < tolerance &&
		math32.Abs(c.B-other.B) < tolerance
}

// ToVec3 widens the color to the double-precision working type
func (c Color) ToVec3() Vec3 {
	return Vec3{X: float64(c.R), Y: float64(c.G), Z: float64(c.B)}
}

// ToRGBA8 converts the color to 8-bit channels after clamping to [0, 1].
// No gamma is applied; callers encode first if needed.
func (c Color) ToRGBA8() (r, g, b uint8) {
	clamped := c.Clamp(0, 1)
	return uint8(clamped.R*255 + 0.5),
		uint8(clamped.G*255 + 0.5),
		uint8(clamped.B*255 + 0.5)
}
