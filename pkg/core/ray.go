package core

import (
	"errors"
	"fmt"
)

// ErrDegenerateDirection is returned when a ray is built from a zero-length or non-finite direction
var ErrDegenerateDirection = errors.New("degenerate ray direction")

// Ray represents a ray with an origin and a unit direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a ray, normalizing the direction
func NewRay(origin, direction Vec3) (Ray, error) {
	if !direction.IsFinite() || direction.LengthSquared() == 0 {
		return Ray{}, fmt.Errorf("ray direction %v: %w", direction, ErrDegenerateDirection)
	}
	return Ray{Origin: origin, Direction: direction.Normalize()}, nil
}

// MustNewRay is like NewRay but panics on a degenerate direction
func MustNewRay(origin, direction Vec3) Ray {
	ray, err := NewRay(origin, direction)
	if err != nil {
		panic(err)
	}
	return ray
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
