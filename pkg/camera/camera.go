package camera

import (
	"errors"
	"fmt"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// ErrInvalidCamera is returned for camera parameters that cannot form a view
var ErrInvalidCamera = errors.New("invalid camera")

// Camera generates primary rays for sensor pixels
type Camera interface {
	// SampleRay returns a ray through a jittered point of pixel (x, y)
	SampleRay(x, y int, sampler core.Sampler) core.Ray
	ImageSensor() *ImageSensor
}

// frame is the look-at basis shared by every camera.
// w points from the scene back to the eye, so the view direction is -w.
type frame struct {
	eye     core.Vec3
	u, v, w core.Vec3
	sensor  *ImageSensor
}

func newFrame(sensor *ImageSensor, eye, lookAt, up core.Vec3) (frame, error) {
	if sensor == nil {
		return frame{}, fmt.Errorf("nil sensor: %w", ErrInvalidCamera)
	}
	w := eye.Subtract(lookAt).Normalize()
	if w.IsZero() {
		return frame{}, fmt.Errorf("eye %v equals look-at point: %w", eye, ErrInvalidCamera)
	}
	u := up.Cross(w).Normalize()
	if u.IsZero() {
		return frame{}, fmt.Errorf("up %v parallel to view direction: %w", up, ErrInvalidCamera)
	}
	return frame{eye: eye, u: u, v: w.Cross(u), w: w, sensor: sensor}, nil
}

// ImageSensor implements Camera
func (f *frame) ImageSensor() *ImageSensor {
	return f.sensor
}

// Forward returns the unit view direction
func (f *frame) Forward() core.Vec3 {
	return f.w.Negate()
}

// ray builds a ray, substituting the view direction for a degenerate one
func (f *frame) ray(origin, direction core.Vec3) core.Ray {
	r, err := core.NewRay(origin, direction)
	if err != nil {
		return core.Ray{Origin: origin, Direction: f.Forward()}
	}
	return r
}

// PinHole is an ideal pinhole camera with the view plane at ViewDistance
type PinHole struct {
	frame
	ViewDistance float64
}

// NewPinHole creates a pinhole camera at eye looking at lookAt
func NewPinHole(sensor *ImageSensor, eye, lookAt, up core.Vec3, viewDistance float64) (*PinHole, error) {
	if viewDistance <= 0 {
		return nil, fmt.Errorf("view distance %f: %w", viewDistance, ErrInvalidCamera)
	}
	f, err := newFrame(sensor, eye, lookAt, up)
	if err != nil {
		return nil, err
	}
	return &PinHole{frame: f, ViewDistance: viewDistance}, nil
}

// SampleRay implements Camera
func (p *PinHole) SampleRay(x, y int, sampler core.Sampler) core.Ray {
	px, py := p.sensor.SamplePixelPoint(x, y, sampler)
	direction := p.u.Multiply(px).
		Add(p.v.Multiply(py)).
		Subtract(p.w.Multiply(p.ViewDistance))
	return p.ray(p.eye, direction)
}

// ThinLens is a depth-of-field camera; points at FocalDistance are in focus
type ThinLens struct {
	frame
	ViewDistance  float64
	FocalDistance float64
	LensRadius    float64
}

// NewThinLens creates a thin-lens camera at eye looking at lookAt
func NewThinLens(sensor *ImageSensor, eye, lookAt, up core.Vec3, viewDistance, focalDistance, lensRadius float64) (*ThinLens, error) {
	if viewDistance <= 0 || focalDistance <= 0 || lensRadius < 0 {
		return nil, fmt.Errorf("view distance %f, focal distance %f, lens radius %f: %w",
			viewDistance, focalDistance, lensRadius, ErrInvalidCamera)
	}
	f, err := newFrame(sensor, eye, lookAt, up)
	if err != nil {
		return nil, err
	}
	return &ThinLens{frame: f, ViewDistance: viewDistance, FocalDistance: focalDistance, LensRadius: lensRadius}, nil
}

// SampleRay implements Camera
func (tl *ThinLens) SampleRay(x, y int, sampler core.Sampler) core.Ray {
	lens := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(tl.LensRadius)
	origin := tl.eye.Add(tl.u.Multiply(lens.X)).Add(tl.v.Multiply(lens.Y))

	// Project the pixel point onto the focal plane
	px, py := tl.sensor.SamplePixelPoint(x, y, sampler)
	scale := tl.FocalDistance / tl.ViewDistance
	px, py = px*scale, py*scale

	direction := tl.u.Multiply(px - lens.X).
		Add(tl.v.Multiply(py - lens.Y)).
		Subtract(tl.w.Multiply(tl.FocalDistance))
	return tl.ray(origin, direction)
}

var (
	_ Camera = (*PinHole)(nil)
	_ Camera = (*ThinLens)(nil)
)
