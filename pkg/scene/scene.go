package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-direct-raytracer/pkg/camera"
	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/geometry"
	"github.com/df07/go-direct-raytracer/pkg/lights"
	"github.com/df07/go-direct-raytracer/pkg/material"
)

// ErrIncompletePrimitive is returned when a primitive is missing its shape or material
var ErrIncompletePrimitive = errors.New("primitive needs a shape and a material")

// Primitive pairs a shape with the material used to shade it
type Primitive struct {
	Shape    geometry.Shape
	Material *material.Material
}

// NewPrimitive creates a primitive
func NewPrimitive(shape geometry.Shape, mat *material.Material) (Primitive, error) {
	if shape == nil || mat == nil {
		return Primitive{}, ErrIncompletePrimitive
	}
	return Primitive{Shape: shape, Material: mat}, nil
}

// SurfaceHit is the nearest intersection of a ray with the scene
type SurfaceHit struct {
	T        float64
	Normal   core.Vec3
	Material *material.Material
}

// SamplingConfig holds the scene's preferred sampling settings
type SamplingConfig struct {
	SamplesPerPixel int
}

// Scene holds primitives, lights and cameras. It is read-only while rendering.
type Scene struct {
	Name           string
	SamplingConfig SamplingConfig
	CameraConfig   camera.Config // Configuration of the first camera, for display

	primitives []Primitive
	lights     []lights.Light
	cameras    []camera.Camera
	ambient    core.Vec3
	background core.Vec3
}

// New creates an empty scene with 0.5 grey ambient light and a black background
func New(name string) *Scene {
	return &Scene{
		Name:           name,
		SamplingConfig: SamplingConfig{SamplesPerPixel: 16},
		primitives:     make([]Primitive, 0, 8),
		lights:         make([]lights.Light, 0, 1),
		cameras:        make([]camera.Camera, 0, 1),
		ambient:        core.Splat(0.5),
	}
}

// Hit returns the nearest primitive hit. On equal distances the first primitive added wins.
func (s *Scene) Hit(ray core.Ray) (SurfaceHit, bool) {
	best := SurfaceHit{T: math.MaxFloat64}
	found := false
	for _, p := range s.primitives {
		if hit, ok := p.Shape.HitWithNormal(ray); ok && hit.T < best.T {
			best = SurfaceHit{T: hit.T, Normal: hit.Normal, Material: p.Material}
			found = true
		}
	}
	if !found {
		return SurfaceHit{}, false
	}
	return best, true
}

// HitDistance returns the nearest hit distance without shading data, for shadow rays
func (s *Scene) HitDistance(ray core.Ray) (float64, bool) {
	best := math.MaxFloat64
	found := false
	for _, p := range s.primitives {
		if t, ok := p.Shape.Hit(ray); ok && t < best {
			best = t
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return best, true
}

// Ambient returns the constant ambient radiance
func (s *Scene) Ambient() core.Vec3 { return s.ambient }

// SetAmbient sets the constant ambient radiance
func (s *Scene) SetAmbient(c core.Vec3) { s.ambient = c }

// Background returns the radiance seen by rays that miss everything
func (s *Scene) Background() core.Vec3 { return s.background }

// SetBackground sets the background radiance
func (s *Scene) SetBackground(c core.Vec3) { s.background = c }

// AddPrimitive appends a primitive
func (s *Scene) AddPrimitive(p Primitive) {
	s.primitives = append(s.primitives, p)
}

// Add creates a primitive from a shape and material and appends it
func (s *Scene) Add(shape geometry.Shape, mat *material.Material) error {
	p, err := NewPrimitive(shape, mat)
	if err != nil {
		return err
	}
	s.AddPrimitive(p)
	return nil
}

// AddLight appends a light
func (s *Scene) AddLight(l lights.Light) {
	s.lights = append(s.lights, l)
}

// AddCamera appends a camera
func (s *Scene) AddCamera(c camera.Camera) {
	s.cameras = append(s.cameras, c)
}

// NumPrimitives returns the number of primitives
func (s *Scene) NumPrimitives() int { return len(s.primitives) }

// NumLights returns the number of lights
func (s *Scene) NumLights() int { return len(s.lights) }

// NumCameras returns the number of cameras
func (s *Scene) NumCameras() int { return len(s.cameras) }

// Primitive returns the primitive at idx
func (s *Scene) Primitive(idx int) (Primitive, error) {
	if idx < 0 || idx >= len(s.primitives) {
		return Primitive{}, fmt.Errorf("primitive %d of %d: %w", idx, len(s.primitives), core.ErrIndexOutOfRange)
	}
	return s.primitives[idx], nil
}

// Light returns the light at idx
func (s *Scene) Light(idx int) (lights.Light, error) {
	if idx < 0 || idx >= len(s.lights) {
		return nil, fmt.Errorf("light %d of %d: %w", idx, len(s.lights), core.ErrIndexOutOfRange)
	}
	return s.lights[idx], nil
}

// Camera returns the camera at idx
func (s *Scene) Camera(idx int) (camera.Camera, error) {
	if idx < 0 || idx >= len(s.cameras) {
		return nil, fmt.Errorf("camera %d of %d: %w", idx, len(s.cameras), core.ErrIndexOutOfRange)
	}
	return s.cameras[idx], nil
}

// Lights returns a copy of the light list
func (s *Scene) Lights() []lights.Light {
	out := make([]lights.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

// Bounds returns the box enclosing every finite shape, or false if there is none
func (s *Scene) Bounds() (core.AABB, bool) {
	var box core.AABB
	found := false
	for _, p := range s.primitives {
		b, ok := p.Shape.(geometry.Bounded)
		if !ok {
			continue
		}
		if !found {
			box, found = b.BoundingBox(), true
			continue
		}
		box = box.Union(b.BoundingBox())
	}
	return box, found
}

