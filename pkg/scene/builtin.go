package scene

import (
	"github.com/df07/go-direct-raytracer/pkg/camera"
	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/geometry"
	"github.com/df07/go-direct-raytracer/pkg/lights"
	"github.com/df07/go-direct-raytracer/pkg/material"
)

// Built-in scene constants are known to be valid, so construction errors are programming errors.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func newCameraScene(name string, defaults camera.Config, overrides []camera.Config) (*Scene, error) {
	cfg := defaults
	if len(overrides) > 0 {
		cfg = camera.MergeConfig(defaults, overrides[0])
	}
	cam, err := camera.New(cfg)
	if err != nil {
		return nil, err
	}
	s := New(name)
	s.CameraConfig = cfg
	s.AddCamera(cam)
	return s, nil
}

// NewSingleSphereScene creates a red matte sphere of radius 85 at the origin, seen from z=200
func NewSingleSphereScene(cameraOverrides ...camera.Config) (*Scene, error) {
	s, err := newCameraScene("single-sphere", camera.DefaultConfig(), cameraOverrides)
	if err != nil {
		return nil, err
	}

	red := must(material.NewMatte(core.NewColor(1, 0, 0)))
	if err := s.Add(geometry.NewSphere(core.Vec3{}, 85), red); err != nil {
		return nil, err
	}

	// Off-axis so the terminator is visible
	s.AddLight(lights.NewPointLight(core.NewVec3(150, 150, 200), core.Gray(1), 2, true))
	return s, nil
}

// NewShowcaseScene creates three spheres, a capped cylinder and a box standing on a ground plane
func NewShowcaseScene(cameraOverrides ...camera.Config) (*Scene, error) {
	defaults := camera.Config{
		Type:         camera.TypePinHole,
		Width:        600,
		Height:       400,
		Eye:          core.NewVec3(75, 40, 100),
		LookAt:       core.NewVec3(-10, 39, 0),
		Up:           core.NewVec3(0, 1, 0),
		ViewDistance: 360,
	}
	s, err := newCameraScene("showcase", defaults, cameraOverrides)
	if err != nil {
		return nil, err
	}

	white := core.Gray(1)
	black := core.Gray(0)
	yellow := core.NewColor(0.75, 0.75, 0)
	orange := core.NewColor(0.75, 0.25, 0)
	cyan := core.NewColor(0, 0.5, 0.75)
	lightGreen := core.NewColor(0.75, 1, 0.75)

	shiny := must(material.NewReflective(yellow.Multiply(0.5), yellow.Multiply(0.15), white.Multiply(0.25), 100))
	matteOrange := must(material.NewMatte(orange.Multiply(0.75)))
	mirror := must(material.NewReflective(black, black, white.Multiply(0.75), 0))
	shinyCyan := must(material.NewReflective(cyan.Multiply(0.5), cyan.Multiply(0.2), white.Multiply(0.25), 100))
	matteGreen := must(material.NewMatte(lightGreen.Multiply(0.5)))
	ground := must(material.NewMatte(core.Gray(0.5)))

	primitives := []Primitive{
		{geometry.NewSphere(core.NewVec3(38, 23, -25), 23), shiny},
		{geometry.NewSphere(core.NewVec3(-7, 10, 42), 20), matteOrange},
		{geometry.NewSphere(core.NewVec3(-30, 59, 35), 20), mirror},
		{geometry.NewCylinder(core.Vec3{}, 22, 85), shinyCyan},
		{geometry.NewBox(core.NewVec3(-35, 0, -110), core.NewVec3(-25, 60, 65)), matteGreen},
		{geometry.NewPlane(core.Vec3{}, core.NewVec3(0, 1, 0)), ground},
	}
	for _, p := range primitives {
		s.AddPrimitive(p)
	}

	s.AddLight(lights.NewPointLight(core.NewVec3(150, 150, 0), white, 3, true))
	return s, nil
}
