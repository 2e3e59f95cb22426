package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-direct-raytracer/pkg/camera"
	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/geometry"
	"github.com/df07/go-direct-raytracer/pkg/lights"
	"github.com/df07/go-direct-raytracer/pkg/material"
	"github.com/df07/go-direct-raytracer/pkg/scene"
)

var (
	// ErrInvalidConfig is returned for scene descriptions with out-of-range or malformed values
	ErrInvalidConfig = errors.New("invalid scene description")

	// ErrUnknownMaterial is returned when a primitive names a material that was not declared
	ErrUnknownMaterial = errors.New("unknown material")
)

const (
	MaterialMatte      = "matte"
	MaterialPhong      = "phong"
	MaterialReflective = "reflective"
)

type CameraCfg struct {
	Type          string    `json:"type,omitempty"` // "pinhole" (default) or "thinlens"
	Eye           []float64 `json:"eye"`
	LookAt        []float64 `json:"lookAt"`
	Up            []float64 `json:"up,omitempty"` // defaults to +Y
	ViewDistance  float64   `json:"viewDistance"`
	FocalDistance float64   `json:"focalDistance,omitempty"`
	LensRadius    float64   `json:"lensRadius,omitempty"`
}

type LightCfg struct {
	Position     []float64 `json:"position"`
	Color        []float32 `json:"color,omitempty"`     // defaults to white
	Intensity    float64   `json:"intensity,omitempty"` // defaults to 1
	CastsShadows *bool     `json:"castsShadows,omitempty"`
}

type MaterialCfg struct {
	Type     string    `json:"type"`
	Diffuse  []float32 `json:"diffuse,omitempty"`
	Glossy   []float32 `json:"glossy,omitempty"`
	Mirror   []float32 `json:"mirror,omitempty"`
	Exponent float64   `json:"exponent,omitempty"`
}

type SphereCfg struct {
	Center   []float64 `json:"center"`
	Radius   float64   `json:"radius"`
	Material string    `json:"material"`
}

type PlaneCfg struct {
	Point    []float64 `json:"point"`
	Normal   []float64 `json:"normal"`
	Material string    `json:"material"`
}

type BoxCfg struct {
	Min      []float64 `json:"min"`
	Max      []float64 `json:"max"`
	Material string    `json:"material"`
}

type CylinderCfg struct {
	Base     []float64 `json:"base"`
	Radius   float64   `json:"radius"`
	Height   float64   `json:"height"`
	Material string    `json:"material"`
}

// SceneConfig is the JSON scene description
type SceneConfig struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Group       string                 `json:"group,omitempty"`
	Width       int                    `json:"width,omitempty"`   // defaults to 400
	Height      int                    `json:"height,omitempty"`  // defaults to 400
	Samples     int                    `json:"samples,omitempty"` // defaults to 16
	Ambient     []float64              `json:"ambient,omitempty"`
	Background  []float64              `json:"background,omitempty"`
	Camera      CameraCfg              `json:"camera"`
	Lights      []LightCfg             `json:"lights"`
	Materials   map[string]MaterialCfg `json:"materials"`
	Spheres     []SphereCfg            `json:"spheres,omitempty"`
	Planes      []PlaneCfg             `json:"planes,omitempty"`
	Boxes       []BoxCfg               `json:"boxes,omitempty"`
	Cylinders   []CylinderCfg          `json:"cylinders,omitempty"`
}

// LoadScene resolves a scene reference: a built-in id, a "json:<name>" catalogue id, or a .json path
func LoadScene(ref string, cameraOverrides ...camera.Config) (*scene.Scene, error) {
	switch {
	case strings.HasPrefix(ref, scene.TypeJSON+":"):
		files, err := scene.ListJSONScenes()
		if err != nil {
			return nil, err
		}
		for _, info := range files {
			if info.ID == ref {
				return LoadSceneFile(info.FilePath, cameraOverrides...)
			}
		}
		return nil, fmt.Errorf("%q: %w", ref, scene.ErrUnknownScene)
	case strings.HasSuffix(strings.ToLower(ref), ".json"):
		return LoadSceneFile(ref, cameraOverrides...)
	default:
		return scene.CreateScene(ref, cameraOverrides...)
	}
}

// LoadSceneFile reads and builds the scene described by a .json file
func LoadSceneFile(path string, cameraOverrides ...camera.Config) (*scene.Scene, error) {
	if err := validateFilePath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := ParseScene(f, cameraOverrides...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// ParseScene decodes a JSON scene description and builds the scene.
// Unknown fields are rejected.
func ParseScene(r io.Reader, cameraOverrides ...camera.Config) (*scene.Scene, error) {
	var cfg SceneConfig
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg.Build(cameraOverrides...)
}

// Build validates the description and constructs the scene
func (cfg SceneConfig) Build(cameraOverrides ...camera.Config) (*scene.Scene, error) {
	s := scene.New(cfg.Name)
	if cfg.Samples < 0 {
		return nil, invalid("samples %d must not be negative", cfg.Samples)
	}
	if cfg.Samples > 0 {
		s.SamplingConfig.SamplesPerPixel = cfg.Samples
	}

	if len(cfg.Ambient) > 0 {
		ambient, err := vec3("ambient", cfg.Ambient)
		if err != nil {
			return nil, err
		}
		s.SetAmbient(ambient)
	}
	background, err := vec3("background", cfg.Background)
	if err != nil {
		return nil, err
	}
	s.SetBackground(background)

	camCfg, err := cfg.cameraConfig()
	if err != nil {
		return nil, err
	}
	if len(cameraOverrides) > 0 {
		camCfg = camera.MergeConfig(camCfg, cameraOverrides[0])
	}
	cam, err := camera.New(camCfg)
	if err != nil {
		return nil, err
	}
	s.CameraConfig = camCfg
	s.AddCamera(cam)

	for i, lc := range cfg.Lights {
		light, err := lc.Build()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.AddLight(light)
	}

	materials := make(map[string]*material.Material, len(cfg.Materials))
	for name, mc := range cfg.Materials {
		m, err := mc.Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = m
	}
	lookup := func(name string) (*material.Material, error) {
		m, ok := materials[name]
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrUnknownMaterial)
		}
		return m, nil
	}

	for i, sc := range cfg.Spheres {
		if err := addShape(s, lookup, sc.Material, sc.Build); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
	}
	for i, pc := range cfg.Planes {
		if err := addShape(s, lookup, pc.Material, pc.Build); err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
	}
	for i, bc := range cfg.Boxes {
		if err := addShape(s, lookup, bc.Material, bc.Build); err != nil {
			return nil, fmt.Errorf("box %d: %w", i, err)
		}
	}
	for i, cc := range cfg.Cylinders {
		if err := addShape(s, lookup, cc.Material, cc.Build); err != nil {
			return nil, fmt.Errorf("cylinder %d: %w", i, err)
		}
	}

	return s, nil
}

func addShape(s *scene.Scene, lookup func(string) (*material.Material, error), name string, build func() (geometry.Shape, error)) error {
	m, err := lookup(name)
	if err != nil {
		return err
	}
	shape, err := build()
	if err != nil {
		return err
	}
	return s.Add(shape, m)
}

func (cfg SceneConfig) cameraConfig() (camera.Config, error) {
	cc := cfg.Camera
	out := camera.Config{
		Type:          cc.Type,
		Width:         cfg.Width,
		Height:        cfg.Height,
		ViewDistance:  cc.ViewDistance,
		FocalDistance: cc.FocalDistance,
		LensRadius:    cc.LensRadius,
	}
	if out.Width == 0 {
		out.Width = camera.DefaultConfig().Width
	}
	if out.Height == 0 {
		out.Height = camera.DefaultConfig().Height
	}

	var err error
	if out.Eye, err = vec3("camera eye", cc.Eye); err != nil {
		return out, err
	}
	if out.LookAt, err = vec3("camera lookAt", cc.LookAt); err != nil {
		return out, err
	}
	out.Up = core.NewVec3(0, 1, 0)
	if len(cc.Up) > 0 {
		if out.Up, err = vec3("camera up", cc.Up); err != nil {
			return out, err
		}
	}
	return out, nil
}

// Build validates and constructs the light
func (lc LightCfg) Build() (lights.Light, error) {
	pos, err := vec3("position", lc.Position)
	if err != nil {
		return nil, err
	}
	col := core.Gray(1)
	if len(lc.Color) > 0 {
		if col, err = color("color", lc.Color); err != nil {
			return nil, err
		}
	}
	intensity := lc.Intensity
	if intensity == 0 {
		intensity = 1
	}
	if intensity < 0 || math.IsInf(intensity, 0) || math.IsNaN(intensity) {
		return nil, invalid("intensity %f must be positive", intensity)
	}
	shadows := true
	if lc.CastsShadows != nil {
		shadows = *lc.CastsShadows
	}
	return lights.NewPointLight(pos, col, intensity, shadows), nil
}

// Build validates and constructs the material
func (mc MaterialCfg) Build() (*material.Material, error) {
	diffuse, err := color("diffuse", mc.Diffuse)
	if err != nil {
		return nil, err
	}
	glossy, err := color("glossy", mc.Glossy)
	if err != nil {
		return nil, err
	}
	mirror, err := color("mirror", mc.Mirror)
	if err != nil {
		return nil, err
	}

	switch mc.Type {
	case MaterialMatte:
		return material.NewMatte(diffuse)
	case MaterialPhong:
		return material.NewPhong(diffuse, glossy, mc.Exponent)
	case MaterialReflective:
		return material.NewReflective(diffuse, glossy, mirror, mc.Exponent)
	default:
		return nil, invalid("material type %q", mc.Type)
	}
}

// Build validates and constructs the sphere
func (sc SphereCfg) Build() (geometry.Shape, error) {
	center, err := vec3("center", sc.Center)
	if err != nil {
		return nil, err
	}
	if err := positive("radius", sc.Radius); err != nil {
		return nil, err
	}
	return geometry.NewSphere(center, sc.Radius), nil
}

// Build validates and constructs the plane
func (pc PlaneCfg) Build() (geometry.Shape, error) {
	point, err := vec3("point", pc.Point)
	if err != nil {
		return nil, err
	}
	normal, err := vec3("normal", pc.Normal)
	if err != nil {
		return nil, err
	}
	if normal.IsZero() {
		return nil, invalid("plane normal must not be zero")
	}
	return geometry.NewPlane(point, normal), nil
}

// Build validates and constructs the box
func (bc BoxCfg) Build() (geometry.Shape, error) {
	lo, err := vec3("min", bc.Min)
	if err != nil {
		return nil, err
	}
	hi, err := vec3("max", bc.Max)
	if err != nil {
		return nil, err
	}
	return geometry.NewBox(lo, hi), nil
}

// Build validates and constructs the cylinder
func (cc CylinderCfg) Build() (geometry.Shape, error) {
	base, err := vec3("base", cc.Base)
	if err != nil {
		return nil, err
	}
	if err := positive("radius", cc.Radius); err != nil {
		return nil, err
	}
	if err := positive("height", cc.Height); err != nil {
		return nil, err
	}
	return geometry.NewCylinder(base, cc.Radius, cc.Height), nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return invalid("%s %f must be positive", name, v)
	}
	return nil
}

func vec3(name string, values []float64) (core.Vec3, error) {
	v, err := core.Vec3FromSlice(values)
	if err != nil {
		return v, fmt.Errorf("%s: %w", name, err)
	}
	if !v.IsFinite() {
		return v, invalid("%s %v must be finite", name, v)
	}
	return v, nil
}

func color(name string, values []float32) (core.Color, error) {
	c, err := core.ColorFromSlice(values)
	if err != nil {
		return c, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// validateFilePath validates that a scene file path is safe to open
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	cleanPath := filepath.Clean(filename)

	if len(cleanPath) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	if !strings.HasSuffix(strings.ToLower(cleanPath), ".json") {
		return fmt.Errorf("invalid file type: only .json files are allowed")
	}

	return nil
}
