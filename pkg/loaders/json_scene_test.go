package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-direct-raytracer/pkg/camera"
	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/lights"
	"github.com/df07/go-direct-raytracer/pkg/scene"
)

const validScene = `{
	"name": "Row",
	"width": 64,
	"height": 48,
	"samples": 4,
	"ambient": [0.25],
	"background": [0.1, 0.2, 0.3],
	"camera": {"eye": [0, 10, 100], "lookAt": [0, 10, 0], "viewDistance": 80},
	"lights": [
		{"position": [50, 80, 50], "intensity": 2},
		{"position": [-50, 80, 50], "color": [1, 0.5, 0.5], "castsShadows": false}
	],
	"materials": {
		"red": {"type": "matte", "diffuse": [0.8, 0.1, 0.1]},
		"shiny": {"type": "phong", "diffuse": [0.4], "glossy": [0.2], "exponent": 50},
		"chrome": {"type": "reflective", "mirror": [0.9], "exponent": 0}
	},
	"spheres": [
		{"center": [-20, 10, 0], "radius": 10, "material": "red"},
		{"center": [20, 10, 0], "radius": 10, "material": "chrome"}
	],
	"planes": [{"point": [0, 0, 0], "normal": [0, 2, 0], "material": "shiny"}],
	"boxes": [{"min": [5, 0, -30], "max": [-5, 20, -20], "material": "red"}],
	"cylinders": [{"base": [0, 0, 20], "radius": 4, "height": 15, "material": "shiny"}]
}`

func TestParseScene_Valid(t *testing.T) {
	s, err := ParseScene(strings.NewReader(validScene))
	if err != nil {
		t.Fatalf("ParseScene() error: %v", err)
	}

	if s.Name != "Row" {
		t.Errorf("Expected name Row, got %q", s.Name)
	}
	if s.SamplingConfig.SamplesPerPixel != 4 {
		t.Errorf("Expected 4 samples, got %d", s.SamplingConfig.SamplesPerPixel)
	}
	if s.Ambient() != core.Splat(0.25) {
		t.Errorf("Expected broadcast ambient 0.25, got %v", s.Ambient())
	}
	if s.Background() != core.NewVec3(0.1, 0.2, 0.3) {
		t.Errorf("Expected background (0.1,0.2,0.3), got %v", s.Background())
	}
	if s.NumPrimitives() != 5 || s.NumLights() != 2 || s.NumCameras() != 1 {
		t.Errorf("Expected 5 primitives, 2 lights, 1 camera; got %d, %d, %d",
			s.NumPrimitives(), s.NumLights(), s.NumCameras())
	}

	cam, _ := s.Camera(0)
	if cam.ImageSensor().Width != 64 || cam.ImageSensor().Height != 48 {
		t.Errorf("Expected 64x48 sensor, got %dx%d", cam.ImageSensor().Width, cam.ImageSensor().Height)
	}
	if s.CameraConfig.Up != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected default up +Y, got %v", s.CameraConfig.Up)
	}

	l0, _ := s.Light(0)
	l1, _ := s.Light(1)
	p0, p1 := l0.(*lights.PointLight), l1.(*lights.PointLight)
	if p0.Radiance != core.Splat(2) || !p0.CastsShadows() {
		t.Errorf("Light 0: expected white x2 with shadows, got %+v", p0)
	}
	if p1.CastsShadows() || !p1.Radiance.Equals(core.NewVec3(1, 0.5, 0.5)) {
		t.Errorf("Light 1: expected unshadowed (1,0.5,0.5), got %+v", p1)
	}

	// Ray down the axis hits the cylinder's top cap first
	hit, ok := s.Hit(core.MustNewRay(core.NewVec3(0, 100, 20), core.NewVec3(0, -1, 0)))
	if !ok || !hit.Normal.Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected cylinder top cap hit, got %+v (ok=%v)", hit, ok)
	}
}

func TestParseScene_CameraOverrides(t *testing.T) {
	s, err := ParseScene(strings.NewReader(validScene), camera.Config{Width: 16, Height: 8})
	if err != nil {
		t.Fatalf("ParseScene() error: %v", err)
	}
	cam, _ := s.Camera(0)
	if cam.ImageSensor().Width != 16 || cam.ImageSensor().Height != 8 {
		t.Errorf("Expected 16x8 sensor, got %dx%d", cam.ImageSensor().Width, cam.ImageSensor().Height)
	}
	if s.CameraConfig.ViewDistance != 80 {
		t.Errorf("Expected view distance from file, got %f", s.CameraConfig.ViewDistance)
	}
}

func TestParseScene_Errors(t *testing.T) {
	base := `"camera": {"eye": [0, 0, 10], "lookAt": [0, 0, 0], "viewDistance": 10}`
	tests := []struct {
		name    string
		json    string
		wantErr error
	}{
		{"malformed json", `{"width": `, ErrInvalidConfig},
		{"unknown field", `{"widht": 10, ` + base + `}`, ErrInvalidConfig},
		{"negative samples", `{"samples": -1, ` + base + `}`, ErrInvalidConfig},
		{"two component vector", `{"ambient": [1, 2], ` + base + `}`, core.ErrInvalidLength},
		{"eye equals lookAt", `{"camera": {"eye": [1, 1, 1], "lookAt": [1, 1, 1], "viewDistance": 10}}`, camera.ErrInvalidCamera},
		{"zero view distance", `{"camera": {"eye": [0, 0, 10], "lookAt": [0, 0, 0]}}`, camera.ErrInvalidCamera},
		{"unknown camera type", `{"camera": {"type": "fisheye", "eye": [0, 0, 10], "lookAt": [0, 0, 0], "viewDistance": 10}}`, camera.ErrInvalidCamera},
		{"unknown material", `{` + base + `, "spheres": [{"center": [0], "radius": 1, "material": "gold"}]}`, ErrUnknownMaterial},
		{"unknown material type", `{` + base + `, "materials": {"m": {"type": "glass"}}}`, ErrInvalidConfig},
		{"reflectance above one", `{` + base + `, "materials": {"m": {"type": "matte", "diffuse": [1.5]}}}`, nil},
		{"negative exponent", `{` + base + `, "materials": {"m": {"type": "phong", "exponent": -1}}}`, nil},
		{"zero radius", `{` + base + `, "materials": {"m": {"type": "matte"}}, "spheres": [{"center": [0], "radius": 0, "material": "m"}]}`, ErrInvalidConfig},
		{"zero plane normal", `{` + base + `, "materials": {"m": {"type": "matte"}}, "planes": [{"point": [0], "normal": [0], "material": "m"}]}`, ErrInvalidConfig},
		{"negative cylinder height", `{` + base + `, "materials": {"m": {"type": "matte"}}, "cylinders": [{"base": [0], "radius": 1, "height": -2, "material": "m"}]}`, ErrInvalidConfig},
		{"negative intensity", `{` + base + `, "lights": [{"position": [0, 5, 0], "intensity": -1}]}`, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseScene(strings.NewReader(tt.json))
			if err == nil {
				t.Fatalf("Expected error, got scene %+v", s)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"scenes/row.json", false},
		{"/tmp/Scene.JSON", false},
		{"", true},
		{"scenes/row.pbrt", true},
		{"scenes/row\x00.json", true},
		{strings.Repeat("a", 600) + ".json", true},
	}
	for _, tt := range tests {
		err := validateFilePath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateFilePath(%q): wantErr=%v, got %v", tt.path, tt.wantErr, err)
		}
	}
}

func TestLoadSceneFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unnamed-row.json")
	content := strings.Replace(validScene, `"name": "Row",`, "", 1)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("LoadSceneFile() error: %v", err)
	}
	if s.Name != "unnamed-row" {
		t.Errorf("Expected name from file, got %q", s.Name)
	}

	if _, err := LoadSceneFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := LoadSceneFile(filepath.Join(dir, "scene.txt")); err == nil {
		t.Error("Expected error for non-json file")
	}
}

func TestLoadScene(t *testing.T) {
	s, err := LoadScene("showcase", camera.Config{Width: 30, Height: 20})
	if err != nil {
		t.Fatalf("LoadScene(showcase) error: %v", err)
	}
	if s.CameraConfig.Width != 30 {
		t.Errorf("Expected override width 30, got %d", s.CameraConfig.Width)
	}

	if _, err := LoadScene("nope"); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
	if _, err := LoadScene("json:does-not-exist"); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene for missing catalogue file, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "direct.json")
	if err := os.WriteFile(path, []byte(validScene), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScene(path); err != nil {
		t.Errorf("LoadScene(path) error: %v", err)
	}
}
