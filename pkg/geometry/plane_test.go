package geometry

import (
	"testing"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

func TestPlane_Hit(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0))

	tests := []struct {
		name      string
		r         core.Ray
		expectHit bool
		expectedT float64
	}{
		{"from above", ray(core.NewVec3(0, 4, 0), core.NewVec3(0, -1, 0)), true, 5},
		{"from below", ray(core.NewVec3(3, -3, 2), core.NewVec3(0, 1, 0)), true, 2},
		{"oblique", ray(core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0)), true, 2 * 1.4142135623730951},
		{"pointing away", ray(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)), false, 0},
		{"parallel", ray(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)), false, 0},
		{"parallel in plane", ray(core.NewVec3(0, -1, 0), core.NewVec3(0, 0, 1)), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := plane.HitWithNormal(tt.r)
			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, ok)
			}
			if !ok {
				return
			}
			if !approxEqual(hit.T, tt.expectedT, 1e-9) {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			// No front/back distinction at the geometry level
			if hit.Normal != plane.Normal {
				t.Errorf("Expected plane normal %v, got %v", plane.Normal, hit.Normal)
			}
		})
	}
}

func TestNewPlane_NormalizesNormal(t *testing.T) {
	plane := NewPlane(core.Vec3{}, core.NewVec3(0, 0, 5))
	if plane.Normal != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected unit normal, got %v", plane.Normal)
	}
}
