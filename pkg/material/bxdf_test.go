package material

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// fixedSampler returns the same values on every call
type fixedSampler struct {
	v1 float64
	v2 core.Vec2
}

func (s fixedSampler) Get1D() float64 { return s.v1 }
func (s fixedSampler) Get2D() core.Vec2 { return s.v2 }
func (s fixedSampler) Get3D() core.Vec3 { return core.NewVec3(s.v2.X, s.v2.Y, s.v1) }

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

func vecApproxEqual(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() < tolerance
}

func TestNewType(t *testing.T) {
	tests := []struct {
		name    string
		mask    Type
		wantErr bool
	}{
		{"empty", 0, false},
		{"reflective diffuse", Reflective | Diffuse, false},
		{"all", AllTypes, false},
		{"unknown bit", 1 << 5, true},
		{"mixed with unknown", Reflective | 1<<7, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewType(tt.mask)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidType) {
					t.Errorf("Expected ErrInvalidType, got %v", err)
				}
				return
			}
			if err != nil || got != tt.mask {
				t.Errorf("Expected %v, got %v (err %v)", tt.mask, got, err)
			}
		})
	}
}

func TestMatchesType(t *testing.T) {
	l := NewLambertian(core.Gray(0.5))
	tests := []struct {
		mask Type
		want bool
	}{
		{0, true},
		{Reflective, true},
		{Reflective | Diffuse, true},
		{Glossy, false},
		{Reflective | Specular, false},
		{Transmissive, false},
	}
	for _, tt := range tests {
		if got := l.MatchesType(tt.mask); got != tt.want {
			t.Errorf("MatchesType(%v): expected %t, got %t", tt.mask, tt.want, got)
		}
	}

	if s := (Reflective | Glossy).String(); s != "reflective|glossy" {
		t.Errorf("Unexpected type string %q", s)
	}
}

func TestLambertian_SampleF(t *testing.T) {
	albedo := core.NewColor(0.8, 0.4, 0.2)
	l := NewLambertian(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	normals := []core.Vec3{
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, 1, 0),
		core.NewVec3(-1, 2, 0.5).Normalize(),
	}

	for _, n := range normals {
		wo := n
		for i := 0; i < 500; i++ {
			f, wi, pdf := l.SampleF(n, wo, sampler)
			if wi.Dot(n) < 0 {
				t.Fatalf("Sampled wi %v below normal %v", wi, n)
			}
			if pdf != wi.Dot(n)/math.Pi {
				t.Fatalf("Expected pdf %v, got %v", wi.Dot(n)/math.Pi, pdf)
			}
			if !vecApproxEqual(f, albedo.ToVec3().Multiply(1/math.Pi), 1e-12) {
				t.Fatalf("Expected f = albedo/π, got %v", f)
			}
		}
	}
}

func TestLambertian_GrazingSampleStaysAbove(t *testing.T) {
	l := NewLambertian(core.Gray(1))
	n := core.NewVec3(0, 1, 0)
	for _, y := range []float64{0.999999999999, 0.9999999999999999} {
		_, wi, pdf := l.SampleF(n, n, fixedSampler{v2: core.NewVec2(0.37, y)})
		if wi.Dot(n) < 0 || pdf < 0 {
			t.Errorf("Grazing sample below surface: wi=%v pdf=%v", wi, pdf)
		}
	}
}

func TestLambertian_FAndRho(t *testing.T) {
	albedo := core.NewColor(0.3, 0.6, 0.9)
	l := NewLambertian(albedo)
	n := core.NewVec3(0, 1, 0)
	dirs := []core.Vec3{n, core.NewVec3(1, 1, 0).Normalize(), core.NewVec3(0, -1, 0)}
	for _, wo := range dirs {
		if l.Rho(n, wo) != albedo.ToVec3() {
			t.Errorf("Rho should equal albedo for wo=%v", wo)
		}
		for _, wi := range dirs {
			if l.F(n, wo, wi) != albedo.ToVec3().Multiply(1/math.Pi) {
				t.Errorf("F should be albedo/π for wo=%v wi=%v", wo, wi)
			}
		}
	}
}

func TestPerfectSpecular_SampleF(t *testing.T) {
	p := NewPerfectSpecular(core.Gray(0.9))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	tests := []struct {
		normal, wo core.Vec3
	}{
		{core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 0).Normalize()},
		{core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1)},
		{core.NewVec3(1, 1, 1).Normalize(), core.NewVec3(0.2, 0.9, -0.1).Normalize()},
	}
	for _, tt := range tests {
		f, wi, pdf := p.SampleF(tt.normal, tt.wo, sampler)
		expected := tt.normal.Multiply(2 * tt.normal.Dot(tt.wo)).Subtract(tt.wo)
		if wi != expected {
			t.Errorf("Expected exact mirror %v, got %v", expected, wi)
		}
		if pdf != 1 {
			t.Errorf("Expected pdf 1, got %f", pdf)
		}
		if !vecApproxEqual(f, core.Splat(0.9*tt.normal.Dot(wi)), 1e-6) {
			t.Errorf("Unexpected value %v", f)
		}
		if !p.F(tt.normal, tt.wo, wi).IsZero() || !p.Rho(tt.normal, tt.wo).IsZero() {
			t.Error("Mirror F and Rho must be zero")
		}
	}
}

func TestGlossySpecular_F(t *testing.T) {
	g := NewGlossySpecular(core.Gray(0.5), 20)
	n := core.NewVec3(0, 1, 0)
	wo := core.NewVec3(1, 1, 0).Normalize()

	mirror := core.NewVec3(-1, 1, 0).Normalize()
	if f := g.F(n, wo, mirror); !vecApproxEqual(f, core.Splat(0.5), 1e-9) {
		t.Errorf("At the mirror direction expected full albedo, got %v", f)
	}
	if f := g.F(n, wo, wo); !f.IsZero() {
		t.Errorf("Expected zero when r·wo <= 0, got %v", f)
	}

	off := core.NewVec3(-1, 1.2, 0.1).Normalize()
	expected := math.Pow(off.Reflect(n).Dot(wo), 20) * 0.5
	if f := g.F(n, wo, off); !approxEqual(f.X, expected, 1e-12) {
		t.Errorf("Expected %f, got %f", expected, f.X)
	}
	if !g.Rho(n, wo).IsZero() {
		t.Error("Glossy Rho must be zero")
	}
}

func TestGlossySpecular_SampleF(t *testing.T) {
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	n := core.NewVec3(0, 1, 0)
	wos := []core.Vec3{
		n,
		core.NewVec3(1, 1, 0).Normalize(),
		core.NewVec3(1, 0.05, 0).Normalize(),
	}

	for _, e := range []float64{1, 10, 100} {
		g := NewGlossySpecular(core.Gray(0.7), e)
		for _, wo := range wos {
			for i := 0; i < 200; i++ {
				f, wi, pdf := g.SampleF(n, wo, sampler)
				if pdf == 0 {
					continue
				}
				if wi.Dot(n) <= 0 {
					t.Fatalf("e=%f: sample %v below surface with pdf %f", e, wi, pdf)
				}
				if !approxEqual(pdf, g.PDF(n, wo, wi), 1e-9) {
					t.Fatalf("e=%f: sampled pdf %f disagrees with PDF %f", e, pdf, g.PDF(n, wo, wi))
				}
				lobe := math.Pow(wo.Reflect(n).Dot(wi), e)
				if !approxEqual(f.X, 0.7*lobe, 1e-6) {
					t.Fatalf("e=%f: expected value %f, got %f", e, 0.7*lobe, f.X)
				}
			}
		}
	}
}
