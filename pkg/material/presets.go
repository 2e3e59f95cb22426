package material

import (
	"fmt"
	"math"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

func validateReflectance(name string, c core.Color) error {
	if !c.IsFinite() || !c.InUnitRange() {
		return fmt.Errorf("%s %v: %w", name, c, ErrInvalidReflectance)
	}
	return nil
}

func validateExponent(e float64) error {
	if math.IsNaN(e) || math.IsInf(e, 0) || e < 0 {
		return fmt.Errorf("exponent %f: %w", e, ErrInvalidExponent)
	}
	return nil
}

// NewMatte creates a purely diffuse material
func NewMatte(diffuse core.Color) (*Material, error) {
	if err := validateReflectance("diffuse", diffuse); err != nil {
		return nil, err
	}
	return New(NewLambertian(diffuse))
}

// NewPhong creates a diffuse material with a glossy highlight of exponent e
func NewPhong(diffuse, glossy core.Color, e float64) (*Material, error) {
	if err := validateReflectance("diffuse", diffuse); err != nil {
		return nil, err
	}
	if err := validateReflectance("glossy", glossy); err != nil {
		return nil, err
	}
	if err := validateExponent(e); err != nil {
		return nil, err
	}
	return New(NewLambertian(diffuse), NewGlossySpecular(glossy, e))
}

// NewReflective creates a Phong material with an additional mirror term
func NewReflective(diffuse, glossy, mirror core.Color, e float64) (*Material, error) {
	if err := validateReflectance("mirror", mirror); err != nil {
		return nil, err
	}
	m, err := NewPhong(diffuse, glossy, e)
	if err != nil {
		return nil, err
	}
	if err := m.Add(NewPerfectSpecular(mirror)); err != nil {
		return nil, err
	}
	return m, nil
}

// MustMatte is like NewMatte but panics on invalid input
func MustMatte(diffuse core.Color) *Material {
	m, err := NewMatte(diffuse)
	if err != nil {
		panic(err)
	}
	return m
}
