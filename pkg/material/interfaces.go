package material

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

var (
	// ErrInvalidType is returned when a type mask has bits outside AllTypes
	ErrInvalidType = errors.New("invalid bxdf type")

	// ErrTooManyBxDFs is returned when adding to a full material
	ErrTooManyBxDFs = errors.New("too many bxdfs in material")

	// ErrInvalidReflectance is returned when a reflectance channel lies outside [0, 1]
	ErrInvalidReflectance = errors.New("reflectance outside [0, 1]")

	// ErrInvalidExponent is returned for a negative or non-finite specular exponent
	ErrInvalidExponent = errors.New("invalid specular exponent")
)

// Type is a bitmask of scattering capabilities
type Type uint8

const (
	Reflective Type = 1 << iota
	Transmissive
	Diffuse
	Glossy
	Specular

	// AllTypes is the union of every capability flag
	AllTypes = Reflective | Transmissive | Diffuse | Glossy | Specular
)

// NewType validates a mask built from the capability flags
func NewType(mask Type) (Type, error) {
	if mask&AllTypes != mask {
		return 0, fmt.Errorf("mask %#x: %w", uint8(mask), ErrInvalidType)
	}
	return mask, nil
}

// Has reports whether every bit of mask is set in t
func (t Type) Has(mask Type) bool {
	return t&mask == mask
}

// String returns the flag names joined with '|'
func (t Type) String() string {
	names := []string{"reflective", "transmissive", "diffuse", "glossy", "specular"}
	var parts []string
	for i, name := range names {
		if t&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// BxDF is a single scattering term.
// Directions are unit vectors pointing away from the surface; wo faces the viewer, wi faces the light.
type BxDF interface {
	// Type returns the term's capability flags
	Type() Type

	// MatchesType is true iff all bits of mask are set in Type()
	MatchesType(mask Type) bool

	// F evaluates the scattering density for a fixed pair of directions
	F(normal, wo, wi core.Vec3) core.Vec3

	// SampleF draws an incoming direction and returns the associated value and its pdf
	SampleF(normal, wo core.Vec3, sampler core.Sampler) (f core.Vec3, wi core.Vec3, pdf float64)

	// Rho returns the hemispherical reflectance, used for ambient light
	Rho(normal, wo core.Vec3) core.Vec3

	// PDF evaluates the sampling density for wi
	PDF(normal, wo, wi core.Vec3) float64
}

// bxdfType holds the immutable capability flags shared by every term
type bxdfType struct {
	t Type
}

func (b bxdfType) Type() Type { return b.t }

func (b bxdfType) MatchesType(mask Type) bool { return b.t.Has(mask) }

var (
	_ BxDF = (*Lambertian)(nil)
	_ BxDF = (*GlossySpecular)(nil)
	_ BxDF = (*PerfectSpecular)(nil)
)
