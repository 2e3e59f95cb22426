package material

import (
	"math"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// Lambertian is a perfectly diffuse reflection term
type Lambertian struct {
	bxdfType
	Albedo core.Vec3
}

// NewLambertian creates a diffuse term with the given per-channel reflectance
func NewLambertian(albedo core.Color) *Lambertian {
	return &Lambertian{
		bxdfType: bxdfType{Reflective | Diffuse},
		Albedo:   albedo.ToVec3(),
	}
}

// F returns albedo/π independent of direction
func (l *Lambertian) F(normal, wo, wi core.Vec3) core.Vec3 {
	return l.Albedo.Multiply(1.0 / math.Pi)
}

// SampleF draws a cosine-weighted direction about the normal
func (l *Lambertian) SampleF(normal, wo core.Vec3, sampler core.Sampler) (core.Vec3, core.Vec3, float64) {
	wi := core.SampleCosineHemisphere(normal, sampler.Get2D()).Normalize()

	// Rounding can leave a grazing sample just below the surface
	if d := wi.Dot(normal); d < 0 {
		wi = wi.Subtract(normal.Multiply(2 * d))
	}

	return l.Albedo.Multiply(1.0 / math.Pi), wi, wi.Dot(normal) / math.Pi
}

// Rho returns the albedo
func (l *Lambertian) Rho(normal, wo core.Vec3) core.Vec3 {
	return l.Albedo
}

// PDF returns the cosine-weighted density (wi·n)/π
func (l *Lambertian) PDF(normal, wo, wi core.Vec3) float64 {
	return wi.Dot(normal) / math.Pi
}
