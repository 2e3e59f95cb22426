package material

import "github.com/df07/go-direct-raytracer/pkg/core"

// PerfectSpecular is an ideal mirror. It cannot be evaluated pointwise, only sampled.
type PerfectSpecular struct {
	bxdfType
	Albedo core.Vec3
}

// NewPerfectSpecular creates a mirror term with the given reflectance
func NewPerfectSpecular(albedo core.Color) *PerfectSpecular {
	return &PerfectSpecular{
		bxdfType: bxdfType{Reflective | Specular},
		Albedo:   albedo.ToVec3(),
	}
}

// F is zero everywhere
func (p *PerfectSpecular) F(normal, wo, wi core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// SampleF returns the exact mirror of wo with pdf 1.
// The value is albedo scaled by the cosine at wi; the sampler is not consumed.
func (p *PerfectSpecular) SampleF(normal, wo core.Vec3, sampler core.Sampler) (core.Vec3, core.Vec3, float64) {
	wi := wo.Reflect(normal)
	return p.Albedo.Multiply(normal.Dot(wi)), wi, 1.0
}

// Rho is zero
func (p *PerfectSpecular) Rho(normal, wo core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// PDF is 1 for the delta direction
func (p *PerfectSpecular) PDF(normal, wo, wi core.Vec3) float64 {
	return 1.0
}
