package material

import (
	"math"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// GlossySpecular is a Phong lobe around the mirror direction
type GlossySpecular struct {
	bxdfType
	Albedo   core.Vec3
	Exponent float64
}

// NewGlossySpecular creates a glossy term with reflectance albedo and lobe exponent e
func NewGlossySpecular(albedo core.Color, e float64) *GlossySpecular {
	return &GlossySpecular{
		bxdfType: bxdfType{Reflective | Glossy},
		Albedo:   albedo.ToVec3(),
		Exponent: e,
	}
}

// lobe returns max(0, a·b)^e
func (g *GlossySpecular) lobe(a, b core.Vec3) float64 {
	d := a.Dot(b)
	if d <= 0 {
		return 0
	}
	return math.Pow(d, g.Exponent)
}

// F returns albedo·(r·wo)^e where r mirrors wi about the normal
func (g *GlossySpecular) F(normal, wo, wi core.Vec3) core.Vec3 {
	return g.Albedo.Multiply(g.lobe(wi.Reflect(normal), wo))
}

// SampleF draws a direction from the Phong lobe about the mirror of wo.
// A sample below the surface has its tangent components flipped.
func (g *GlossySpecular) SampleF(normal, wo core.Vec3, sampler core.Sampler) (core.Vec3, core.Vec3, float64) {
	r := wo.Reflect(normal)
	u, v := core.OrthonormalBasis(r)
	s := core.SampleLobeLocal(g.Exponent, sampler.Get2D())

	wi := u.Multiply(s.X).Add(v.Multiply(s.Y)).Add(r.Multiply(s.Z))
	nDotWi := normal.Dot(wi)
	if nDotWi < 0 {
		wi = u.Multiply(-s.X).Add(v.Multiply(-s.Y)).Add(r.Multiply(s.Z))
		nDotWi = normal.Dot(wi)
	}
	if nDotWi <= 0 {
		return core.Vec3{}, wi, 0
	}

	phong := g.lobe(r, wi)
	return g.Albedo.Multiply(phong), wi, phong * nDotWi
}

// Rho is zero; glossy terms do not take part in ambient lighting
func (g *GlossySpecular) Rho(normal, wo core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// PDF returns lobe·(n·wi) for the lobe about the mirror of wo
func (g *GlossySpecular) PDF(normal, wo, wi core.Vec3) float64 {
	nDotWi := normal.Dot(wi)
	if nDotWi <= 0 {
		return 0
	}
	return g.lobe(wo.Reflect(normal), wi) * nDotWi
}
