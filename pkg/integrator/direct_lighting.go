package integrator

import (
	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/material"
	"github.com/df07/go-direct-raytracer/pkg/scene"
)

// DirectLighting evaluates constant ambient light plus one bounce of direct
// illumination from every light, with hard shadows.
type DirectLighting struct{}

// NewDirectLighting creates a direct lighting integrator
func NewDirectLighting() *DirectLighting {
	return &DirectLighting{}
}

// Li implements Integrator
func (dl *DirectLighting) Li(ray core.Ray, s *scene.Scene, sampler core.Sampler, stats *Stats) core.Vec3 {
	if stats == nil {
		stats = &Stats{}
	}
	stats.Rays++

	hit, ok := s.Hit(ray)
	if !ok {
		return s.Background()
	}
	stats.Hits++

	point := ray.At(hit.T)
	normal := hit.Normal
	wo := ray.Direction.Negate()

	radiance := s.Ambient().MultiplyVec(hit.Material.Rho(normal, wo, material.Reflective))

	for i := 0; i < s.NumLights(); i++ {
		light, err := s.Light(i)
		if err != nil {
			break
		}
		sample := light.Sample(point)
		wi := sample.Direction
		cosTheta := normal.Dot(wi)
		if cosTheta <= 0 {
			continue
		}

		if light.CastsShadows() && dl.occluded(s, point, sample.Direction, sample.Distance, stats) {
			continue
		}

		f := hit.Material.F(normal, wo, wi, material.Reflective)
		radiance = radiance.Add(f.MultiplyVec(sample.Emission).Multiply(cosTheta))
	}

	return radiance
}

// occluded casts a shadow ray from the hit point; each shape's epsilon keeps it off its own surface
func (dl *DirectLighting) occluded(s *scene.Scene, point, toLight core.Vec3, distance float64, stats *Stats) bool {
	stats.ShadowRays++
	shadowRay, err := core.NewRay(point, toLight)
	if err != nil {
		// Light sits on the surface
		return false
	}
	if t, ok := s.HitDistance(shadowRay); ok && t < distance {
		stats.Occluded++
		return true
	}
	return false
}

var _ Integrator = (*DirectLighting)(nil)
