package integrator

import (
	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/scene"
)

// Stats counts the work done while tracing. A Stats value must not be shared between goroutines.
type Stats struct {
	Rays       int64 // Primary rays traced
	Hits       int64 // Primary rays that hit a primitive
	ShadowRays int64 // Shadow rays cast toward lights
	Occluded   int64 // Shadow rays that found a blocker
}

// Merge adds the counters of other into s
func (s *Stats) Merge(other Stats) {
	s.Rays += other.Rays
	s.Hits += other.Hits
	s.ShadowRays += other.ShadowRays
	s.Occluded += other.Occluded
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Li returns the radiance arriving along ray.
	// stats may be nil when the caller does not need counters.
	Li(ray core.Ray, scene *scene.Scene, sampler core.Sampler, stats *Stats) core.Vec3
}
