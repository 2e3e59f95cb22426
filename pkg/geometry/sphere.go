package geometry

import (
	"math"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center  core.Vec3
	Radius  float64
	Epsilon float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center:  center,
		Radius:  radius,
		Epsilon: SphereEpsilon,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray) (float64, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4.0*a*c
	if discriminant < 0 {
		return 0, false
	}

	e := math.Sqrt(discriminant)
	denom := 2.0 * a

	// Try the closer intersection point first
	if t := (-b - e) / denom; t > s.Epsilon {
		return t, true
	}
	if t := (-b + e) / denom; t > s.Epsilon {
		return t, true
	}
	return 0, false
}

// HitWithNormal tests for intersection and computes the outward normal
func (s *Sphere) HitWithNormal(ray core.Ray) (Intersection, bool) {
	t, ok := s.Hit(ray)
	if !ok {
		return Intersection{}, false
	}
	normal := ray.At(t).Subtract(s.Center).Divide(s.Radius)
	return Intersection{T: t, Normal: normal}, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.Splat(s.Radius)
	return core.NewAABBFromPoints(s.Center.Subtract(radius), s.Center.Add(radius))
}
