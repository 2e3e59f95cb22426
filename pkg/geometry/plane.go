package geometry

import (
	"math"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal.
// Both sides report the same normal.
type Plane struct {
	Point   core.Vec3 // A point on the plane
	Normal  core.Vec3 // Unit normal
	Epsilon float64
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) *Plane {
	return &Plane{
		Point:   point,
		Normal:  normal.Normalize(),
		Epsilon: DefaultEpsilon,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray) (float64, bool) {
	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / ray.Direction.Dot(p.Normal)

	// A parallel ray gives ±Inf or NaN
	if math.IsInf(t, 0) || math.IsNaN(t) || t <= p.Epsilon {
		return 0, false
	}
	return t, true
}

// HitWithNormal tests for intersection and returns the plane normal
func (p *Plane) HitWithNormal(ray core.Ray) (Intersection, bool) {
	t, ok := p.Hit(ray)
	if !ok {
		return Intersection{}, false
	}
	return Intersection{T: t, Normal: p.Normal}, true
}
