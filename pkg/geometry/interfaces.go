package geometry

import "github.com/df07/go-direct-raytracer/pkg/core"

// Shape is a closed surface that can be intersected by rays.
// Both methods report the smallest t beyond the shape's epsilon; outputs are zero when ok is false.
type Shape interface {
	// Hit returns only the hit distance, for shadow rays
	Hit(ray core.Ray) (float64, bool)
	// HitWithNormal returns the hit distance and the outward unit normal
	HitWithNormal(ray core.Ray) (Intersection, bool)
}

// Bounded is implemented by finite shapes
type Bounded interface {
	BoundingBox() core.AABB
}

// Intersection is the geometric part of a ray hit
type Intersection struct {
	T      float64
	Normal core.Vec3
}

const (
	// SphereEpsilon is the default minimum hit distance for spheres
	SphereEpsilon = 1e-8
	// DefaultEpsilon is the default minimum hit distance for planes, boxes and cylinders
	DefaultEpsilon = 1e-9
)

var (
	_ Shape   = (*Sphere)(nil)
	_ Shape   = (*Plane)(nil)
	_ Shape   = (*Box)(nil)
	_ Shape   = (*Cylinder)(nil)
	_ Bounded = (*Sphere)(nil)
	_ Bounded = (*Box)(nil)
	_ Bounded = (*Cylinder)(nil)
)
