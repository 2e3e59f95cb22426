package geometry

import (
	"math"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// Box represents an axis-aligned box
type Box struct {
	Min     core.Vec3
	Max     core.Vec3
	Epsilon float64
}

// NewBox creates a box from two opposite corners in any order
func NewBox(p0, p1 core.Vec3) *Box {
	bounds := core.NewAABBFromPoints(p0, p1)
	return &Box{
		Min:     bounds.Min,
		Max:     bounds.Max,
		Epsilon: DefaultEpsilon,
	}
}

// boxFace is one of the six bounding planes
type boxFace struct {
	axis   int
	normal core.Vec3
	max    bool // true for the face at Max along axis
}

var boxFaces = [6]boxFace{
	{axis: 0, normal: core.NewVec3(-1, 0, 0)},
	{axis: 0, normal: core.NewVec3(1, 0, 0), max: true},
	{axis: 1, normal: core.NewVec3(0, -1, 0)},
	{axis: 1, normal: core.NewVec3(0, 1, 0), max: true},
	{axis: 2, normal: core.NewVec3(0, 0, -1)},
	{axis: 2, normal: core.NewVec3(0, 0, 1), max: true},
}

func axisOf(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// candidate reports whether a face can be crossed by the ray.
// A face qualifies when the origin is on its outside moving in, or inside the slab moving towards it.
func (b *Box) candidate(ray core.Ray, f boxFace) bool {
	o := axisOf(ray.Origin, f.axis)
	d := axisOf(ray.Direction, f.axis)
	lo := axisOf(b.Min, f.axis)
	hi := axisOf(b.Max, f.axis)
	if f.max {
		return (o >= hi && d <= 0) || (o > lo && d >= 0)
	}
	return (o <= lo && d >= 0) || (o < hi && d <= 0)
}

// withinFace checks the hit point against the extent on the two other axes, inclusively
func (b *Box) withinFace(p core.Vec3, axis int) bool {
	for other := 0; other < 3; other++ {
		if other == axis {
			continue
		}
		v := axisOf(p, other)
		if v < axisOf(b.Min, other) || v > axisOf(b.Max, other) {
			return false
		}
	}
	return true
}

func (b *Box) nearest(ray core.Ray) (Intersection, bool) {
	tMin := math.MaxFloat64
	var normal core.Vec3

	for _, f := range boxFaces {
		if !b.candidate(ray, f) {
			continue
		}
		corner := b.Min
		if f.max {
			corner = b.Max
		}
		t := corner.Subtract(ray.Origin).Dot(f.normal) / ray.Direction.Dot(f.normal)
		if t < tMin && t > b.Epsilon && b.withinFace(ray.At(t), f.axis) {
			tMin = t
			normal = f.normal
		}
	}

	if tMin == math.MaxFloat64 {
		return Intersection{}, false
	}
	return Intersection{T: tMin, Normal: normal}, true
}

// Hit tests if a ray intersects with the box
func (b *Box) Hit(ray core.Ray) (float64, bool) {
	hit, ok := b.nearest(ray)
	return hit.T, ok
}

// HitWithNormal tests for intersection and returns the normal of the face that was hit
func (b *Box) HitWithNormal(ray core.Ray) (Intersection, bool) {
	return b.nearest(ray)
}

// BoundingBox returns the box itself
func (b *Box) BoundingBox() core.AABB {
	return core.AABB{Min: b.Min, Max: b.Max}
}
