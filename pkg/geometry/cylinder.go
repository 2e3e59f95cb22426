package geometry

import (
	"math"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// Cylinder represents a finite capped cylinder aligned with the Y axis
type Cylinder struct {
	Base    core.Vec3 // Center of the bottom cap
	Radius  float64
	Height  float64
	Epsilon float64
}

// NewCylinder creates a new cylinder standing on base
func NewCylinder(base core.Vec3, radius, height float64) *Cylinder {
	return &Cylinder{
		Base:    base,
		Radius:  radius,
		Height:  height,
		Epsilon: DefaultEpsilon,
	}
}

type cylinderPart int

const (
	cylinderSide cylinderPart = iota
	cylinderBottom
	cylinderTop
)

// nearest returns the smallest valid t over both lateral roots and both caps
func (c *Cylinder) nearest(ray core.Ray) (float64, cylinderPart, bool) {
	best := math.Inf(1)
	var part cylinderPart
	consider := func(t float64, p cylinderPart) {
		if t > c.Epsilon && t < best {
			best, part = t, p
		}
	}

	// Work relative to the axis so the base can sit anywhere in x/z
	ox := ray.Origin.X - c.Base.X
	oz := ray.Origin.Z - c.Base.Z
	dx, dz := ray.Direction.X, ray.Direction.Z
	r2 := c.Radius * c.Radius

	// Lateral surface of the infinite cylinder, clipped to the height with epsilon slack
	a := dx*dx + dz*dz
	if a > 0 {
		b := 2 * (ox*dx + oz*dz)
		cc := ox*ox + oz*oz - r2
		if disc := b*b - 4*a*cc; disc >= 0 {
			e := math.Sqrt(disc)
			yMin := c.Base.Y - c.Epsilon
			yMax := c.Base.Y + c.Height + c.Epsilon
			for _, t := range [2]float64{(-b - e) / (2 * a), (-b + e) / (2 * a)} {
				if y := ray.Origin.Y + ray.Direction.Y*t; y >= yMin && y <= yMax {
					consider(t, cylinderSide)
				}
			}
		}
	}

	// Cap disks
	if ray.Direction.Y != 0 {
		for _, disk := range [2]struct {
			y    float64
			part cylinderPart
		}{
			{c.Base.Y, cylinderBottom},
			{c.Base.Y + c.Height, cylinderTop},
		} {
			t := (disk.y - ray.Origin.Y) / ray.Direction.Y
			px := ox + dx*t
			pz := oz + dz*t
			if px*px+pz*pz < r2 {
				consider(t, disk.part)
			}
		}
	}

	if math.IsInf(best, 1) {
		return 0, 0, false
	}
	return best, part, true
}

// Hit tests if a ray intersects with the cylinder
func (c *Cylinder) Hit(ray core.Ray) (float64, bool) {
	t, _, ok := c.nearest(ray)
	return t, ok
}

// HitWithNormal tests for intersection and computes the outward normal
func (c *Cylinder) HitWithNormal(ray core.Ray) (Intersection, bool) {
	t, part, ok := c.nearest(ray)
	if !ok {
		return Intersection{}, false
	}

	var normal core.Vec3
	switch part {
	case cylinderBottom:
		normal = core.NewVec3(0, -1, 0)
	case cylinderTop:
		normal = core.NewVec3(0, 1, 0)
	default:
		p := ray.At(t)
		normal = core.NewVec3((p.X-c.Base.X)/c.Radius, 0, (p.Z-c.Base.Z)/c.Radius)
	}
	return Intersection{T: t, Normal: normal}, true
}

// BoundingBox returns the axis-aligned bounding box for this cylinder
func (c *Cylinder) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(
		c.Base.Subtract(core.NewVec3(c.Radius, 0, c.Radius)),
		c.Base.Add(core.NewVec3(c.Radius, c.Height, c.Radius)),
	)
}
