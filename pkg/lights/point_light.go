package lights

import "github.com/df07/go-direct-raytracer/pkg/core"

// PointLight is an isotropic light at a single position, with no falloff
type PointLight struct {
	Position core.Vec3
	Radiance core.Vec3
	Shadows  bool
}

// NewPointLight creates a point light from a display-range color and an intensity scale
func NewPointLight(position core.Vec3, color core.Color, scale float64, castsShadows bool) *PointLight {
	return &PointLight{
		Position: position,
		Radiance: color.ToVec3().Multiply(scale),
		Shadows:  castsShadows,
	}
}

// Type implements Light
func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// CastsShadows implements Light
func (pl *PointLight) CastsShadows() bool {
	return pl.Shadows
}

// Sample implements Light
func (pl *PointLight) Sample(point core.Vec3) LightSample {
	toLight := pl.Position.Subtract(point)
	return LightSample{
		Point:     pl.Position,
		Direction: toLight.Normalize(),
		Distance:  toLight.Length(),
		Emission:  pl.Radiance,
	}
}

var _ Light = (*PointLight)(nil)
