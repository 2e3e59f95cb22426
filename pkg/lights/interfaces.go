package lights

import "github.com/df07/go-direct-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint LightType = "point"
)

// Light interface for sources that can be sampled for direct lighting
type Light interface {
	Type() LightType

	// Sample returns the direction FROM the shading point TO the light
	Sample(point core.Vec3) LightSample

	// CastsShadows reports whether occlusion should be tested for this light
	CastsShadows() bool
}

// LightSample contains information about a light as seen from a shading point
type LightSample struct {
	Point     core.Vec3 // Point on the light source
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light
	Emission  core.Vec3 // Incident radiance
}
