package camera

import (
	"fmt"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

const (
	TypePinHole  = "pinhole"
	TypeThinLens = "thinlens"
)

// Config describes a camera and its sensor
type Config struct {
	Type          string
	Width         int
	Height        int
	Eye           core.Vec3
	LookAt        core.Vec3
	Up            core.Vec3
	ViewDistance  float64
	FocalDistance float64 // thin lens only
	LensRadius    float64 // thin lens only
}

// DefaultConfig returns a 400x400 pinhole looking down -Z from z=200
func DefaultConfig() Config {
	return Config{
		Type:         TypePinHole,
		Width:        400,
		Height:       400,
		Eye:          core.NewVec3(0, 0, 200),
		LookAt:       core.NewVec3(0, 0, 0),
		Up:           core.NewVec3(0, 1, 0),
		ViewDistance: 100,
	}
}

// New builds the camera described by cfg with a fresh sensor
func New(cfg Config) (Camera, error) {
	sensor, err := NewImageSensor(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	switch cfg.Type {
	case TypePinHole, "":
		return NewPinHole(sensor, cfg.Eye, cfg.LookAt, cfg.Up, cfg.ViewDistance)
	case TypeThinLens:
		return NewThinLens(sensor, cfg.Eye, cfg.LookAt, cfg.Up, cfg.ViewDistance, cfg.FocalDistance, cfg.LensRadius)
	default:
		return nil, fmt.Errorf("camera type %q: %w", cfg.Type, ErrInvalidCamera)
	}
}

// MergeConfig returns base with every non-zero field of override applied on top
func MergeConfig(base, override Config) Config {
	merged := base
	if override.Type != "" {
		merged.Type = override.Type
	}
	if override.Width != 0 {
		merged.Width = override.Width
	}
	if override.Height != 0 {
		merged.Height = override.Height
	}
	if !override.Eye.IsZero() {
		merged.Eye = override.Eye
	}
	if !override.LookAt.IsZero() {
		merged.LookAt = override.LookAt
	}
	if !override.Up.IsZero() {
		merged.Up = override.Up
	}
	if override.ViewDistance != 0 {
		merged.ViewDistance = override.ViewDistance
	}
	if override.FocalDistance != 0 {
		merged.FocalDistance = override.FocalDistance
	}
	if override.LensRadius != 0 {
		merged.LensRadius = override.LensRadius
	}
	return merged
}
