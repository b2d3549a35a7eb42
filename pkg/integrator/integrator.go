package integrator

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
)

// Scene is the read-only view of a scene the estimators need. It is shared by
// all render workers, so implementations must be safe for concurrent reads.
type Scene interface {
	// RayIntersect returns the closest surface hit along the ray
	RayIntersect(ray core.Ray) (*geometry.Intersection, bool)

	// Occluded reports whether anything lies on the ray between core.Epsilon and tMax
	Occluded(ray core.Ray, tMax float64) bool

	// Emitters returns the scene's lights in a stable order
	Emitters() []lights.Emitter
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along the reverse of ray.
	// The sampler belongs to the caller's task and is not retained.
	RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3
}

// Options configures the estimators. Each estimator reads only the fields it uses.
type Options struct {
	MaxDepth            int       // Maximum number of path vertices
	RouletteStartDepth  int       // First depth at which path tracers apply Russian roulette
	RouletteMaxSurvival float64   // Cap on the throughput-based survival probability
	WhittedContinuation float64   // Fixed continuation probability on Whitted specular chains
	LightPosition       core.Vec3 // Point light position for the simple estimator
	LightEnergy         core.Vec3 // Point light energy for the simple estimator
}

// DefaultOptions returns the settings the estimators are tuned for
func DefaultOptions() Options {
	return Options{
		MaxDepth:            100,
		RouletteStartDepth:  3,
		RouletteMaxSurvival: 0.99,
		WhittedContinuation: 0.95,
		LightEnergy:         core.Splat(1),
	}
}
