package integrator

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

// AOIntegrator estimates cosine-weighted ambient occlusion at the first hit
type AOIntegrator struct{}

// NewAOIntegrator creates an ambient occlusion integrator
func NewAOIntegrator(opts Options) *AOIntegrator {
	return &AOIntegrator{}
}

// RayColor returns 1 when a cosine-sampled direction from the hit escapes the scene, else 0
func (ao *AOIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	its, ok := scene.RayIntersect(ray)
	if !ok {
		return core.Vec3{}
	}

	w := its.ToWorld(warp.SquareToCosineHemisphere(sampler.Get2D()))
	if scene.Occluded(core.NewRay(its.Point, w), math.Inf(1)) {
		return core.Vec3{}
	}
	return core.Splat(1)
}
