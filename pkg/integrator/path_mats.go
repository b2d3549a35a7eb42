package integrator

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/material"
)

// PathMatsIntegrator is a path tracer that only samples materials; lights
// contribute only when a path happens to hit them
type PathMatsIntegrator struct {
	opts Options
}

// NewPathMatsIntegrator creates a material-sampling path tracer
func NewPathMatsIntegrator(opts Options) *PathMatsIntegrator {
	return &PathMatsIntegrator{opts: opts}
}

// RayColor traces one path
func (pt *PathMatsIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	var radiance core.Vec3
	throughput := core.Splat(1)

	for depth := 0; depth < pt.opts.MaxDepth; depth++ {
		its, ok := scene.RayIntersect(ray)
		if !ok {
			break
		}

		accumulate(&radiance, throughput, emittedRadiance(its, ray))

		if !russianRoulette(depth, &throughput, sampler, pt.opts) {
			break
		}

		if its.BSDF == nil {
			break
		}
		bRec := material.NewSampleRecord(its.ToLocal(ray.Direction.Negate()))
		weight := its.BSDF.Sample(&bRec, sampler.Get2D())
		if weight.IsZero() {
			break
		}

		throughput = throughput.MultiplyVec(weight)
		if !throughput.IsValidRadiance() {
			break
		}
		ray = core.NewRay(its.Point, its.ToWorld(bRec.Wo))
	}

	return radiance
}
