package integrator

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
)

// PathEMSIntegrator is a path tracer with next-event estimation. Emitters hit
// by a BSDF sample count only after discrete bounces, where light sampling
// could not have found them.
type PathEMSIntegrator struct {
	opts Options
}

// NewPathEMSIntegrator creates an emitter-sampling path tracer
func NewPathEMSIntegrator(opts Options) *PathEMSIntegrator {
	return &PathEMSIntegrator{opts: opts}
}

// RayColor traces one path
func (pt *PathEMSIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	var radiance core.Vec3
	throughput := core.Splat(1)
	lightSampler := lights.NewUniformLightSampler(scene.Emitters())

	// Camera rays see emitters directly
	includeEmitted := true

	for depth := 0; depth < pt.opts.MaxDepth; depth++ {
		its, ok := scene.RayIntersect(ray)
		if !ok {
			break
		}

		if includeEmitted {
			accumulate(&radiance, throughput, emittedRadiance(its, ray))
		}

		if its.BSDF == nil {
			break
		}
		wi := its.ToLocal(ray.Direction.Negate())

		if its.BSDF.IsDiffuse() {
			if ls, ok := sampleDirect(scene, lightSampler, sampler, its, wi); ok {
				accumulate(&radiance, throughput, ls.contribution)
			}
		}

		if !russianRoulette(depth, &throughput, sampler, pt.opts) {
			break
		}

		bRec := material.NewSampleRecord(wi)
		weight := its.BSDF.Sample(&bRec, sampler.Get2D())
		if weight.IsZero() {
			break
		}
		includeEmitted = bRec.Measure == material.MeasureDiscrete

		throughput = throughput.MultiplyVec(weight)
		if !throughput.IsValidRadiance() {
			break
		}
		ray = core.NewRay(its.Point, its.ToWorld(bRec.Wo))
	}

	return radiance
}
