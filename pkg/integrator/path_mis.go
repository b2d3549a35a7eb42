package integrator

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
)

// PathMISIntegrator combines BSDF sampling and next-event estimation with the
// balance heuristic
type PathMISIntegrator struct {
	opts Options
}

// NewPathMISIntegrator creates a multiple importance sampling path tracer
func NewPathMISIntegrator(opts Options) *PathMISIntegrator {
	return &PathMISIntegrator{opts: opts}
}

// RayColor traces one path
func (pt *PathMISIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	var radiance core.Vec3
	throughput := core.Splat(1)
	lightSampler := lights.NewUniformLightSampler(scene.Emitters())

	// Density and measure of the BSDF sample that produced the current ray.
	// The camera ray behaves like a discrete bounce: light sampling cannot produce it.
	lastPDF := 0.0
	lastDiscrete := true

	for depth := 0; depth < pt.opts.MaxDepth; depth++ {
		its, ok := scene.RayIntersect(ray)
		if !ok {
			break
		}

		if its.IsEmitter() {
			le := emittedRadiance(its, ray)
			if !le.IsZero() {
				weight := 1.0
				if !lastDiscrete {
					weight = BalanceHeuristic(lastPDF, emitterSolidAnglePDF(its, ray, lightSampler))
				}
				accumulate(&radiance, throughput, le.Multiply(weight))
			}
		}

		if its.BSDF == nil {
			break
		}
		wi := its.ToLocal(ray.Direction.Negate())

		if its.BSDF.IsDiffuse() {
			if ls, ok := sampleDirect(scene, lightSampler, sampler, its, wi); ok {
				weight := BalanceHeuristic(ls.pdfLight, ls.pdfBSDF)
				accumulate(&radiance, throughput, ls.contribution.Multiply(weight))
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
		lastDiscrete = bRec.Measure == material.MeasureDiscrete
		lastPDF = its.BSDF.PDF(bRec)

		throughput = throughput.MultiplyVec(weight)
		if !throughput.IsValidRadiance() {
			break
		}
		ray = core.NewRay(its.Point, its.ToWorld(bRec.Wo))
	}

	return radiance
}
