package integrator

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
)

// WhittedIntegrator follows discrete (mirror/glass) chains and gathers direct
// lighting from every emitter at the first diffuse surface reached
type WhittedIntegrator struct {
	maxDepth     int
	continuation float64
}

// NewWhittedIntegrator creates a Whitted-style integrator
func NewWhittedIntegrator(opts Options) *WhittedIntegrator {
	return &WhittedIntegrator{
		maxDepth:     opts.MaxDepth,
		continuation: opts.WhittedContinuation,
	}
}

// RayColor walks the specular chain iteratively. Each discrete bounce continues
// with fixed probability and divides its weight by that probability.
func (w *WhittedIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	var radiance core.Vec3
	throughput := core.Splat(1)

	for depth := 0; depth < w.maxDepth; depth++ {
		its, ok := scene.RayIntersect(ray)
		if !ok {
			break
		}

		// Lights are visible directly and through specular chains
		accumulate(&radiance, throughput, emittedRadiance(its, ray))

		if its.BSDF == nil {
			break
		}

		if its.BSDF.IsDiffuse() {
			accumulate(&radiance, throughput, w.directLighting(scene, sampler, its, ray))
			break
		}

		bRec := material.NewSampleRecord(its.ToLocal(ray.Direction.Negate()))
		weight := its.BSDF.Sample(&bRec, sampler.Get2D())
		if weight.IsZero() {
			break
		}
		if sampler.Get1D() >= w.continuation {
			break
		}

		throughput = throughput.MultiplyVec(weight).Multiply(1.0 / w.continuation)
		if !throughput.IsValidRadiance() {
			break
		}
		ray = core.NewRay(its.Point, its.ToWorld(bRec.Wo))
	}

	return radiance
}

// directLighting sums one light sample from every emitter in the scene
func (w *WhittedIntegrator) directLighting(scene Scene, sampler core.Sampler, its *geometry.Intersection, ray core.Ray) core.Vec3 {
	var lo core.Vec3
	wi := its.ToLocal(ray.Direction.Negate())

	for _, emitter := range scene.Emitters() {
		rec := lights.NewSampleQueryRecord(its.Point)
		le, pdf := emitter.Sample(&rec, sampler.Get2D())
		if pdf <= 0 || le.IsZero() {
			continue
		}

		if scene.Occluded(core.NewRay(its.Point, rec.Wi), rec.Dist-core.Epsilon) {
			continue
		}

		bRec := material.NewEvalRecord(wi, its.ToLocal(rec.Wi), material.MeasureSolidAngle)
		fr := its.BSDF.Eval(bRec)

		g := math.Abs(its.Normal().Dot(rec.Wi)) * math.Abs(rec.N.Dot(rec.Wi)) / (rec.Dist * rec.Dist)
		contribution := fr.MultiplyVec(le).Multiply(g / pdf)
		if contribution.IsValidRadiance() {
			lo = lo.Add(contribution)
		}
	}
	return lo
}
