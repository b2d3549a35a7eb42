package integrator

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
)

// BalanceHeuristic returns pdfA / (pdfA + pdfB), or 0 when both densities vanish
func BalanceHeuristic(pdfA, pdfB float64) float64 {
	sum := pdfA + pdfB
	if sum <= 0 {
		return 0
	}
	return pdfA / sum
}

// AreaToSolidAngle converts an area density at a point seen at the given
// distance and cosine into a solid-angle density at the viewer. Grazing points
// have no finite solid-angle density and return 0.
func AreaToSolidAngle(pdfArea, distance, cosAtLight float64) float64 {
	if cosAtLight <= 0 {
		return 0
	}
	return pdfArea * distance * distance / cosAtLight
}

// russianRoulette applies throughput-based roulette from the configured depth on.
// It returns false when the path is killed; survivors have their throughput rescaled.
func russianRoulette(depth int, throughput *core.Vec3, sampler core.Sampler, opts Options) bool {
	if depth < opts.RouletteStartDepth {
		return true
	}

	survival := math.Min(opts.RouletteMaxSurvival, throughput.MaxComponent())
	if survival <= 0 || sampler.Get1D() > survival {
		return false
	}
	*throughput = throughput.Multiply(1.0 / survival)
	return true
}

// emittedRadiance returns the radiance a hit emitter sends back along ray
func emittedRadiance(its *geometry.Intersection, ray core.Ray) core.Vec3 {
	if !its.IsEmitter() {
		return core.Vec3{}
	}
	return its.Emitter.Eval(its.EmitterRecord(ray.Origin))
}

// emitterSolidAnglePDF is the density with which light sampling would have
// produced the direction of ray toward the hit emitter, selection included
func emitterSolidAnglePDF(its *geometry.Intersection, ray core.Ray, lightSampler lights.LightSampler) float64 {
	rec := its.EmitterRecord(ray.Origin)
	pdfArea := its.Emitter.PDF(rec)
	cosAtLight := math.Abs(rec.N.Dot(rec.Wi))
	return AreaToSolidAngle(pdfArea, rec.Dist, cosAtLight) * lightSampler.Probability(its.Emitter)
}

// lightSample is the outcome of one next-event estimation
type lightSample struct {
	contribution core.Vec3 // fr·Le·|cosθ| / pdfLight, before throughput
	pdfLight     float64   // Solid-angle density including emitter selection
	pdfBSDF      float64   // BSDF density toward the sampled light direction
}

// sampleDirect picks one emitter, samples a point on it and returns the
// unoccluded direct lighting estimate at its. It consumes one 1D and one 2D sample.
func sampleDirect(scene Scene, lightSampler lights.LightSampler, sampler core.Sampler, its *geometry.Intersection, wi core.Vec3) (lightSample, bool) {
	emitter, selection, _ := lightSampler.SampleLight(sampler.Get1D())
	u := sampler.Get2D()
	if emitter == nil || selection <= 0 {
		return lightSample{}, false
	}

	rec := lights.NewSampleQueryRecord(its.Point)
	le, pdfArea := emitter.Sample(&rec, u)
	if pdfArea <= 0 || le.IsZero() {
		return lightSample{}, false
	}

	cosAtLight := math.Abs(rec.N.Dot(rec.Wi))
	pdfLight := AreaToSolidAngle(pdfArea, rec.Dist, cosAtLight) * selection
	if pdfLight <= 0 || math.IsInf(pdfLight, 0) || math.IsNaN(pdfLight) {
		return lightSample{}, false
	}

	bRec := material.NewEvalRecord(wi, its.ToLocal(rec.Wi), material.MeasureSolidAngle)
	fr := its.BSDF.Eval(bRec)
	if fr.IsZero() {
		return lightSample{}, false
	}

	shadowRay := core.NewRay(its.Point, rec.Wi)
	if scene.Occluded(shadowRay, rec.Dist-core.Epsilon) {
		return lightSample{}, false
	}

	contribution := fr.MultiplyVec(le).Multiply(math.Abs(core.CosTheta(bRec.Wo)) / pdfLight)
	return lightSample{
		contribution: contribution,
		pdfLight:     pdfLight,
		pdfBSDF:      its.BSDF.PDF(bRec),
	}, true
}

// accumulate adds throughput·radiance to total unless the product is not a valid radiance
func accumulate(total *core.Vec3, throughput, radiance core.Vec3) {
	contribution := throughput.MultiplyVec(radiance)
	if contribution.IsValidRadiance() {
		*total = total.Add(contribution)
	}
}
