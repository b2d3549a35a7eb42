package lights

import "github.com/df07/go-light-transport/pkg/core"

// EmitterQueryRecord describes one emitter evaluation or sampling request.
// Ref is the shading point; P and N are the point and normal on the emitter;
// Wi is the unit direction from Ref toward P and Dist the distance between them.
type EmitterQueryRecord struct {
	Ref  core.Vec3
	P    core.Vec3
	N    core.Vec3
	Wi   core.Vec3
	Dist float64
}

// NewSampleQueryRecord prepares a record for Emitter.Sample from the given shading point
func NewSampleQueryRecord(ref core.Vec3) EmitterQueryRecord {
	return EmitterQueryRecord{Ref: ref}
}

// NewHitQueryRecord describes a ray from ref that reached the emitter at p with normal n
func NewHitQueryRecord(ref, p, n core.Vec3) EmitterQueryRecord {
	rec := EmitterQueryRecord{Ref: ref, P: p, N: n}
	rec.setDirection()
	return rec
}

func (rec *EmitterQueryRecord) setDirection() {
	d := rec.P.Subtract(rec.Ref)
	rec.Dist = d.Length()
	if rec.Dist > 0 {
		rec.Wi = d.Multiply(1.0 / rec.Dist)
	} else {
		rec.Wi = core.Vec3{}
	}
}

// Emitter is a light source attached to a surface
type Emitter interface {
	// Eval returns the radiance leaving rec.P toward rec.Ref
	Eval(rec EmitterQueryRecord) core.Vec3

	// Sample picks a point on the emitter for rec.Ref, filling P, N, Wi and Dist.
	// It returns the emitted radiance toward Ref and the area density of the choice.
	Sample(rec *EmitterQueryRecord, sample core.Vec2) (core.Vec3, float64)

	// PDF returns the area density with which Sample would pick rec.P
	PDF(rec EmitterQueryRecord) float64
}

// Surface is the geometry an area emitter is bound to
type Surface interface {
	// SampleSurface returns a point uniformly distributed by area and its outward normal
	SampleSurface(sample core.Vec2) (core.Vec3, core.Vec3)

	// SurfaceArea returns the total sampled area
	SurfaceArea() float64
}
