package lights

import (
	"github.com/df07/go-light-transport/pkg/core"
)

// AreaLight emits constant radiance from the side of a surface its normal faces
type AreaLight struct {
	Radiance core.Vec3
	surface  Surface
}

// NewAreaLight creates an area light. The surface is bound later by the shape
// the light is attached to.
func NewAreaLight(radiance core.Vec3) *AreaLight {
	return &AreaLight{Radiance: radiance}
}

// Bind attaches the light to the surface it samples
func (al *AreaLight) Bind(surface Surface) {
	al.surface = surface
}

// Bound reports whether the light has a surface to sample
func (al *AreaLight) Bound() bool {
	return al.surface != nil
}

// Eval returns the radiance toward rec.Ref, zero when Ref sits behind the surface
func (al *AreaLight) Eval(rec EmitterQueryRecord) core.Vec3 {
	if rec.N.Dot(rec.Wi) >= 0 {
		return core.Vec3{}
	}
	return al.Radiance
}

// Sample picks a point uniformly by area
func (al *AreaLight) Sample(rec *EmitterQueryRecord, sample core.Vec2) (core.Vec3, float64) {
	if al.surface == nil {
		return core.Vec3{}, 0
	}

	rec.P, rec.N = al.surface.SampleSurface(sample)
	rec.setDirection()
	if rec.Dist <= 0 {
		return core.Vec3{}, 0
	}

	return al.Eval(*rec), al.PDF(*rec)
}

// PDF is the reciprocal of the surface area
func (al *AreaLight) PDF(rec EmitterQueryRecord) float64 {
	if al.surface == nil {
		return 0
	}
	area := al.surface.SurfaceArea()
	if area <= 0 {
		return 0
	}
	return 1.0 / area
}
