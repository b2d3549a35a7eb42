package geometry

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
)

// Intersection is the hit record produced for one ray query.
// Normals are the shape's outward normals, not flipped toward the ray.
// BSDF and Emitter reference objects owned by the scene.
type Intersection struct {
	Point          core.Vec3
	T              float64
	UV             core.Vec2
	ShadingFrame   core.Frame
	GeometricFrame core.Frame
	BSDF           material.BSDF
	Emitter        lights.Emitter // nil unless the surface is a light
}

// ToLocal converts a world direction into the shading frame
func (its *Intersection) ToLocal(v core.Vec3) core.Vec3 {
	return its.ShadingFrame.ToLocal(v)
}

// ToWorld converts a shading frame direction into world space
func (its *Intersection) ToWorld(v core.Vec3) core.Vec3 {
	return its.ShadingFrame.ToWorld(v)
}

// Normal returns the shading normal
func (its *Intersection) Normal() core.Vec3 {
	return its.ShadingFrame.N
}

// IsEmitter reports whether the hit surface is a light
func (its *Intersection) IsEmitter() bool {
	return its.Emitter != nil
}

// EmitterRecord describes the hit as seen from ref, for evaluating the attached emitter
func (its *Intersection) EmitterRecord(ref core.Vec3) lights.EmitterQueryRecord {
	return lights.NewHitQueryRecord(ref, its.Point, its.GeometricFrame.N)
}
