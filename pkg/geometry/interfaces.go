package geometry

import (
	"errors"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
)

var (
	// ErrBSDFAlreadySet is returned when a shape is given a second material
	ErrBSDFAlreadySet = errors.New("geometry: shape already has a BSDF")
	// ErrEmitterAlreadySet is returned when a shape is given a second emitter
	ErrEmitterAlreadySet = errors.New("geometry: shape already has an emitter")
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the closest intersection with t in [tMin, tMax]
	Hit(ray core.Ray, tMin, tMax float64) (*Intersection, bool)

	// Occludes reports whether any intersection exists in [tMin, tMax]
	Occludes(ray core.Ray, tMin, tMax float64) bool

	BoundingBox() core.AABB

	BSDF() material.BSDF
	SetBSDF(bsdf material.BSDF) error
	Emitter() lights.Emitter
	SetEmitter(emitter lights.Emitter) error
}

// SampleableShape is a shape that can carry an area light
type SampleableShape interface {
	Shape
	lights.Surface
}

// Attachments holds the material and emitter bound to a shape.
// Shapes embed it to satisfy the attachment half of Shape.
type Attachments struct {
	bsdf    material.BSDF
	emitter lights.Emitter
}

// BSDF returns the attached material, nil if none
func (a *Attachments) BSDF() material.BSDF {
	return a.bsdf
}

// SetBSDF attaches a material; a shape carries at most one
func (a *Attachments) SetBSDF(bsdf material.BSDF) error {
	if a.bsdf != nil {
		return ErrBSDFAlreadySet
	}
	a.bsdf = bsdf
	return nil
}

// Emitter returns the attached emitter, nil if the shape is not a light
func (a *Attachments) Emitter() lights.Emitter {
	return a.emitter
}

// SetEmitter attaches an emitter; a shape carries at most one
func (a *Attachments) SetEmitter(emitter lights.Emitter) error {
	if a.emitter != nil {
		return ErrEmitterAlreadySet
	}
	a.emitter = emitter
	return nil
}

// intersection fills the parts of a hit record every shape shares
func (a *Attachments) intersection(ray core.Ray, t float64, normal core.Vec3, uv core.Vec2) *Intersection {
	frame := core.NewFrame(normal)
	return &Intersection{
		Point:          ray.At(t),
		T:              t,
		UV:             uv,
		ShadingFrame:   frame,
		GeometricFrame: frame,
		BSDF:           a.bsdf,
		Emitter:        a.emitter,
	}
}
