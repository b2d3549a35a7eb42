package scene

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/material"
)

// builder collects the first error while a preset adds its objects
type builder struct {
	s   *Scene
	err error
}

func newBuilder(camera CameraConfig) *builder {
	return &builder{s: New(camera)}
}

func (b *builder) add(shape geometry.Shape, bsdf material.BSDF) {
	if b.err == nil {
		b.err = b.s.Add(shape, bsdf)
	}
}

func (b *builder) light(shape geometry.SampleableShape, radiance core.Vec3) {
	if b.err == nil {
		b.err = b.s.AddAreaLight(shape, radiance)
	}
}

func (b *builder) done() (*Scene, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.s, nil
}

// NewGroundQuad creates a square floor centered at center with normal +Y
func NewGroundQuad(center core.Vec3, size float64) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// (0,0,size) × (size,0,0) = (0,size²,0)
	return geometry.NewQuad(corner, core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0))
}
