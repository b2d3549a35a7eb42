package scene

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/material"
)

// NewMISScene creates four glossy plates of increasing roughness lit by four
// sphere lights of increasing size and equal power. Light sampling wins on the
// rough plates and small lights, BSDF sampling on the smooth plates and large
// lights.
func NewMISScene() (*Scene, error) {
	b := newBuilder(CameraConfig{
		Center: core.NewVec3(0, 4, 10),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45.0,
	})

	b.add(NewGroundQuad(core.Vec3{}, 40), material.NewLambertian(core.Splat(0.4)))

	roughness := []float64{0.02, 0.05, 0.15, 0.35}
	for i, alpha := range roughness {
		x := -5.5 + 2.75*float64(i)
		// Normal +Y, slightly above the floor
		plate := geometry.NewQuad(core.NewVec3(x, 0.01, -2), core.NewVec3(0, 0, 4), core.NewVec3(2.5, 0, 0))
		b.add(plate, material.NewMicrofacet(alpha, core.Splat(0.05)))
	}

	radii := []float64{0.05, 0.15, 0.45, 1.35}
	for i, r := range radii {
		x := -4.5 + 3*float64(i)
		// Equal power: radiance falls with the surface area
		radiance := 0.5 / (r * r)
		b.light(geometry.NewSphere(core.NewVec3(x, 3, -4), r), core.Splat(radiance))
	}

	return b.done()
}
