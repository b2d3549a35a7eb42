package scene

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/material"
)

// FurnaceRadiance is the radiance of the furnace enclosure
const FurnaceRadiance = 1.0

// NewFurnaceScene creates a white furnace: a unit-albedo diffuse sphere inside
// an enclosing sphere that emits constant radiance inward. Every converged
// estimator should see FurnaceRadiance everywhere.
func NewFurnaceScene() (*Scene, error) {
	b := newBuilder(CameraConfig{
		Center: core.NewVec3(0, 0, 4),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   35.0,
	})

	b.add(geometry.NewSphere(core.Vec3{}, 1), material.NewLambertian(core.Splat(1)))
	b.light(geometry.NewInwardSphere(core.Vec3{}, 10), core.Splat(FurnaceRadiance))

	return b.done()
}
