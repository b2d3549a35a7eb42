package scene

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/material"
)

// NewAOScene creates an unlit scene of spheres resting on an infinite plane
func NewAOScene() (*Scene, error) {
	b := newBuilder(CameraConfig{
		Center: core.NewVec3(0, 3, 7),
		LookAt: core.NewVec3(0, 0.5, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	})

	grey := material.NewLambertian(core.Splat(0.5))

	b.add(geometry.NewPlane(core.Vec3{}, core.NewVec3(0, 1, 0)), grey)
	for i := 0; i < 5; i++ {
		x := float64(i-2) * 1.6
		radius := 0.3 + 0.15*float64(i)
		b.add(geometry.NewSphere(core.NewVec3(x, radius, -float64(i%2)), radius), grey)
	}

	return b.done()
}
