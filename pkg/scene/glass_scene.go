package scene

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/material"
)

// NewGlassScene creates a glass sphere and a diffuse sphere on a floor under a
// small square light, the setting where caustics and specular chains matter
func NewGlassScene() (*Scene, error) {
	b := newBuilder(CameraConfig{
		Center: core.NewVec3(0, 2, 6),
		LookAt: core.NewVec3(0, 1, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	})

	b.add(NewGroundQuad(core.Vec3{}, 20), material.NewLambertian(core.Splat(0.6)))
	b.add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1), material.NewDielectric(1.5))
	b.add(geometry.NewSphere(core.NewVec3(-1.8, 0.5, -1.5), 0.5), material.NewLambertian(core.NewVec3(0.7, 0.15, 0.1)))
	b.add(geometry.NewSphere(core.NewVec3(1.9, 0.6, -1.2), 0.6), material.NewMicrofacet(0.1, core.NewVec3(0.1, 0.2, 0.5)))

	// Normal -Y
	b.light(geometry.NewQuad(core.NewVec3(-1, 5, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2)), core.Splat(20))

	return b.done()
}
