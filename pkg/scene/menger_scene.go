package scene

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/material"
)

// MengerIterations is the recursion depth of the preset's sponge
const MengerIterations = 3

// NewMengerScene creates a Menger sponge on a floor under a square light.
// Light reaches the inner tunnels only through long indirect paths.
func NewMengerScene() (*Scene, error) {
	b := newBuilder(CameraConfig{
		Center: core.NewVec3(3.5, 3, 4.5),
		LookAt: core.NewVec3(0, 0.9, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	})

	b.add(NewGroundQuad(core.Vec3{}, 20), material.NewLambertian(core.Splat(0.6)))
	b.add(geometry.NewMengerSponge(core.NewVec3(0, 1, 0), 1, MengerIterations), material.NewLambertian(core.NewVec3(0.75, 0.7, 0.6)))

	// Normal -Y
	b.light(geometry.NewQuad(core.NewVec3(-1, 5, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2)), core.Splat(20))

	return b.done()
}
