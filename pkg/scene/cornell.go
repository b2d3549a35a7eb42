package scene

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/material"
)

// NewCornellScene creates a classic Cornell box with quad walls and a ceiling light.
// All wall normals face the interior.
func NewCornellScene() (*Scene, error) {
	b := newBuilder(CameraConfig{
		Center: core.NewVec3(278, 278, -800), // Outside the open front of the box
		LookAt: core.NewVec3(278, 278, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	})

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	// Cornell box dimensions (standard 555x555x555 units)
	const s = 555.0

	// Floor: normal +Y
	b.add(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, s), core.NewVec3(s, 0, 0)), white)
	// Ceiling: normal -Y
	b.add(geometry.NewQuad(core.NewVec3(0, s, 0), core.NewVec3(s, 0, 0), core.NewVec3(0, 0, s)), white)
	// Back wall: normal -Z
	b.add(geometry.NewQuad(core.NewVec3(0, 0, s), core.NewVec3(0, s, 0), core.NewVec3(s, 0, 0)), white)
	// Left wall (red): normal +X
	b.add(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, s, 0), core.NewVec3(0, 0, s)), red)
	// Right wall (green): normal -X
	b.add(geometry.NewQuad(core.NewVec3(s, 0, 0), core.NewVec3(0, 0, s), core.NewVec3(0, s, 0)), green)

	// Ceiling light slightly below the ceiling, facing down
	const lightSize = 130.0
	const lightOffset = (s - lightSize) / 2.0
	b.light(geometry.NewQuad(
		core.NewVec3(lightOffset, s-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
	), core.NewVec3(15.0, 15.0, 15.0))

	// Short and tall blocks, turned about Y
	b.add(geometry.NewBox(
		core.NewVec3(212.5, 82.5, 147.5),
		core.NewVec3(82.5, 82.5, 82.5),
		core.NewVec3(0, -18*math.Pi/180, 0),
	), white)
	b.add(geometry.NewBox(
		core.NewVec3(347.5, 165, 377.5),
		core.NewVec3(82.5, 165, 82.5),
		core.NewVec3(0, 15*math.Pi/180, 0),
	), white)

	// Glass sphere resting on the short block, mirror sphere on the floor to its right
	b.add(geometry.NewSphere(core.NewVec3(212.5, 235, 147.5), 70), material.NewDielectric(1.5))
	b.add(geometry.NewSphere(core.NewVec3(420, 60, 140), 60), material.NewMirror(core.NewVec3(0.8, 0.8, 0.9)))

	return b.done()
}
