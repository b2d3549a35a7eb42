package geometry

import (
	"github.com/df07/go-light-transport/pkg/core"
)

// Box represents a rectangular box made up of 6 quads with optional rotation.
// Face normals point out of the box.
type Box struct {
	Attachments
	Center   core.Vec3 // Center point of the box
	Size     core.Vec3 // Half-extents along each local axis
	Rotation core.Vec3 // Rotation angles in radians (X, Y, Z)
	faces    [6]*Quad
	bbox     core.AABB
	area     float64
}

// NewBox creates a box with the given center, half-extents and rotation.
// A size of (1,1,1) creates a 2x2x2 box. Rotation is applied around X, Y, Z in that order.
func NewBox(center, size, rotation core.Vec3) *Box {
	box := &Box{
		Center:   center,
		Size:     size,
		Rotation: rotation,
	}
	box.generateFaces()
	return box
}

// NewAxisAlignedBox creates a box without rotation
func NewAxisAlignedBox(center, size core.Vec3) *Box {
	return NewBox(center, size, core.Vec3{})
}

func (b *Box) generateFaces() {
	corners := [8]core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	}
	for i := range corners {
		corners[i] = corners[i].MultiplyVec(b.Size).Rotate(b.Rotation).Add(b.Center)
	}

	// Each face is corner, u, v with u × v pointing outward
	face := func(c, u, v int) *Quad {
		return NewQuad(corners[c], corners[u].Subtract(corners[c]), corners[v].Subtract(corners[c]))
	}
	b.faces = [6]*Quad{
		face(4, 5, 7), // Z+
		face(1, 0, 2), // Z-
		face(5, 1, 6), // X+
		face(0, 4, 3), // X-
		face(3, 7, 2), // Y+
		face(4, 0, 5), // Y-
	}

	b.bbox = core.NewAABBFromPoints(corners[:]...)
	b.area = 0
	for _, f := range b.faces {
		b.area += f.SurfaceArea()
	}
}

// Hit returns the closest face intersection; the record carries the box's attachments
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	var closest *Quad
	var closestUV core.Vec2
	closestT := tMax

	for _, f := range b.faces {
		if t, uv, ok := f.hitT(ray, tMin, closestT); ok {
			closest, closestT, closestUV = f, t, uv
		}
	}
	if closest == nil {
		return nil, false
	}
	return b.intersection(ray, closestT, closest.Normal, closestUV), true
}

// Occludes reports whether any face is hit in range
func (b *Box) Occludes(ray core.Ray, tMin, tMax float64) bool {
	if !b.bbox.Hit(ray, tMin, tMax) {
		return false
	}
	for _, f := range b.faces {
		if f.Occludes(ray, tMin, tMax) {
			return true
		}
	}
	return false
}

// BoundingBox returns the box around all eight corners
func (b *Box) BoundingBox() core.AABB {
	return b.bbox
}

// SampleSurface picks a face in proportion to its area, then a point on it
func (b *Box) SampleSurface(sample core.Vec2) (core.Vec3, core.Vec3) {
	target := sample.X * b.area
	for i, f := range b.faces {
		a := f.SurfaceArea()
		if target < a || i == len(b.faces)-1 {
			// Reuse the leftover fraction of sample.X within the chosen face
			u := min(target/a, 1)
			return f.SampleSurface(core.NewVec2(u, sample.Y))
		}
		target -= a
	}
	return core.Vec3{}, core.Vec3{}
}

// SurfaceArea returns the total area of the six faces
func (b *Box) SurfaceArea() float64 {
	return b.area
}
