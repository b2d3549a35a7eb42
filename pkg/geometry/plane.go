package geometry

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Attachments
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal
	frame  core.Frame
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) *Plane {
	n := normal.Normalize()
	return &Plane{
		Point:  point,
		Normal: n,
		frame:  core.NewFrame(n),
	}
}

func (p *Plane) hitT(ray core.Ray, tMin, tMax float64) (float64, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return 0, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return 0, false
	}
	return t, true
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	t, ok := p.hitT(ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	// In-plane coordinates relative to Point
	local := p.frame.ToLocal(ray.At(t).Subtract(p.Point))
	return p.intersection(ray, t, p.Normal, core.NewVec2(local.X, local.Y)), true
}

// Occludes reports any intersection in range
func (p *Plane) Occludes(ray core.Ray, tMin, tMax float64) bool {
	_, ok := p.hitT(ray, tMin, tMax)
	return ok
}

// BoundingBox returns a bounding box for this plane
func (p *Plane) BoundingBox() core.AABB {
	const largeValue = 1e6
	const thickness = 0.001 // Avoid a zero-width box

	switch axisAlignment(p.Normal) {
	case 0:
		x := p.Point.X
		return core.NewAABB(
			core.NewVec3(x-thickness, -largeValue, -largeValue),
			core.NewVec3(x+thickness, largeValue, largeValue),
		)
	case 1:
		y := p.Point.Y
		return core.NewAABB(
			core.NewVec3(-largeValue, y-thickness, -largeValue),
			core.NewVec3(largeValue, y+thickness, largeValue),
		)
	case 2:
		z := p.Point.Z
		return core.NewAABB(
			core.NewVec3(-largeValue, -largeValue, z-thickness),
			core.NewVec3(largeValue, largeValue, z+thickness),
		)
	default:
		// Not axis-aligned - use a large box (less optimal but correct)
		return core.NewAABB(
			core.Splat(-largeValue),
			core.Splat(largeValue),
		)
	}
}

// axisAlignment returns the axis a normal is parallel to, or -1
func axisAlignment(n core.Vec3) int {
	const tolerance = 1e-9
	switch {
	case math.Abs(n.Y) < tolerance && math.Abs(n.Z) < tolerance:
		return 0
	case math.Abs(n.X) < tolerance && math.Abs(n.Z) < tolerance:
		return 1
	case math.Abs(n.X) < tolerance && math.Abs(n.Y) < tolerance:
		return 2
	default:
		return -1
	}
}
