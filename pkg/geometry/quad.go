package geometry

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// Quad represents a parallelogram defined by a corner and two edge vectors.
// Its normal is U × V normalized.
type Quad struct {
	Attachments
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3
	D      float64   // Plane equation constant: normal · x = d
	W      core.Vec3 // Cached n / (n · (u × v)) for barycentric coordinates
	area   float64
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		D:      normal.Dot(corner),
		W:      normal.Multiply(1.0 / normal.Dot(cross)),
		area:   cross.Length(),
	}
}

// hitT returns the ray parameter and the (alpha, beta) coordinates of the hit
func (q *Quad) hitT(ray core.Ray, tMin, tMax float64) (float64, core.Vec2, bool) {
	denominator := ray.Direction.Dot(q.Normal)

	// Parallel to the quad
	if math.Abs(denominator) < 1e-8 {
		return 0, core.Vec2{}, false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t < tMin || t > tMax {
		return 0, core.Vec2{}, false
	}

	hitVector := ray.At(t).Subtract(q.Corner)
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return 0, core.Vec2{}, false
	}

	return t, core.NewVec2(alpha, beta), true
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	t, uv, ok := q.hitT(ray, tMin, tMax)
	if !ok {
		return nil, false
	}
	return q.intersection(ray, t, q.Normal, uv), true
}

// Occludes reports any intersection in range
func (q *Quad) Occludes(ray core.Ray, tMin, tMax float64) bool {
	_, _, ok := q.hitT(ray, tMin, tMax)
	return ok
}

// BoundingBox returns the box around the four corners, padded so flat quads have volume
func (q *Quad) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	).Expand(1e-4)
}

// SampleSurface picks a point uniformly over the quad
func (q *Quad) SampleSurface(sample core.Vec2) (core.Vec3, core.Vec3) {
	p := q.Corner.Add(q.U.Multiply(sample.X)).Add(q.V.Multiply(sample.Y))
	return p, q.Normal
}

// SurfaceArea returns |U × V|
func (q *Quad) SurfaceArea() float64 {
	return q.area
}
