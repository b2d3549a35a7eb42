package geometry

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// MaxMengerIterations bounds the recursion of a MengerSponge
const MaxMengerIterations = 6

// MengerSponge is an iterated-function-system fractal. Each level splits a cube
// into 27 sub-cubes and keeps the 20 that lie off the three center axes.
// Iterations 0 is a solid cube.
type MengerSponge struct {
	Attachments
	Bounds     core.AABB
	Iterations int
}

// NewMengerSponge creates a sponge centered at center with the given half-size.
// Iterations is clamped to [0, MaxMengerIterations].
func NewMengerSponge(center core.Vec3, halfSize float64, iterations int) *MengerSponge {
	half := core.Splat(halfSize)
	return &MengerSponge{
		Bounds:     core.NewAABB(center.Subtract(half), center.Add(half)),
		Iterations: max(0, min(iterations, MaxMengerIterations)),
	}
}

// spongeHit tracks the closest leaf cube found so far
type spongeHit struct {
	t      float64
	normal core.Vec3
	found  bool
}

// Hit returns the closest entry into a leaf cube with t in [tMin, tMax]
func (m *MengerSponge) Hit(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	best := spongeHit{t: tMax}
	m.traverse(ray, tMin, m.Bounds, 0, &best, false)
	if !best.found {
		return nil, false
	}
	p := ray.At(best.t)
	return m.intersection(ray, best.t, best.normal, core.NewVec2(p.X, p.Z)), true
}

// Occludes stops at the first leaf cube entered in range
func (m *MengerSponge) Occludes(ray core.Ray, tMin, tMax float64) bool {
	best := spongeHit{t: tMax}
	return m.traverse(ray, tMin, m.Bounds, 0, &best, true)
}

// BoundingBox returns the root cube
func (m *MengerSponge) BoundingBox() core.AABB {
	return m.Bounds
}

func (m *MengerSponge) traverse(ray core.Ray, tMin float64, cell core.AABB, depth int, best *spongeHit, anyHit bool) bool {
	tNear, tFar, axis := slabEntry(cell, ray)
	if tNear > tFar || tFar < tMin || tNear > best.t {
		return false
	}

	if depth >= m.Iterations {
		// Rays starting inside a leaf do not hit it
		if tNear < tMin {
			return false
		}
		best.t = tNear
		best.normal = core.Vec3{}
		switch axis {
		case 0:
			best.normal.X = -math.Copysign(1, ray.Direction.X)
		case 1:
			best.normal.Y = -math.Copysign(1, ray.Direction.Y)
		default:
			best.normal.Z = -math.Copysign(1, ray.Direction.Z)
		}
		best.found = true
		return true
	}

	size := cell.Max.Subtract(cell.Min).Multiply(1.0 / 3.0)
	hit := false
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				if (i == 1 && j == 1) || (i == 1 && k == 1) || (j == 1 && k == 1) {
					continue
				}
				lo := cell.Min.Add(core.NewVec3(float64(i)*size.X, float64(j)*size.Y, float64(k)*size.Z))
				if m.traverse(ray, tMin, core.NewAABB(lo, lo.Add(size)), depth+1, best, anyHit) {
					hit = true
					if anyHit {
						return true
					}
				}
			}
		}
	}
	return hit
}

// slabEntry returns the unclamped entry and exit parameters of ray against box
// and the axis of the entry face. tNear > tFar means a miss.
func slabEntry(box core.AABB, ray core.Ray) (float64, float64, int) {
	tNear, tFar := math.Inf(-1), math.Inf(1)
	axis := 0
	for a := 0; a < 3; a++ {
		origin := ray.Origin.Component(a)
		direction := ray.Direction.Component(a)
		lo, hi := box.Min.Component(a), box.Max.Component(a)

		if math.Abs(direction) < 1e-12 {
			if origin < lo || origin > hi {
				return math.Inf(1), math.Inf(-1), 0
			}
			continue
		}

		t0 := (lo - origin) / direction
		t1 := (hi - origin) / direction
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tNear {
			tNear, axis = t0, a
		}
		tFar = math.Min(tFar, t1)
	}
	return tNear, tFar, axis
}
