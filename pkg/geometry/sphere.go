package geometry

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

// Sphere represents a sphere shape. An inward sphere reports normals pointing
// toward its center, which makes it usable as an enclosing environment light.
type Sphere struct {
	Attachments
	Center core.Vec3
	Radius float64
	Inward bool
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// NewInwardSphere creates a sphere whose normals face its interior
func NewInwardSphere(center core.Vec3, radius float64) *Sphere {
	s := NewSphere(center, radius)
	s.Inward = true
	return s
}

// hitT solves the quadratic and returns the nearest root in [tMin, tMax]
func (s *Sphere) hitT(ray core.Ray, tMin, tMax float64) (float64, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer root first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return 0, false
		}
	}
	return root, true
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	t, ok := s.hitT(ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	p := ray.At(t)
	outward := p.Subtract(s.Center).Multiply(1.0 / s.Radius)

	// Spherical coordinates of the outward direction
	uv := core.NewVec2(
		(math.Atan2(-outward.Z, outward.X)+math.Pi)/(2*math.Pi),
		math.Acos(math.Max(-1, math.Min(1, -outward.Y)))/math.Pi,
	)

	return s.intersection(ray, t, s.orient(outward), uv), true
}

// Occludes reports any intersection in range
func (s *Sphere) Occludes(ray core.Ray, tMin, tMax float64) bool {
	_, ok := s.hitT(ray, tMin, tMax)
	return ok
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.Splat(s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// SampleSurface picks a point uniformly over the sphere's area
func (s *Sphere) SampleSurface(sample core.Vec2) (core.Vec3, core.Vec3) {
	d := warp.SquareToUniformSphere(sample)
	return s.Center.Add(d.Multiply(s.Radius)), s.orient(d)
}

// SurfaceArea returns 4πR²
func (s *Sphere) SurfaceArea() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

func (s *Sphere) orient(outward core.Vec3) core.Vec3 {
	if s.Inward {
		return outward.Negate()
	}
	return outward
}
