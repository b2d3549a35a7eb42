// Package warp maps uniform samples from the unit square onto the domains the
// estimators sample from. Every warp is paired with a density function in the
// matching measure (area for planar domains, solid angle for directions); each
// density is exactly zero outside its domain and integrates to one inside it.
package warp

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// unitNormTolerance bounds |‖v‖² − 1| for a direction to count as normalized
const unitNormTolerance = 1e-6

// SquareToUniformSquare is the identity warp
func SquareToUniformSquare(sample core.Vec2) core.Vec2 {
	return sample
}

// SquareToUniformSquarePDF is 1 on [0,1]² and 0 elsewhere
func SquareToUniformSquarePDF(p core.Vec2) float64 {
	if p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1 {
		return 1
	}
	return 0
}

// tent inverts the CDF of the triangle density on (-1, 1)
func tent(u float64) float64 {
	if u < 0.5 {
		return math.Sqrt(2*u) - 1
	}
	return 1 - math.Sqrt(2-2*u)
}

func tentPDF(x float64) float64 {
	if math.Abs(x) < 1 {
		return 1 - math.Abs(x)
	}
	return 0
}

// SquareToTent warps each axis independently onto the triangle density on (-1, 1)
func SquareToTent(sample core.Vec2) core.Vec2 {
	return core.NewVec2(tent(sample.X), tent(sample.Y))
}

// SquareToTentPDF is the product of the two per-axis triangle densities
func SquareToTentPDF(p core.Vec2) float64 {
	return tentPDF(p.X) * tentPDF(p.Y)
}

// SquareToUniformDisk maps the square onto the unit disk with uniform area density
func SquareToUniformDisk(sample core.Vec2) core.Vec2 {
	r := math.Sqrt(sample.Y)
	theta := 2 * math.Pi * sample.X
	return core.NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// SquareToUniformDiskPDF is 1/π inside the unit disk
func SquareToUniformDiskPDF(p core.Vec2) float64 {
	if p.X*p.X+p.Y*p.Y <= 1 {
		return 1 / math.Pi
	}
	return 0
}

// SquareToUniformSphere maps the square onto the unit sphere with uniform solid-angle density
func SquareToUniformSphere(sample core.Vec2) core.Vec3 {
	z := 1 - 2*sample.X
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * sample.Y
	return core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SquareToUniformSpherePDF is 1/4π for unit vectors
func SquareToUniformSpherePDF(v core.Vec3) float64 {
	if !isUnit(v) {
		return 0
	}
	return 1 / (4 * math.Pi)
}

// SquareToUniformHemisphere samples the z ≥ 0 hemisphere uniformly
func SquareToUniformHemisphere(sample core.Vec2) core.Vec3 {
	z := sample.Y
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * sample.X
	return core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SquareToUniformHemispherePDF is 1/2π for unit vectors with z ≥ 0
func SquareToUniformHemispherePDF(v core.Vec3) float64 {
	if v.Z < 0 || !isUnit(v) {
		return 0
	}
	return 1 / (2 * math.Pi)
}

// SquareToCosineHemisphere projects a uniform disk sample up onto the hemisphere
func SquareToCosineHemisphere(sample core.Vec2) core.Vec3 {
	d := SquareToUniformDisk(sample)
	z := math.Sqrt(math.Max(0, 1-d.X*d.X-d.Y*d.Y))
	return core.NewVec3(d.X, d.Y, z)
}

// SquareToCosineHemispherePDF is cosθ/π for unit vectors with z ≥ 0
func SquareToCosineHemispherePDF(v core.Vec3) float64 {
	if v.Z < 0 || !isUnit(v) {
		return 0
	}
	return v.Z / math.Pi
}

// SquareToBeckmann samples a microfacet normal from the Beckmann distribution
// with roughness alpha, proportionally to D(m)·cosθm.
func SquareToBeckmann(sample core.Vec2, alpha float64) core.Vec3 {
	tan2Theta := -alpha * alpha * math.Log(1-sample.X)
	phi := 2 * math.Pi * sample.Y

	cosTheta := 1 / math.Sqrt(1+tan2Theta)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	return core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}

// SquareToBeckmannPDF returns D(m)·cosθm, zero below the surface
func SquareToBeckmannPDF(m core.Vec3, alpha float64) float64 {
	if m.Z <= 0 {
		return 0
	}
	return BeckmannD(m, alpha) * m.Z
}

// BeckmannD evaluates the Beckmann normal distribution function for a unit half-vector
func BeckmannD(m core.Vec3, alpha float64) float64 {
	cosTheta := m.Z
	if cosTheta <= 0 {
		return 0
	}
	cos2 := cosTheta * cosTheta
	tan2 := (1 - cos2) / cos2
	a2 := alpha * alpha
	return math.Exp(-tan2/a2) / (math.Pi * a2 * cos2 * cos2)
}

func isUnit(v core.Vec3) bool {
	return math.Abs(v.LengthSquared()-1) <= unitNormTolerance
}
