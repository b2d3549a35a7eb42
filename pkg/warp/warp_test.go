package warp

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
)

// integrate returns the Monte Carlo estimate of ∫f and its standard error,
// given n uniform samples of the domain with the given measure
func integrate(n int, measure float64, draw func() float64) (float64, float64) {
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		v := draw() * measure
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(n)
	variance := math.Max(0, sumSq/float64(n)-mean*mean)
	return mean, math.Sqrt(variance / float64(n))
}

func TestPlanarDensitiesIntegrateToOne(t *testing.T) {
	tests := []struct {
		name string
		lo   float64 // integration box [lo, hi]², larger than the domain
		hi   float64
		pdf  func(core.Vec2) float64
	}{
		{"UniformSquare", -0.5, 1.5, SquareToUniformSquarePDF},
		{"Tent", -1.5, 1.5, SquareToTentPDF},
		{"UniformDisk", -1.5, 1.5, SquareToUniformDiskPDF},
	}

	for _, tt := range tests {
		for _, n := range []int{10000, 100000, 400000} {
			random := rand.New(rand.NewPCG(uint64(n), 11))
			span := tt.hi - tt.lo
			integral, stderr := integrate(n, span*span, func() float64 {
				p := core.NewVec2(tt.lo+span*random.Float64(), tt.lo+span*random.Float64())
				return tt.pdf(p)
			})
			if math.Abs(integral-1) > 5*stderr+1e-3 {
				t.Errorf("%s with %d samples: integral %f (stderr %f), expected 1", tt.name, n, integral, stderr)
			}
		}
	}
}

func TestDirectionalDensitiesIntegrateToOne(t *testing.T) {
	tests := []struct {
		name string
		pdf  func(core.Vec3) float64
	}{
		{"UniformSphere", SquareToUniformSpherePDF},
		{"UniformHemisphere", SquareToUniformHemispherePDF},
		{"CosineHemisphere", SquareToCosineHemispherePDF},
		{"Beckmann alpha 0.5", func(v core.Vec3) float64 { return SquareToBeckmannPDF(v, 0.5) }},
		{"Beckmann alpha 0.8", func(v core.Vec3) float64 { return SquareToBeckmannPDF(v, 0.8) }},
	}

	for _, tt := range tests {
		for _, n := range []int{10000, 100000, 400000} {
			random := rand.New(rand.NewPCG(uint64(n), 23))
			integral, stderr := integrate(n, 4*math.Pi, func() float64 {
				d := SquareToUniformSphere(core.NewVec2(random.Float64(), random.Float64()))
				return tt.pdf(d)
			})
			if math.Abs(integral-1) > 5*stderr+1e-3 {
				t.Errorf("%s with %d samples: integral %f (stderr %f), expected 1", tt.name, n, integral, stderr)
			}
		}
	}
}

// Narrow Beckmann lobes are too peaked for plain Monte Carlo; the uniform
// sphere warp preserves area, so a midpoint rule over the square integrates
// the density over the sphere directly.
func TestBeckmannDensityQuadrature(t *testing.T) {
	const n = 1000
	for _, alpha := range []float64{0.2, 0.35, 0.6} {
		sum := 0.0
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				u := core.NewVec2((float64(i)+0.5)/n, (float64(j)+0.5)/n)
				sum += SquareToBeckmannPDF(SquareToUniformSphere(u), alpha)
			}
		}
		integral := sum * 4 * math.Pi / (n * n)
		if math.Abs(integral-1) > 1e-2 {
			t.Errorf("Beckmann alpha %.2f: integral %f, expected 1", alpha, integral)
		}
	}
}

func TestHemisphereSamplesAreUnitAndUpward(t *testing.T) {
	warps := map[string]func(core.Vec2) core.Vec3{
		"UniformHemisphere": SquareToUniformHemisphere,
		"CosineHemisphere":  SquareToCosineHemisphere,
		"Beckmann":          func(u core.Vec2) core.Vec3 { return SquareToBeckmann(u, 0.3) },
	}
	pdfs := map[string]func(core.Vec3) float64{
		"UniformHemisphere": SquareToUniformHemispherePDF,
		"CosineHemisphere":  SquareToCosineHemispherePDF,
		"Beckmann":          func(v core.Vec3) float64 { return SquareToBeckmannPDF(v, 0.3) },
	}

	random := rand.New(rand.NewPCG(3, 5))
	for name, warp := range warps {
		for i := 0; i < 20000; i++ {
			d := warp(core.NewVec2(random.Float64(), random.Float64()))
			if d.Z < 0 {
				t.Fatalf("%s produced a direction below the surface: %v", name, d)
			}
			if math.Abs(d.Length()-1) > 1e-9 {
				t.Fatalf("%s produced a non-unit direction: %v (length %f)", name, d, d.Length())
			}
			if d.Z > 1e-6 && pdfs[name](d) <= 0 {
				t.Fatalf("%s sample %v has zero density", name, d)
			}
		}
	}
}

func TestSampleMoments(t *testing.T) {
	const n = 200000
	random := rand.New(rand.NewPCG(17, 19))
	next := func() core.Vec2 { return core.NewVec2(random.Float64(), random.Float64()) }

	tests := []struct {
		name     string
		moment   func() float64
		expected float64
	}{
		{"UniformHemisphere mean z", func() float64 { return SquareToUniformHemisphere(next()).Z }, 0.5},
		{"CosineHemisphere mean z", func() float64 { return SquareToCosineHemisphere(next()).Z }, 2.0 / 3.0},
		{"UniformSphere mean z", func() float64 { return SquareToUniformSphere(next()).Z }, 0},
		{"UniformDisk mean r²", func() float64 { p := SquareToUniformDisk(next()); return p.X*p.X + p.Y*p.Y }, 0.5},
		{"Tent mean |x|", func() float64 { return math.Abs(SquareToTent(next()).X) }, 1.0 / 3.0},
		{"Beckmann mean tan²θ", func() float64 {
			m := SquareToBeckmann(next(), 0.4)
			return (1 - m.Z*m.Z) / (m.Z * m.Z)
		}, 0.16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, stderr := integrate(n, 1, tt.moment)
			if math.Abs(mean-tt.expected) > 5*stderr+1e-4 {
				t.Errorf("Expected %f, got %f (stderr %f)", tt.expected, mean, stderr)
			}
		})
	}
}

func TestDensitiesVanishOutsideDomain(t *testing.T) {
	tests := []struct {
		name string
		pdf  float64
	}{
		{"Square left of domain", SquareToUniformSquarePDF(core.NewVec2(-0.1, 0.5))},
		{"Square above domain", SquareToUniformSquarePDF(core.NewVec2(0.5, 1.1))},
		{"Tent on boundary", SquareToTentPDF(core.NewVec2(1, 0))},
		{"Tent outside", SquareToTentPDF(core.NewVec2(0, -1.2))},
		{"Disk outside", SquareToUniformDiskPDF(core.NewVec2(0.8, 0.8))},
		{"Sphere non-unit", SquareToUniformSpherePDF(core.NewVec3(0, 0, 2))},
		{"Hemisphere below", SquareToUniformHemispherePDF(core.NewVec3(0, 0, -1))},
		{"Hemisphere non-unit", SquareToUniformHemispherePDF(core.NewVec3(0, 0, 0.5))},
		{"Cosine below", SquareToCosineHemispherePDF(core.NewVec3(0, 0.6, -0.8))},
		{"Beckmann below", SquareToBeckmannPDF(core.NewVec3(0, 0.6, -0.8), 0.3)},
		{"Beckmann grazing", SquareToBeckmannPDF(core.NewVec3(1, 0, 0), 0.3)},
	}

	for _, tt := range tests {
		if tt.pdf != 0 {
			t.Errorf("%s: expected density 0, got %f", tt.name, tt.pdf)
		}
	}
}

func TestTentInverseCDF(t *testing.T) {
	tests := []struct {
		u, expected float64
	}{
		{0, -1},
		{0.125, -0.5},
		{0.5, 0},
		{0.875, 0.5},
	}

	for _, tt := range tests {
		if got := tent(tt.u); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("tent(%f) = %f, expected %f", tt.u, got, tt.expected)
		}
	}
}
