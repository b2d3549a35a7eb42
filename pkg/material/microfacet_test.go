package material

import (
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
)

// integrateHemisphere applies the midpoint rule over a uniform hemisphere parameterization
func integrateHemisphere(n int, f func(wo core.Vec3) float64) float64 {
	sum := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			z := (float64(j) + 0.5) / float64(n)
			phi := 2 * math.Pi * (float64(i) + 0.5) / float64(n)
			r := math.Sqrt(math.Max(0, 1-z*z))
			sum += f(core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z))
		}
	}
	return sum * 2 * math.Pi / float64(n*n)
}

func TestMicrofacet_SpecularWeight(t *testing.T) {
	m := NewMicrofacet(0.3, core.NewVec3(0.2, 0.5, 0.4))
	if math.Abs(m.Ks()-0.5) > 1e-12 {
		t.Errorf("Ks = %f, expected 0.5", m.Ks())
	}
	if !m.IsDiffuse() {
		t.Error("Microfacet should be handled as a non-discrete material")
	}
}

func TestMicrofacet_SpecularWeightFollowsKd(t *testing.T) {
	wi := core.NewVec3(0.3, 0.1, 0.9).Normalize()
	wo := core.NewVec3(-0.3, -0.1, 0.9).Normalize()
	rec := BSDFQueryRecord{Wi: wi, Wo: wo, Measure: MeasureSolidAngle}

	literal := &Microfacet{Alpha: 0.3, InteriorIOR: DefaultInteriorIOR, ExteriorIOR: DefaultExteriorIOR, Kd: core.Splat(0.25)}
	constructed := NewMicrofacet(0.3, core.Splat(0.25))
	if literal.Ks() != 0.75 || literal.Eval(rec) != constructed.Eval(rec) || literal.PDF(rec) != constructed.PDF(rec) {
		t.Errorf("Struct literal and constructor disagree: ks %f vs %f", literal.Ks(), constructed.Ks())
	}

	// Changing Kd later moves the specular weight with it
	constructed.Kd = core.Splat(0.6)
	if math.Abs(constructed.Ks()-0.4) > 1e-12 {
		t.Errorf("Ks = %f after changing Kd, expected 0.4", constructed.Ks())
	}
	if constructed.PDF(rec) == literal.PDF(rec) {
		t.Error("PDF ignored the new Kd")
	}
}

func TestMicrofacet_PDFIntegratesToAtMostOne(t *testing.T) {
	m := NewMicrofacet(0.5, core.Splat(0.5))
	wi := core.NewVec3(0, 0, 1)

	total := integrateHemisphere(1000, func(wo core.Vec3) float64 {
		return m.PDF(NewEvalRecord(wi, wo, MeasureSolidAngle))
	})

	// Half-vectors steep enough to reflect below the horizon lose a little mass
	if total > 1.005 || total < 0.95 {
		t.Errorf("PDF integrates to %f, expected slightly below 1", total)
	}
}

func TestMicrofacet_SampleMatchesReflectance(t *testing.T) {
	m := NewMicrofacet(0.4, core.Splat(0.5))
	wi := core.NewVec3(0.3, 0.1, 0.9).Normalize()

	expected := integrateHemisphere(800, func(wo core.Vec3) float64 {
		return m.Eval(NewEvalRecord(wi, wo, MeasureSolidAngle)).X * core.CosTheta(wo)
	})
	if expected <= 0 || expected >= 1 {
		t.Fatalf("Directional albedo %f outside (0,1)", expected)
	}

	sampler := core.NewStreamSampler(99, 1)
	const n = 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		rec := NewSampleRecord(wi)
		weight := m.Sample(&rec, sampler.Get2D())
		if !weight.IsFinite() {
			t.Fatalf("Non-finite sample weight %v", weight)
		}
		if !weight.IsZero() && rec.Measure != MeasureSolidAngle {
			t.Fatalf("Expected solid angle measure, got %v", rec.Measure)
		}
		sum += weight.X
	}

	got := sum / n
	if math.Abs(got-expected) > 0.01 {
		t.Errorf("Mean sample weight %f, expected directional albedo %f", got, expected)
	}
}

func TestMicrofacet_BelowSurfaceIsZero(t *testing.T) {
	m := NewMicrofacet(0.2, core.Splat(0.5))
	up := core.NewVec3(0, 0, 1)
	down := core.NewVec3(0, 0, -1)

	if v := m.Eval(NewEvalRecord(down, up, MeasureSolidAngle)); !v.IsZero() {
		t.Errorf("Expected zero eval for wi below surface, got %v", v)
	}
	if p := m.PDF(NewEvalRecord(up, down, MeasureSolidAngle)); p != 0 {
		t.Errorf("Expected zero pdf for wo below surface, got %f", p)
	}

	rec := NewSampleRecord(down)
	if w := m.Sample(&rec, core.NewVec2(0.3, 0.3)); !w.IsZero() {
		t.Errorf("Expected failed sample, got %v", w)
	}
}
