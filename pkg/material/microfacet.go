package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

// Microfacet is a rough dielectric coating (Beckmann distribution, Smith
// shadowing) over a lambertian base. The specular weight is 1 - max(kd) so
// that the two lobes never reflect more than they receive.
type Microfacet struct {
	Alpha       float64 // RMS surface roughness
	InteriorIOR float64
	ExteriorIOR float64
	Kd          core.Vec3 // Diffuse base albedo
}

// NewMicrofacet creates a microfacet material with default glass/air indices
func NewMicrofacet(alpha float64, kd core.Vec3) *Microfacet {
	return &Microfacet{
		Alpha:       alpha,
		InteriorIOR: DefaultInteriorIOR,
		ExteriorIOR: DefaultExteriorIOR,
		Kd:          kd,
	}
}

// Ks returns the weight of the specular lobe, derived from Kd
func (m *Microfacet) Ks() float64 {
	return 1 - m.Kd.MaxComponent()
}

// Eval returns kd/π + ks·D·F·G / (4 cosθi cosθo)
func (m *Microfacet) Eval(rec BSDFQueryRecord) core.Vec3 {
	cosThetaI := core.CosTheta(rec.Wi)
	cosThetaO := core.CosTheta(rec.Wo)
	if cosThetaI <= 0 || cosThetaO <= 0 {
		return core.Vec3{}
	}

	diffuse := m.Kd.Multiply(1.0 / math.Pi)

	wh := rec.Wi.Add(rec.Wo).Normalize()
	d := warp.SquareToBeckmannPDF(wh, m.Alpha)
	f := Fresnel(rec.Wi.Dot(wh), m.ExteriorIOR, m.InteriorIOR)
	g := m.smithG1(rec.Wi, wh) * m.smithG1(rec.Wo, wh)

	specular := d * f * g / (4 * cosThetaI * cosThetaO)
	return diffuse.Add(core.Splat(m.Ks() * specular))
}

// PDF mixes the half-vector density (with the reflection Jacobian) and the
// cosine hemisphere density by the lobe weights
func (m *Microfacet) PDF(rec BSDFQueryRecord) float64 {
	if core.CosTheta(rec.Wo) <= 0 {
		return 0
	}

	wh := rec.Wi.Add(rec.Wo).Normalize()
	pdfSpec := 0.0
	if dotOH := rec.Wo.Dot(wh); dotOH > 0 {
		pdfSpec = warp.SquareToBeckmannPDF(wh, m.Alpha) / (4 * dotOH)
	}
	pdfDiff := warp.SquareToCosineHemispherePDF(rec.Wo)

	ks := m.Ks()
	return ks*pdfSpec + (1-ks)*pdfDiff
}

// Sample selects a lobe with the first sample component and reuses the
// remapped component to draw the direction
func (m *Microfacet) Sample(rec *BSDFQueryRecord, sample core.Vec2) core.Vec3 {
	if core.CosTheta(rec.Wi) <= 0 {
		return core.Vec3{}
	}

	ks := m.Ks()
	if sample.X < ks {
		sample.X /= ks
		wh := warp.SquareToBeckmann(sample, m.Alpha)
		rec.Wo = wh.Multiply(2 * rec.Wi.Dot(wh)).Subtract(rec.Wi)
		if core.CosTheta(rec.Wo) <= 0 {
			return core.Vec3{}
		}
	} else {
		sample.X = (sample.X - ks) / (1 - ks)
		rec.Wo = warp.SquareToCosineHemisphere(sample)
	}
	rec.Eta = 1
	rec.Measure = MeasureSolidAngle

	pdf := m.PDF(*rec)
	if pdf <= 0 {
		return core.Vec3{}
	}
	return m.Eval(*rec).Multiply(core.CosTheta(rec.Wo) / pdf)
}

// IsDiffuse is true: the glossy lobe has a finite density and benefits from
// light sampling like a diffuse surface
func (m *Microfacet) IsDiffuse() bool {
	return true
}

// smithG1 uses the rational approximation of the Beckmann shadowing term
func (m *Microfacet) smithG1(v, wh core.Vec3) float64 {
	cosThetaV := core.CosTheta(v)
	if v.Dot(wh) <= 0 || cosThetaV <= 0 {
		return 0
	}

	tanThetaV := math.Sqrt(math.Max(0, 1-cosThetaV*cosThetaV)) / cosThetaV
	if tanThetaV == 0 {
		return 1
	}
	b := 1 / (m.Alpha * tanThetaV)
	if b >= 1.6 {
		return 1
	}
	return (3.535*b + 2.181*b*b) / (1 + 2.276*b + 2.577*b*b)
}
