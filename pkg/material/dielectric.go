package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// Default indices of refraction: BK7 glass inside, air outside
const (
	DefaultInteriorIOR = 1.5046
	DefaultExteriorIOR = 1.000277
)

// Dielectric represents a smooth transparent boundary like glass that both
// reflects and refracts
type Dielectric struct {
	InteriorIOR float64
	ExteriorIOR float64
	Color       core.Vec3 // Tint applied to both lobes (1 for clear glass)
}

// NewDielectric creates a clear dielectric with the given interior index and air outside
func NewDielectric(interiorIOR float64) *Dielectric {
	return &Dielectric{
		InteriorIOR: interiorIOR,
		ExteriorIOR: DefaultExteriorIOR,
		Color:       core.Splat(1),
	}
}

// Eval is zero for a Dirac interface
func (d *Dielectric) Eval(rec BSDFQueryRecord) core.Vec3 {
	return core.Vec3{}
}

// PDF is zero for a Dirac interface
func (d *Dielectric) PDF(rec BSDFQueryRecord) float64 {
	return 0
}

// Sample picks reflection with probability equal to the Fresnel reflectance,
// otherwise refraction. The Fresnel weight and the selection probability cancel.
func (d *Dielectric) Sample(rec *BSDFQueryRecord, sample core.Vec2) core.Vec3 {
	rec.Measure = MeasureDiscrete

	cosThetaI := core.CosTheta(rec.Wi)
	entering := cosThetaI > 0

	etaI, etaT := d.ExteriorIOR, d.InteriorIOR
	if !entering {
		etaI, etaT = etaT, etaI
	}
	eta := etaI / etaT

	sinThetaT2 := eta * eta * math.Max(0, 1-cosThetaI*cosThetaI)
	fr := 1.0 // total internal reflection
	cosThetaT := 0.0
	if sinThetaT2 < 1 {
		cosThetaT = math.Sqrt(math.Max(0, 1-sinThetaT2))
		fr = fresnelTerms(math.Abs(cosThetaI), cosThetaT, etaI, etaT)
	}

	if sample.X < fr {
		rec.Wo = reflectLocal(rec.Wi)
		rec.Eta = 1
		return d.Color
	}

	signZ := 1.0
	if entering {
		signZ = -1.0
	}
	rec.Wo = core.NewVec3(-eta*rec.Wi.X, -eta*rec.Wi.Y, signZ*cosThetaT)
	rec.Eta = eta

	// Radiance is compressed by the squared index ratio across the boundary
	return d.Color.Multiply(eta * eta)
}

// IsDiffuse is false: glass is only reachable through sampling
func (d *Dielectric) IsDiffuse() bool {
	return false
}

// Fresnel returns the unpolarized reflectance of a smooth dielectric boundary.
// cosThetaI is measured against the normal on the exterior side; negative
// values mean the direction arrives from the interior.
func Fresnel(cosThetaI, extIOR, intIOR float64) float64 {
	if extIOR == intIOR {
		return 0
	}

	etaI, etaT := extIOR, intIOR
	if cosThetaI < 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	eta := etaI / etaT
	sinThetaT2 := eta * eta * (1 - cosThetaI*cosThetaI)
	if sinThetaT2 > 1 {
		return 1
	}
	cosThetaT := math.Sqrt(1 - sinThetaT2)
	return fresnelTerms(cosThetaI, cosThetaT, etaI, etaT)
}

func fresnelTerms(cosThetaI, cosThetaT, etaI, etaT float64) float64 {
	rs := (etaI*cosThetaI - etaT*cosThetaT) / (etaI*cosThetaI + etaT*cosThetaT)
	rp := (etaT*cosThetaI - etaI*cosThetaT) / (etaT*cosThetaI + etaI*cosThetaT)
	return 0.5 * (rs*rs + rp*rp)
}
