package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Eval returns albedo/π when both directions lie above the surface
func (l *Lambertian) Eval(rec BSDFQueryRecord) core.Vec3 {
	if rec.Measure != MeasureSolidAngle || core.CosTheta(rec.Wi) <= 0 || core.CosTheta(rec.Wo) <= 0 {
		return core.Vec3{}
	}
	return l.Albedo.Multiply(1.0 / math.Pi)
}

// PDF is the cosine-weighted hemisphere density of Wo
func (l *Lambertian) PDF(rec BSDFQueryRecord) float64 {
	if rec.Measure != MeasureSolidAngle || core.CosTheta(rec.Wi) <= 0 || core.CosTheta(rec.Wo) <= 0 {
		return 0
	}
	return warp.SquareToCosineHemispherePDF(rec.Wo)
}

// Sample draws a cosine-weighted direction. The cosine and the density cancel,
// leaving the albedo as the weight.
func (l *Lambertian) Sample(rec *BSDFQueryRecord, sample core.Vec2) core.Vec3 {
	if core.CosTheta(rec.Wi) <= 0 {
		return core.Vec3{}
	}
	rec.Measure = MeasureSolidAngle
	rec.Wo = warp.SquareToCosineHemisphere(sample)
	rec.Eta = 1
	return l.Albedo
}

// IsDiffuse is always true for a lambertian surface
func (l *Lambertian) IsDiffuse() bool {
	return true
}
