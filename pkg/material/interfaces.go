package material

import (
	"github.com/df07/go-light-transport/pkg/core"
)

// Measure identifies the measure a sampled direction's density is expressed in
type Measure int

const (
	// MeasureUnknown marks a record that has not been sampled or evaluated yet
	MeasureUnknown Measure = iota
	// MeasureSolidAngle is a continuous density over directions
	MeasureSolidAngle
	// MeasureDiscrete is a Dirac interaction (ideal mirror or glass)
	MeasureDiscrete
)

// BSDFQueryRecord carries the directions of one BSDF interaction.
// Both directions are in the local shading frame (normal along +Z) and point
// away from the surface: Wi toward where the path came from, Wo toward where
// it continues or toward a sampled light.
type BSDFQueryRecord struct {
	Wi      core.Vec3
	Wo      core.Vec3
	Eta     float64 // Relative index of refraction of the sampled direction
	Measure Measure
}

// NewSampleRecord prepares a record for BSDF.Sample
func NewSampleRecord(wi core.Vec3) BSDFQueryRecord {
	return BSDFQueryRecord{Wi: wi, Eta: 1, Measure: MeasureUnknown}
}

// NewEvalRecord prepares a record for BSDF.Eval and BSDF.PDF
func NewEvalRecord(wi, wo core.Vec3, measure Measure) BSDFQueryRecord {
	return BSDFQueryRecord{Wi: wi, Wo: wo, Eta: 1, Measure: measure}
}

// BSDF is the material contract used by the estimators
type BSDF interface {
	// Eval returns the BSDF value for the record's pair of directions.
	// Discrete materials return zero.
	Eval(rec BSDFQueryRecord) core.Vec3

	// Sample draws Wo for the record's Wi and fills Eta and Measure.
	// It returns eval·|cosθo|/pdf (or the discrete weight); zero means the
	// sample failed and the path should stop.
	Sample(rec *BSDFQueryRecord, sample core.Vec2) core.Vec3

	// PDF returns the solid-angle density of sampling rec.Wo given rec.Wi.
	// Discrete materials return zero.
	PDF(rec BSDFQueryRecord) float64

	// IsDiffuse reports whether the material can be importance sampled by a
	// continuous density, which makes explicit light sampling worthwhile.
	IsDiffuse() bool
}
