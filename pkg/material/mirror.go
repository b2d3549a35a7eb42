package material

import (
	"github.com/df07/go-light-transport/pkg/core"
)

// Mirror is an ideal specular reflector
type Mirror struct {
	Reflectance core.Vec3
}

// NewMirror creates a mirror with the given reflectance (1 for a perfect mirror)
func NewMirror(reflectance core.Vec3) *Mirror {
	return &Mirror{Reflectance: reflectance}
}

// Eval is zero: a Dirac lobe has no finite value for a fixed pair of directions
func (m *Mirror) Eval(rec BSDFQueryRecord) core.Vec3 {
	return core.Vec3{}
}

// PDF is zero for the same reason
func (m *Mirror) PDF(rec BSDFQueryRecord) float64 {
	return 0
}

// Sample reflects Wi about the local normal
func (m *Mirror) Sample(rec *BSDFQueryRecord, sample core.Vec2) core.Vec3 {
	if core.CosTheta(rec.Wi) <= 0 {
		return core.Vec3{}
	}
	rec.Wo = reflectLocal(rec.Wi)
	rec.Measure = MeasureDiscrete
	rec.Eta = 1
	return m.Reflectance
}

// IsDiffuse is false: mirrors can only be reached by sampling them
func (m *Mirror) IsDiffuse() bool {
	return false
}

// reflectLocal mirrors a local direction about the +Z normal
func reflectLocal(wi core.Vec3) core.Vec3 {
	return core.NewVec3(-wi.X, -wi.Y, wi.Z)
}
