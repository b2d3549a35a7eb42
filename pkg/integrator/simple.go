package integrator

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// SimpleIntegrator computes direct lighting from a single point light
type SimpleIntegrator struct {
	Position core.Vec3
	Energy   core.Vec3
}

// NewSimpleIntegrator creates a point light integrator from the light settings in opts
func NewSimpleIntegrator(opts Options) *SimpleIntegrator {
	return &SimpleIntegrator{
		Position: opts.LightPosition,
		Energy:   opts.LightEnergy,
	}
}

// RayColor returns energy·cosθ/(4π·d²) when the light is visible from the hit
func (si *SimpleIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	its, ok := scene.RayIntersect(ray)
	if !ok {
		return core.Vec3{}
	}

	toLight := si.Position.Subtract(its.Point)
	dist2 := toLight.LengthSquared()
	dist := math.Sqrt(dist2)
	if dist <= core.Epsilon {
		return core.Vec3{}
	}
	dir := toLight.Multiply(1.0 / dist)

	cosTheta := its.Normal().Dot(dir)
	if cosTheta <= 0 {
		return core.Vec3{}
	}

	if scene.Occluded(core.NewRay(its.Point, dir), dist-core.Epsilon) {
		return core.Vec3{}
	}

	return si.Energy.Multiply(cosTheta / (4 * math.Pi * dist2))
}
