package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/material"
	"github.com/df07/go-light-transport/pkg/scene"
)

// estimate renders n samples of one ray and returns the mean and standard
// error of the red channel
func estimate(integ Integrator, s Scene, ray core.Ray, n int, seed uint64) (mean, stderr, variance float64) {
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		sampler := core.NewPixelSampler(seed, 0, i)
		v := integ.RayColor(ray, s, sampler).X
		sum += v
		sumSq += v * v
	}
	mean = sum / float64(n)
	variance = math.Max(0, sumSq/float64(n)-mean*mean)
	return mean, math.Sqrt(variance / float64(n)), variance
}

// rayThrough returns a unit ray from origin toward target
func rayThrough(origin, target core.Vec3) core.Ray {
	return core.NewRay(origin, target.Subtract(origin).Normalize())
}

// mustPreprocess fails the test when the scene is invalid
func mustPreprocess(t *testing.T, s *scene.Scene) *scene.Scene {
	t.Helper()
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	return s
}

// mustAdd adds a shape with a material or fails the test
func mustAdd(t *testing.T, s *scene.Scene, shape geometry.Shape, bsdf material.BSDF) {
	t.Helper()
	if err := s.Add(shape, bsdf); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
}

// mustAddLight adds an area light or fails the test
func mustAddLight(t *testing.T, s *scene.Scene, shape geometry.SampleableShape, radiance core.Vec3) {
	t.Helper()
	if err := s.AddAreaLight(shape, radiance); err != nil {
		t.Fatalf("AddAreaLight failed: %v", err)
	}
}

// floorScene is a diffuse plane through the origin with normal +Y
func floorScene(t *testing.T, albedo float64) *scene.Scene {
	s := scene.New(scene.CameraConfig{})
	mustAdd(t, s, geometry.NewPlane(core.Vec3{}, core.NewVec3(0, 1, 0)), material.NewLambertian(core.Splat(albedo)))
	return s
}

// countingSampler returns fixed values and counts draws
type countingSampler struct {
	value float64
	calls int
}

func (c *countingSampler) Get1D() float64 {
	c.calls++
	return c.value
}

func (c *countingSampler) Get2D() core.Vec2 {
	c.calls += 2
	return core.NewVec2(c.value, c.value)
}
