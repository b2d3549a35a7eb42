package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
)

// sphereGrid builds an n x n x n grid of small spheres
func sphereGrid(n int) []Shape {
	var shapes []Shape
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				center := core.NewVec3(float64(x)*2, float64(y)*2, float64(z)*2)
				shapes = append(shapes, NewSphere(center, 0.5))
			}
		}
	}
	return shapes
}

func bruteForceHit(shapes []Shape, ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	var closest *Intersection
	for _, s := range shapes {
		if its, ok := s.Hit(ray, tMin, tMax); ok {
			closest = its
			tMax = its.T
		}
	}
	return closest, closest != nil
}

func TestBVH_MatchesBruteForce(t *testing.T) {
	shapes := sphereGrid(5)
	shapes = append(shapes, NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)))
	bvh := NewBVH(shapes)

	stats := bvh.getStats()
	if stats.totalShapes != len(shapes) {
		t.Fatalf("BVH holds %d shapes, expected %d", stats.totalShapes, len(shapes))
	}
	if stats.leafNodes < 2 {
		t.Errorf("Expected the BVH to split, got %d leaves", stats.leafNodes)
	}

	sampler := core.NewStreamSampler(3, 0)
	for i := 0; i < 500; i++ {
		origin := core.NewVec3(sampler.Get1D()*12-1, sampler.Get1D()*12-1, -5)
		target := core.NewVec3(sampler.Get1D()*8, sampler.Get1D()*8, sampler.Get1D()*8)
		ray := core.NewRay(origin, target.Subtract(origin).Normalize())

		expected, expectedOK := bruteForceHit(shapes, ray, 0.001, math.Inf(1))
		got, gotOK := bvh.Hit(ray, 0.001, math.Inf(1))

		if expectedOK != gotOK {
			t.Fatalf("Ray %d: hit mismatch (bvh %v, brute %v)", i, gotOK, expectedOK)
		}
		if gotOK && math.Abs(got.T-expected.T) > 1e-9 {
			t.Fatalf("Ray %d: t mismatch (bvh %f, brute %f)", i, got.T, expected.T)
		}
		if occluded := bvh.Occluded(ray, 0.001, math.Inf(1)); occluded != expectedOK {
			t.Fatalf("Ray %d: occlusion %v, expected %v", i, occluded, expectedOK)
		}
	}
}

func TestBVH_OccludedRespectsRange(t *testing.T) {
	bvh := NewBVH([]Shape{NewSphere(core.NewVec3(0, 0, 5), 1)})
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))

	if !bvh.Occluded(ray, 0.001, 10) {
		t.Error("Sphere between 4 and 6 should occlude [0.001, 10]")
	}
	if bvh.Occluded(ray, 0.001, 3.9) {
		t.Error("Sphere should not occlude a segment ending before it")
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))
	if _, ok := bvh.Hit(ray, 0, math.Inf(1)); ok {
		t.Error("Empty BVH should not report hits")
	}
	if bvh.Occluded(ray, 0, math.Inf(1)) {
		t.Error("Empty BVH should not occlude")
	}
}
