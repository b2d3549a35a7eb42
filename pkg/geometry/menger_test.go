package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/material"
)

func TestMengerSponge_Hit(t *testing.T) {
	down := core.NewVec3(0, 0, -1)

	tests := []struct {
		name       string
		iterations int
		ray        core.Ray
		shouldHit  bool
		expectedT  float64
		normal     core.Vec3
	}{
		{"solid cube", 0, core.NewRay(core.NewVec3(0, 0, 5), down), true, 4, core.NewVec3(0, 0, 1)},
		{"center tunnel", 1, core.NewRay(core.NewVec3(0, 0, 5), down), false, 0, core.Vec3{}},
		{"beside the tunnel", 1, core.NewRay(core.NewVec3(0, 0.5, 5), down), true, 4, core.NewVec3(0, 0, 1)},
		{"second level solid", 2, core.NewRay(core.NewVec3(0, 0.5, 5), down), true, 4, core.NewVec3(0, 0, 1)},
		{"first level solid", 1, core.NewRay(core.NewVec3(0, 2.0/3.0, 5), down), true, 4, core.NewVec3(0, 0, 1)},
		// The second level opens a tunnel through every cell along x=0, y=2/3
		{"second level tunnel", 2, core.NewRay(core.NewVec3(0, 2.0/3.0, 5), down), false, 0, core.Vec3{}},
		{"side face", 1, core.NewRay(core.NewVec3(5, 0.5, 0.5), core.NewVec3(-1, 0, 0)), true, 4, core.NewVec3(1, 0, 0)},
		{"bottom face", 3, core.NewRay(core.NewVec3(-0.999, -5, -0.999), core.NewVec3(0, 1, 0)), true, 4, core.NewVec3(0, -1, 0)},
		{"leaving the surface", 1, core.NewRay(core.NewVec3(0, 0.5, 1), core.NewVec3(0, 0, 1)), false, 0, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sponge := NewMengerSponge(core.Vec3{}, 1, tt.iterations)
			its, isHit := sponge.Hit(tt.ray, core.Epsilon, 1000)
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, isHit)
			}
			if sponge.Occludes(tt.ray, core.Epsilon, 1000) != tt.shouldHit {
				t.Errorf("Occludes disagrees with Hit")
			}
			if !tt.shouldHit {
				return
			}
			if math.Abs(its.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, its.T)
			}
			if its.Normal().Subtract(tt.normal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.normal, its.Normal())
			}
		})
	}
}

func TestMengerSponge_ClosestAlongDiagonal(t *testing.T) {
	// Corner cubes survive every level, so a diagonal ray enters at the corner
	sponge := NewMengerSponge(core.Vec3{}, 1, 3)
	dir := core.NewVec3(-1, -1, -1).Normalize()
	origin := core.NewVec3(3, 3, 3)

	its, ok := sponge.Hit(core.NewRay(origin, dir), core.Epsilon, 1000)
	if !ok {
		t.Fatal("Expected to hit the corner")
	}
	expected := 2 * math.Sqrt(3)
	if math.Abs(its.T-expected) > 1e-9 {
		t.Errorf("Expected t=%f, got %f", expected, its.T)
	}
	if its.Point.Subtract(core.NewVec3(1, 1, 1)).Length() > 1e-9 {
		t.Errorf("Expected to enter at (1,1,1), got %v", its.Point)
	}

	// A range ending before the corner sees nothing
	if sponge.Occludes(core.NewRay(origin, dir), core.Epsilon, expected-0.01) {
		t.Error("Expected no occlusion short of the corner")
	}
}

func TestMengerSponge_Construction(t *testing.T) {
	sponge := NewMengerSponge(core.NewVec3(0, 1, 0), 1, 99)
	if sponge.Iterations != MaxMengerIterations {
		t.Errorf("Expected iterations clamped to %d, got %d", MaxMengerIterations, sponge.Iterations)
	}
	if NewMengerSponge(core.Vec3{}, 1, -2).Iterations != 0 {
		t.Error("Expected negative iterations clamped to 0")
	}

	bbox := sponge.BoundingBox()
	if bbox.Min != core.NewVec3(-1, 0, -1) || bbox.Max != core.NewVec3(1, 2, 1) {
		t.Errorf("Unexpected bounding box %v", bbox)
	}

	white := material.NewLambertian(core.Splat(0.5))
	if err := sponge.SetBSDF(white); err != nil {
		t.Fatal(err)
	}
	its, ok := sponge.Hit(core.NewRay(core.NewVec3(-0.999, 5, -0.999), core.NewVec3(0, -1, 0)), core.Epsilon, 1000)
	if !ok || its.BSDF != white {
		t.Fatalf("Expected the hit to carry the sponge material, got %v", its)
	}
	if math.Abs(its.T-3) > 1e-9 {
		t.Errorf("Expected the top face at t=3, got %f", its.T)
	}
}
