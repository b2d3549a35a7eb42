package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/material"
)

func TestScene_PreprocessRequiresBSDF(t *testing.T) {
	s := New(CameraConfig{})
	s.Shapes = append(s.Shapes, geometry.NewSphere(core.Vec3{}, 1))

	err := s.Preprocess()
	if !errors.Is(err, ErrMissingBSDF) {
		t.Fatalf("Expected ErrMissingBSDF, got %v", err)
	}
}

func TestScene_AddAreaLight(t *testing.T) {
	s := New(CameraConfig{})
	quad := geometry.NewQuad(core.NewVec3(-1, 2, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2))
	if err := s.AddAreaLight(quad, core.Splat(3)); err != nil {
		t.Fatalf("AddAreaLight failed: %v", err)
	}
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	if len(s.Emitters()) != 1 {
		t.Fatalf("Expected 1 emitter, got %d", len(s.Emitters()))
	}

	its, ok := s.RayIntersect(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)))
	if !ok {
		t.Fatal("Expected to hit the light")
	}
	if !its.IsEmitter() {
		t.Fatal("Hit should reference the emitter")
	}
	if its.BSDF == nil {
		t.Fatal("Light should carry an absorbing BSDF")
	}

	le := its.Emitter.Eval(its.EmitterRecord(core.Vec3{}))
	if le != core.Splat(3) {
		t.Errorf("Expected radiance 3 below the light, got %v", le)
	}
}

func TestScene_Occluded(t *testing.T) {
	s := New(CameraConfig{})
	if err := s.Add(geometry.NewSphere(core.NewVec3(0, 0, 5), 1), material.NewLambertian(core.Splat(0.5))); err != nil {
		t.Fatal(err)
	}
	if err := s.Preprocess(); err != nil {
		t.Fatal(err)
	}

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))
	if !s.Occluded(ray, 10) {
		t.Error("Expected occlusion through the sphere")
	}
	if s.Occluded(ray, 3) {
		t.Error("Segment ending before the sphere should be clear")
	}

	its, ok := s.RayIntersect(ray)
	if !ok || math.Abs(its.T-4) > 1e-9 {
		t.Errorf("Expected hit at t=4, got %v %v", its, ok)
	}
}

func TestPresets_BuildAll(t *testing.T) {
	list := NewPresets().List()
	if len(list) != 6 {
		t.Fatalf("Expected 6 presets, got %d", len(list))
	}

	for _, p := range list {
		t.Run(p.ID, func(t *testing.T) {
			s, err := NewPresets().Build(p.ID)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if len(s.Shapes) == 0 {
				t.Error("Preset has no shapes")
			}

			// The camera must see something
			cam := s.CameraConfig
			ray := core.NewRay(cam.Center, cam.LookAt.Subtract(cam.Center).Normalize())
			if _, ok := s.RayIntersect(ray); !ok {
				t.Error("Camera center ray misses the scene")
			}
		})
	}
}

func TestPresets_Unknown(t *testing.T) {
	if _, err := NewPresets().Build("no-such-scene"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestPresets_Independent(t *testing.T) {
	a, b := NewPresets(), NewPresets()
	a.register(Preset{ID: "extra", build: NewFurnaceScene})

	if _, err := a.Lookup("extra"); err != nil {
		t.Errorf("Expected the added preset, got %v", err)
	}
	if _, err := b.Lookup("extra"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Preset leaked into another catalog: %v", err)
	}
	if len(b.List()) != 6 {
		t.Errorf("Expected 6 presets, got %d", len(b.List()))
	}
}

func TestCornell_LightFacesFloor(t *testing.T) {
	s, err := NewPresets().Build("cornell")
	if err != nil {
		t.Fatal(err)
	}

	// Straight up from the middle of the floor reaches the light's emitting side
	its, ok := s.RayIntersect(core.NewRay(core.NewVec3(278, 1, 278), core.NewVec3(0, 1, 0)))
	if !ok || !its.IsEmitter() {
		t.Fatal("Expected to hit the ceiling light")
	}
	if le := its.Emitter.Eval(its.EmitterRecord(core.NewVec3(278, 1, 278))); le.IsZero() {
		t.Error("Ceiling light should emit downward")
	}

	// Wall normals face the interior
	center := core.NewVec3(278, 278, 278)
	dirs := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, -1, 0), core.NewVec3(0, 0, 1),
	}
	for _, d := range dirs {
		its, ok := s.RayIntersect(core.NewRay(center, d))
		if !ok {
			t.Fatalf("Ray %v escaped the box", d)
		}
		if its.Normal().Dot(d) >= 0 {
			t.Errorf("Wall hit along %v has normal %v facing away from the interior", d, its.Normal())
		}
	}
}

func TestCornell_ShortBlockCarriesGlassSphere(t *testing.T) {
	s, err := NewPresets().Build("cornell")
	if err != nil {
		t.Fatal(err)
	}

	// Straight down onto the short block, beside the sphere resting on it
	its, ok := s.RayIntersect(core.NewRay(core.NewVec3(212.5, 500, 72.5), core.NewVec3(0, -1, 0)))
	if !ok {
		t.Fatal("Expected to hit the short block")
	}
	if math.Abs(its.T-335) > 1e-6 || its.Normal().Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-9 {
		t.Errorf("Expected the block top at t=335 facing up, got t=%f normal %v", its.T, its.Normal())
	}
	if _, ok := its.BSDF.(*material.Lambertian); !ok {
		t.Errorf("Expected a diffuse block, got %T", its.BSDF)
	}

	// Straight down through the sphere center lands on glass first
	its, ok = s.RayIntersect(core.NewRay(core.NewVec3(212.5, 500, 147.5), core.NewVec3(0, -1, 0)))
	if !ok || math.Abs(its.T-195) > 1e-6 {
		t.Fatalf("Expected the sphere top at t=195, got %v %v", its, ok)
	}
	if _, ok := its.BSDF.(*material.Dielectric); !ok {
		t.Errorf("Expected glass, got %T", its.BSDF)
	}
}

func TestMenger_TunnelReachesFloor(t *testing.T) {
	s, err := NewPresets().Build("menger")
	if err != nil {
		t.Fatal(err)
	}
	down := core.NewVec3(0, -1, 0)

	// The vertical center tunnel is open at every level
	its, ok := s.RayIntersect(core.NewRay(core.NewVec3(0, 4, 0), down))
	if !ok || math.Abs(its.T-4) > 1e-9 {
		t.Fatalf("Expected to reach the floor at t=4, got %v %v", its, ok)
	}

	// Corner columns are solid
	its, ok = s.RayIntersect(core.NewRay(core.NewVec3(-0.999, 4, -0.999), down))
	if !ok || math.Abs(its.T-2) > 1e-9 {
		t.Fatalf("Expected the sponge top at t=2, got %v %v", its, ok)
	}
	if its.Normal().Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-9 {
		t.Errorf("Expected an upward normal, got %v", its.Normal())
	}
}

func TestFurnace_EnclosureEmitsInward(t *testing.T) {
	s, err := NewPresets().Build("furnace")
	if err != nil {
		t.Fatal(err)
	}

	origin := core.NewVec3(0, 0, 2)
	its, ok := s.RayIntersect(core.NewRay(origin, core.NewVec3(0, 0, 1)))
	if !ok || !its.IsEmitter() {
		t.Fatal("Expected to hit the enclosure")
	}
	if le := its.Emitter.Eval(its.EmitterRecord(origin)); le != core.Splat(FurnaceRadiance) {
		t.Errorf("Expected enclosure radiance %f, got %v", FurnaceRadiance, le)
	}
}
