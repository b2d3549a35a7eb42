package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/scene"
)

func vecNear(a, b core.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestCameraGetRay(t *testing.T) {
	camera := NewCamera(scene.CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90,
	}, 1.0)

	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"right edge", 1, 0.5, core.NewVec3(1, 0, -1).Normalize()},
		{"top edge", 0.5, 1, core.NewVec3(0, 1, -1).Normalize()},
		{"lower left", 0, 0, core.NewVec3(-1, -1, -1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t)
			if ray.Origin != (core.Vec3{}) {
				t.Errorf("Expected origin at the camera center, got %v", ray.Origin)
			}
			if !vecNear(ray.Direction, tt.expected, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestCameraLookAt(t *testing.T) {
	config := scene.CameraConfig{
		Center: core.NewVec3(3, 2, 5),
		LookAt: core.NewVec3(-1, 0, 1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   30,
	}
	camera := NewCamera(config, 16.0/9.0)

	forward := config.LookAt.Subtract(config.Center).Normalize()
	ray := camera.GetRay(0.5, 0.5)
	if !vecNear(ray.Direction, forward, 1e-9) {
		t.Errorf("Center ray should look at the target: expected %v, got %v", forward, ray.Direction)
	}
	if math.Abs(ray.Direction.Length()-1) > 1e-12 {
		t.Errorf("Expected unit direction, got length %f", ray.Direction.Length())
	}
}

func TestCameraDefaultFov(t *testing.T) {
	camera := NewCamera(scene.CameraConfig{
		Center: core.NewVec3(0, 0, 1),
		Up:     core.NewVec3(0, 1, 0),
	}, 1.0)

	ray := camera.GetRay(0, 0)
	if !ray.Direction.IsFinite() {
		t.Fatalf("Expected a finite direction with an unset field of view, got %v", ray.Direction)
	}
	// Half-angle of the diagonal is wider than the vertical half-angle
	if cos := -ray.Direction.Z; cos >= math.Cos(defaultVFov/2*math.Pi/180) {
		t.Errorf("Corner ray should lie outside the vertical half-angle, cos = %f", cos)
	}
}
