package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
)

// ErrMissingBSDF is returned by Preprocess when a shape has no material
var ErrMissingBSDF = errors.New("scene: shape has no BSDF")

// CameraConfig describes a pinhole camera placement
type CameraConfig struct {
	Center core.Vec3 // Eye position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // Up direction
	VFov   float64   // Vertical field of view in degrees
}

// Scene contains all the elements needed for rendering. It is built on one
// goroutine, then read concurrently by render workers after Preprocess.
type Scene struct {
	Shapes       []geometry.Shape // Objects in the scene
	CameraConfig CameraConfig
	emitters     []lights.Emitter
	bvh          *geometry.BVH // Acceleration structure for ray-object intersection
}

// New creates an empty scene viewed from the given camera
func New(camera CameraConfig) *Scene {
	return &Scene{
		CameraConfig: camera,
		Shapes:       make([]geometry.Shape, 0),
		emitters:     make([]lights.Emitter, 0),
	}
}

// Add attaches a material to the shape and adds it to the scene
func (s *Scene) Add(shape geometry.Shape, bsdf material.BSDF) error {
	if err := shape.SetBSDF(bsdf); err != nil {
		return err
	}
	s.Shapes = append(s.Shapes, shape)
	return nil
}

// AddAreaLight adds a shape that emits the given radiance from the side its
// normal faces. A shape without a material gets a black one, so the light
// absorbs everything it receives.
func (s *Scene) AddAreaLight(shape geometry.SampleableShape, radiance core.Vec3) error {
	light := lights.NewAreaLight(radiance)
	light.Bind(shape)
	if err := shape.SetEmitter(light); err != nil {
		return err
	}
	if shape.BSDF() == nil {
		if err := shape.SetBSDF(material.NewLambertian(core.Vec3{})); err != nil {
			return err
		}
	}
	s.Shapes = append(s.Shapes, shape)
	s.emitters = append(s.emitters, light)
	return nil
}

// Preprocess validates the scene and builds the acceleration structure
func (s *Scene) Preprocess() error {
	for i, shape := range s.Shapes {
		if shape.BSDF() == nil {
			return fmt.Errorf("shape %d (%T): %w", i, shape, ErrMissingBSDF)
		}
	}

	s.bvh = geometry.NewBVH(s.Shapes)
	return nil
}

// RayIntersect returns the closest hit along the ray beyond core.Epsilon
func (s *Scene) RayIntersect(ray core.Ray) (*geometry.Intersection, bool) {
	if s.bvh == nil {
		return nil, false
	}
	return s.bvh.Hit(ray, core.Epsilon, math.Inf(1))
}

// Occluded reports whether anything blocks the ray between core.Epsilon and tMax
func (s *Scene) Occluded(ray core.Ray, tMax float64) bool {
	if s.bvh == nil {
		return false
	}
	return s.bvh.Occluded(ray, core.Epsilon, tMax)
}

// Emitters returns the lights in the order they were added
func (s *Scene) Emitters() []lights.Emitter {
	return s.emitters
}

// BoundingBox returns the bounds of the preprocessed scene
func (s *Scene) BoundingBox() core.AABB {
	if s.bvh == nil {
		return core.AABB{}
	}
	return s.bvh.BoundingBox()
}
