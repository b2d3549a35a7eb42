package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
	"github.com/df07/go-light-transport/pkg/renderer"
	"github.com/df07/go-light-transport/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Emitter      bool                   `json:"emitter"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties"`
}

func vecToArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(v core.Vec3) string {
	c := v.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(bsdf material.BSDF) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := bsdf.(type) {
	case *material.Lambertian:
		properties["albedo"] = vecToArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Mirror:
		properties["reflectance"] = vecToArray(m.Reflectance)
		return "mirror", properties

	case *material.Dielectric:
		properties["interiorIOR"] = m.InteriorIOR
		properties["exteriorIOR"] = m.ExteriorIOR
		properties["color"] = hexColor(m.Color)
		return "dielectric", properties

	case *material.Microfacet:
		properties["alpha"] = m.Alpha
		properties["kd"] = vecToArray(m.Kd)
		properties["ks"] = m.Ks()
		properties["interiorIOR"] = m.InteriorIOR
		properties["exteriorIOR"] = m.ExteriorIOR
		return "microfacet", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecToArray(geom.Center)
		properties["radius"] = geom.Radius
		properties["inward"] = geom.Inward
		properties["area"] = geom.SurfaceArea()
		return "sphere", properties

	case *geometry.Quad:
		properties["corner"] = vecToArray(geom.Corner)
		properties["u"] = vecToArray(geom.U)
		properties["v"] = vecToArray(geom.V)
		properties["normal"] = vecToArray(geom.Normal)
		properties["area"] = geom.SurfaceArea()
		return "quad", properties

	case *geometry.Box:
		properties["center"] = vecToArray(geom.Center)
		properties["size"] = vecToArray(geom.Size)
		properties["rotation"] = vecToArray(geom.Rotation)
		properties["area"] = geom.SurfaceArea()
		return "box", properties

	case *geometry.MengerSponge:
		properties["min"] = vecToArray(geom.Bounds.Min)
		properties["max"] = vecToArray(geom.Bounds.Max)
		properties["iterations"] = geom.Iterations
		return "menger", properties

	case *geometry.Plane:
		properties["point"] = vecToArray(geom.Point)
		properties["normal"] = vecToArray(geom.Normal)
		return "plane", properties

	default:
		return "unknown", properties
	}
}

// InspectResult contains rich information about an object hit by an inspection ray
type InspectResult struct {
	Hit          bool
	Intersection *geometry.Intersection
	Shape        geometry.Shape // The actual shape that was hit
}

// inspectPixel casts a ray through the center of the specified pixel and
// returns information about the first object hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	camera := renderer.NewCamera(sceneObj.CameraConfig, float64(width)/float64(height))
	s := (float64(pixelX) + 0.5) / float64(width)
	t := 1 - (float64(pixelY)+0.5)/float64(height)
	ray := camera.GetRay(s, t)

	its, isHit := sceneObj.RayIntersect(ray)
	if !isHit {
		return InspectResult{Hit: false}
	}

	// Find the specific shape that was hit by testing all shapes
	// (the BVH doesn't return the shape, just the intersection)
	for _, shape := range sceneObj.Shapes {
		if shapeHit, ok := shape.Hit(ray, core.Epsilon, math.Inf(1)); ok && shapeHit.T == its.T {
			return InspectResult{Hit: true, Intersection: its, Shape: shape}
		}
	}

	return InspectResult{Hit: true, Intersection: its}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := parseSceneParams(r, inspectReq); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, err := s.presets.Build(inspectReq.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := inspectPixel(sceneObj, inspectReq.Width, inspectReq.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	its := result.Intersection
	materialType, materialProps := extractMaterialInfo(its.BSDF)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)

	allProperties := map[string]interface{}{
		"material": materialProps,
		"geometry": geometryProps,
	}
	if light, ok := its.Emitter.(*lights.AreaLight); ok {
		allProperties["emitter"] = map[string]interface{}{
			"radiance": vecToArray(light.Radiance),
		}
	}

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Emitter:      its.IsEmitter(),
		Point:        vecToArray(its.Point),
		Normal:       vecToArray(its.Normal()),
		Distance:     its.T,
		Properties:   allProperties,
	})
}
