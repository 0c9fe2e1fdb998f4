package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	Shadowed     bool                   `json:"shadowed"`
	Color        string                 `json:"color"` // Traced pixel color
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains the shading inputs at the first surface hit by an inspection ray
type InspectResult struct {
	Hit   bool
	Comps geometry.Computations
	Color core.Color
}

// inspectPixel casts the camera ray through a pixel and reports the first hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	ray := sceneObj.Camera.RayForPixel(pixelX, pixelY)

	xs := sceneObj.World.Intersect(ray)
	hit, ok := xs.Hit()
	if !ok {
		return InspectResult{Hit: false}
	}

	return InspectResult{
		Hit:   true,
		Comps: geometry.PrepareComputations(hit, ray, xs),
		Color: sceneObj.World.ColorAt(ray),
	}
}

func hexColor(c core.Color) string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func tuple3(t core.Tuple) [3]float64 {
	return [3]float64{t.X, t.Y, t.Z}
}

// extractMaterialInfo describes a Phong material
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"color":     hexColor(mat.Color),
		"ambient":   mat.Ambient,
		"diffuse":   mat.Diffuse,
		"specular":  mat.Specular,
		"shininess": mat.Shininess,
	}

	materialType := "matte"
	if mat.Pattern != nil {
		properties["pattern"] = fmt.Sprintf("%T", mat.Pattern.Texture)
		materialType = "patterned"
	}
	if mat.Reflective > 0 {
		properties["reflective"] = mat.Reflective
		materialType = "reflective"
	}
	if mat.Transparency > 0 {
		properties["transparency"] = mat.Transparency
		properties["refractiveIndex"] = mat.RefractiveIndex
		materialType = "transparent"
	}
	return materialType, properties
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(obj *geometry.Object) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	bounds := obj.Bounds()
	if !bounds.IsEmpty() {
		properties["boundingBox"] = map[string]interface{}{
			"min": tuple3(bounds.Min),
			"max": tuple3(bounds.Max),
		}
	}
	properties["castsShadow"] = obj.CastsShadow

	switch geom := obj.Shape.(type) {
	case *geometry.Sphere:
		return "sphere", properties

	case *geometry.Plane:
		return "plane", properties

	case *geometry.Cube:
		return "cube", properties

	case *geometry.Cylinder:
		properties["minimum"] = geom.Minimum
		properties["maximum"] = geom.Maximum
		properties["closed"] = geom.Closed
		return "cylinder", properties

	case *geometry.Cone:
		properties["minimum"] = geom.Minimum
		properties["maximum"] = geom.Maximum
		properties["closed"] = geom.Closed
		return "cone", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{tuple3(geom.P1), tuple3(geom.P2), tuple3(geom.P3)}
		return "triangle", properties

	case *geometry.SmoothTriangle:
		properties["vertices"] = [3][3]float64{tuple3(geom.P1), tuple3(geom.P2), tuple3(geom.P3)}
		properties["normals"] = [3][3]float64{tuple3(geom.N1), tuple3(geom.N2), tuple3(geom.N3)}
		return "smooth_triangle", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	if pixelX < 0 || pixelX >= inspectReq.Size || pixelY < 0 || pixelY >= inspectReq.Size {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Color: hexColor(core.Black)})
		return
	}

	comps := result.Comps
	materialType, materialProps := s.extractMaterialInfo(comps.Object.Material)
	geometryType, geometryProps := s.extractGeometryInfo(comps.Object)

	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        tuple3(comps.Point),
		Normal:       tuple3(comps.NormalV),
		Distance:     comps.T,
		Inside:       comps.Inside,
		Shadowed:     sceneObj.World.IsShadowed(comps.OverPoint),
		Color:        hexColor(result.Color),
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}
	writeJSON(w, http.StatusOK, response)
}
