package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-anytime-raytracer/pkg/core"
	"github.com/df07/go-anytime-raytracer/pkg/geometry"
	"github.com/df07/go-anytime-raytracer/pkg/integrator"
	"github.com/df07/go-anytime-raytracer/pkg/material"
	"github.com/df07/go-anytime-raytracer/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ShapeIndex   int                    `json:"shapeIndex"`
	IsTarget     bool                   `json:"isTarget"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties"`
	Pixel        *PixelInfo             `json:"pixel,omitempty"` // Cache state, for running renders only
}

// PixelInfo exposes a pixel's accumulation state
type PixelInfo struct {
	Status      string `json:"status"`
	SampleCount uint64 `json:"sampleCount"`
	Streak      uint8  `json:"streak"`
	Color       string `json:"color"`
}

// colorHex formats a linear color as #rrggbb, clamping each channel
func colorHex(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat core.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = colorHex(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = colorHex(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = colorHex(m.Albedo)
		return "dielectric", properties

	case *material.Emissive:
		properties["emission"] = toArray(m.Emission)
		properties["color"] = colorHex(m.Emission)
		return "emissive", properties

	case *material.Texture:
		properties["width"] = m.Width
		properties["height"] = m.Height
		properties["scale"] = m.Scale
		return "texture", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape core.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = toArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Quad:
		properties["corner"] = toArray(geom.Corner)
		properties["u"] = toArray(geom.U)
		properties["v"] = toArray(geom.V)
		properties["normal"] = toArray(geom.Normal)
		return "quad", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the central ray through pixel (x, y), with y=0 at the bottom,
// and describes the nearest shape it hits
func inspectPixel(camera *renderer.Camera, shapes []core.Shape, width, height, x, y int) InspectResponse {
	u := (float64(x) + 0.5) / float64(width)
	v := (float64(y) + 0.5) / float64(height)
	ray := camera.GetRay(u, v)

	hit, index := integrator.FindCollision(ray, shapes, integrator.TMin, integrator.TMax)
	if hit == nil {
		return InspectResponse{Hit: false, ShapeIndex: -1}
	}

	materialType, materialProps := extractMaterialInfo(hit.Shape.Material())
	geometryType, geometryProps := extractGeometryInfo(hit.Shape)

	return InspectResponse{
		Hit:          true,
		ShapeIndex:   index,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        toArray(hit.Position),
		Normal:       toArray(hit.Normal()),
		Distance:     hit.Distance,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}
}

// handleInspect handles ray casting inspection requests. x and y are image coordinates
// with the origin at the top-left. With id the running render's camera and pixel state
// are used; otherwise the scene is built from the request parameters.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	values := r.URL.Query()

	var (
		camera        *renderer.Camera
		shapes        []core.Shape
		width, height int
		target        int
		live          *liveSession
	)

	if renderID := values.Get("id"); renderID != "" {
		var ok bool
		if live, ok = s.lookupSession(renderID); !ok {
			writeError(w, http.StatusNotFound, "No running render: "+renderID)
			return
		}
		camera = live.session.Camera()
		shapes = live.scene.GetShapes()
		width, height = live.session.Size()
		target = live.scene.TargetShape
	} else {
		req := &RenderRequest{}
		if err := s.parseSceneParams(values, req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
			return
		}
		sceneObj, err := s.createScene(req)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		camera = sceneObj.GetCamera()
		shapes = sceneObj.GetShapes()
		width, height = req.Width, req.Height
		target = sceneObj.TargetShape
	}

	pixelX, err := parseIntParam(values, "x", -1, 0, width-1)
	if err != nil || pixelX < 0 {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := parseIntParam(values, "y", -1, 0, height-1)
	if err != nil || pixelY < 0 {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	// Image rows grow downward, render rows grow upward
	renderY := height - 1 - pixelY

	response := inspectPixel(camera, shapes, width, height, pixelX, renderY)
	response.IsTarget = response.Hit && response.ShapeIndex == target

	if live != nil {
		if entry, ok := live.session.Pixel(pixelX, renderY); ok {
			c := entry.Color()
			response.Pixel = &PixelInfo{
				Status:      entry.Status.String(),
				SampleCount: entry.SampleCount,
				Streak:      entry.Streak,
				Color:       fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B),
			}
		}
	}

	writeJSON(w, http.StatusOK, response)
}
