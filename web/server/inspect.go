package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	SphereIndex  int                    `json:"sphereIndex"`
	MaterialType string                 `json:"materialType"`
	Center       [3]float32             `json:"center"`
	Radius       float32                `json:"radius"`
	Point        [3]float32             `json:"point"`
	Normal       [3]float32             `json:"normal"`
	Distance     float32                `json:"distance"`
	Inside       bool                   `json:"inside"`
	Color        [3]float32             `json:"color"` // Traced color of the pixel, unclamped
	Properties   map[string]interface{} `json:"properties"`
}

func toArray(v core.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func hexColor(v core.Vec3) string {
	c := v.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo classifies the material and lists its properties
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"surfaceColor":  toArray(mat.SurfaceColor),
		"emissionColor": toArray(mat.EmissionColor),
		"reflection":    mat.Reflection,
		"transparency":  mat.Transparency,
	}

	switch {
	case mat.IsLight():
		properties["color"] = hexColor(mat.EmissionColor)
		return "light", properties
	case mat.IsTransparent():
		properties["color"] = hexColor(mat.SurfaceColor)
		return "glass", properties
	case mat.IsSpecular():
		properties["color"] = hexColor(mat.SurfaceColor)
		return "mirror", properties
	default:
		properties["color"] = hexColor(mat.SurfaceColor)
		return "diffuse", properties
	}
}

// handleInspect casts the primary ray of one pixel and reports what it hits
func (s *Server) handleInspect(c echo.Context) error {
	req, err := parseRenderRequest(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
	}

	sceneObj, err := createScene(req.Scene)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	renderConfig, integratorConfig := buildConfigs(sceneObj.SamplingConfig, req)

	values := c.QueryParams()
	x, err := parseIntParam(values, "x", 0, 0, renderConfig.Width-1)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	y, err := parseIntParam(values, "y", 0, 0, renderConfig.Height-1)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	camera := renderer.NewCamera(renderConfig.Width, renderConfig.Height, renderConfig.FOV)
	ray := camera.GetRay(x, y)
	whitted := integrator.NewWhitted(integratorConfig)
	spheres := sceneObj.GetSpheres()

	response := InspectResponse{
		SphereIndex: -1,
		Color:       toArray(whitted.Trace(ray, spheres, 0)),
	}

	info, ok := whitted.Inspect(ray, spheres)
	if !ok {
		return c.JSON(http.StatusOK, response)
	}

	response.Hit = true
	response.SphereIndex = info.Index
	response.Center = toArray(info.Sphere.Center)
	response.Radius = info.Sphere.Radius
	response.Point = toArray(info.Point)
	response.Normal = toArray(info.Normal)
	response.Distance = info.Distance
	response.Inside = info.Inside
	response.MaterialType, response.Properties = extractMaterialInfo(info.Sphere.Material)

	return c.JSON(http.StatusOK, response)
}
