package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/geometry"
	"github.com/df07/go-direct-raytracer/pkg/material"
	"github.com/df07/go-direct-raytracer/pkg/scene"
)

// InspectResponse describes what the center ray of a pixel hits
type InspectResponse struct {
	Success      bool                   `json:"success"`
	Hit          bool                   `json:"hit"`
	Error        string                 `json:"error,omitempty"`
	X            int                    `json:"x"`
	Y            int                    `json:"y"`
	Distance     float64                `json:"distance,omitempty"`
	Point        [3]float64             `json:"point,omitempty"`
	Normal       [3]float64             `json:"normal,omitempty"`
	Primitive    int                    `json:"primitive"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Geometry     map[string]interface{} `json:"geometry,omitempty"`
	Materials    []BxDFInfo             `json:"materials,omitempty"`
}

// BxDFInfo describes one component of a material
type BxDFInfo struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
}

// centerSampler always returns the middle of the unit square
type centerSampler struct{}

func (centerSampler) Get1D() float64 { return 0.5 }
func (centerSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
func (centerSampler) Get3D() core.Vec3 { return core.Splat(0.5) }

// handleInspect reports the primitive seen through a pixel
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()
	sceneName := values.Get("scene")
	if sceneName == "" {
		sceneName = defaultScene
	}
	width, err := parseSizeParam(values, "width")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	height, err := parseSizeParam(values, "height")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	x, err := parseIntParam(values, "x", 0, 0, maxSize-1)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	y, err := parseIntParam(values, "y", 0, 0, maxSize-1)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sceneObj, err := loadScene(sceneName, width, height)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, inspectPixel(sceneObj, x, y))
}

// inspectPixel traces the center ray of pixel (x, y) through the first camera.
// Pixel coordinates follow the sensor, so y = 0 is the bottom row of the image.
func inspectPixel(s *scene.Scene, x, y int) InspectResponse {
	resp := InspectResponse{X: x, Y: y, Primitive: -1}

	cam, err := s.Camera(0)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	sensor := cam.ImageSensor()
	if x >= sensor.Width || y >= sensor.Height {
		resp.Error = "pixel outside image"
		return resp
	}
	resp.Success = true

	ray := cam.SampleRay(x, y, centerSampler{})
	hit, ok := s.Hit(ray)
	if !ok {
		return resp
	}

	resp.Hit = true
	resp.Distance = hit.T
	resp.Point = toArray(ray.At(hit.T))
	resp.Normal = toArray(hit.Normal)

	// Same tie-break as Scene.Hit: first primitive at the nearest distance
	for i := 0; i < s.NumPrimitives(); i++ {
		p, _ := s.Primitive(i)
		if p.Material != hit.Material {
			continue
		}
		if t, ok := p.Shape.Hit(ray); ok && t == hit.T {
			resp.Primitive = i
			resp.GeometryType, resp.Geometry = extractGeometryInfo(p.Shape)
			break
		}
	}
	resp.Materials = extractMaterialInfo(hit.Material)
	return resp
}

func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	switch g := shape.(type) {
	case *geometry.Sphere:
		return "sphere", map[string]interface{}{
			"center": toArray(g.Center),
			"radius": g.Radius,
		}
	case *geometry.Plane:
		return "plane", map[string]interface{}{
			"point":  toArray(g.Point),
			"normal": toArray(g.Normal),
		}
	case *geometry.Box:
		return "box", map[string]interface{}{
			"min": toArray(g.Min),
			"max": toArray(g.Max),
		}
	case *geometry.Cylinder:
		return "cylinder", map[string]interface{}{
			"base":   toArray(g.Base),
			"radius": g.Radius,
			"height": g.Height,
		}
	default:
		return "unknown", map[string]interface{}{}
	}
}

func extractMaterialInfo(mat *material.Material) []BxDFInfo {
	if mat == nil {
		return nil
	}
	infos := make([]BxDFInfo, 0, mat.Len())
	for i := 0; i < mat.Len(); i++ {
		b, err := mat.BxDF(i)
		if err != nil {
			break
		}
		switch m := b.(type) {
		case *material.Lambertian:
			infos = append(infos, BxDFInfo{Type: "lambertian", Properties: map[string]interface{}{
				"albedo": toArray(m.Albedo),
			}})
		case *material.GlossySpecular:
			infos = append(infos, BxDFInfo{Type: "glossy", Properties: map[string]interface{}{
				"albedo":   toArray(m.Albedo),
				"exponent": m.Exponent,
			}})
		case *material.PerfectSpecular:
			infos = append(infos, BxDFInfo{Type: "specular", Properties: map[string]interface{}{
				"albedo": toArray(m.Albedo),
			}})
		default:
			infos = append(infos, BxDFInfo{Type: "unknown", Properties: map[string]interface{}{}})
		}
	}
	return infos
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
