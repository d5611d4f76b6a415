package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit      bool          `json:"hit"`
	Point    [3]float64    `json:"point"`
	Normal   [3]float64    `json:"normal"`
	Distance float64       `json:"distance,omitempty"`
	Sphere   *SphereInfo   `json:"sphere,omitempty"`
	Material *MaterialInfo `json:"material,omitempty"`
	Color    [3]float64    `json:"color"` // Shaded color before clamping
	Bytes    [3]uint8      `json:"bytes"` // Color as written to the image
}

// SphereInfo describes the sphere under the inspected pixel
type SphereInfo struct {
	Index  int        `json:"index"`
	Center [3]float64 `json:"center"`
	Radius float64    `json:"radius"`
}

// MaterialInfo describes the material of the inspected sphere
type MaterialInfo struct {
	Name             string     `json:"name,omitempty"`
	Albedo           [3]float64 `json:"albedo"`
	DiffuseColor     [3]float64 `json:"diffuseColor"`
	SpecularExponent float64    `json:"specularExponent"`
	Reflective       bool       `json:"reflective"`
	Hex              string     `json:"hex"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// inspectPixel traces the primary ray of pixel (x, y) and describes what it
// hits and the color it shades to
func inspectPixel(sceneObj *scene.Scene, cfg integrator.WhittedConfig, camera *renderer.Camera, x, y int) InspectResponse {
	ray := camera.GetRay(x, y)
	color := integrator.NewWhittedIntegrator(cfg).RayColor(ray, sceneObj)

	response := InspectResponse{
		Color: toArray(color),
		Bytes: [3]uint8{output.ToByte(color.X), output.ToByte(color.Y), output.ToByte(color.Z)},
	}

	hit, isHit := sceneObj.Intersect(ray, cfg.Horizon)
	if !isHit {
		return response
	}

	response.Hit = true
	response.Point = toArray(hit.Point)
	response.Normal = toArray(hit.Normal)
	response.Distance = hit.T
	response.Sphere = findSphere(sceneObj, ray, hit)
	response.Material = describeMaterial(sceneObj, hit.Material)
	return response
}

// findSphere returns the first sphere whose intersection matches the hit
func findSphere(sceneObj *scene.Scene, ray core.Ray, hit geometry.Hit) *SphereInfo {
	for i, sphere := range sceneObj.Spheres {
		if t, ok := sphere.Intersect(ray); ok && t == hit.T {
			return &SphereInfo{Index: i, Center: toArray(sphere.Center), Radius: sphere.Radius}
		}
	}
	return nil
}

func describeMaterial(sceneObj *scene.Scene, mat *material.Material) *MaterialInfo {
	if mat == nil {
		return nil
	}
	info := &MaterialInfo{
		Albedo:           toArray(mat.Albedo),
		DiffuseColor:     toArray(mat.DiffuseColor),
		SpecularExponent: mat.SpecularExponent,
		Reflective:       mat.IsReflective(),
		Hex: fmt.Sprintf("#%02x%02x%02x",
			output.ToByte(mat.DiffuseColor.X), output.ToByte(mat.DiffuseColor.Y), output.ToByte(mat.DiffuseColor.Z)),
	}
	for name, m := range sceneObj.Materials {
		if m == mat {
			info.Name = name
			break
		}
	}
	return info
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
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
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := req.Config()
	camera := renderer.NewCamera(cfg.Width, cfg.Height, cfg.FOV)
	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, cfg.Integrator(), camera, pixelX, pixelY))
}
