package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewSingleSphereScene creates one matte ivory sphere lit by a single light
func NewSingleSphereScene() *Scene {
	s := NewScene("single")
	ivory := s.AddMaterial("ivory", material.NewMatteIvory())

	s.AddSphere(core.NewVec3(-3, 0, -16), 2, ivory)
	s.AddLight(core.NewVec3(-20, 20, 20), 1.5)
	return s
}

// NewDefaultScene creates four diffuse/specular spheres under three lights.
// No material has a mirror component.
func NewDefaultScene() *Scene {
	s := NewScene("default")
	ivory := s.AddMaterial("ivory", material.NewMatteIvory())
	redRubber := s.AddMaterial("red_rubber", material.NewRedRubber())

	s.AddSphere(core.NewVec3(-3, 0, -16), 2, ivory)
	s.AddSphere(core.NewVec3(-1.0, -1.5, -12), 2, redRubber)
	s.AddSphere(core.NewVec3(1.5, -0.5, -18), 3, redRubber)
	s.AddSphere(core.NewVec3(7, 5, -18), 4, ivory)

	addDefaultLights(s)
	return s
}

// NewMirrorScene creates the default layout with a mirror sphere, so the render
// shows reflections and cast shadows
func NewMirrorScene() *Scene {
	s := NewScene("mirror")
	ivory := s.AddMaterial("ivory", material.NewIvory())
	redRubber := s.AddMaterial("red_rubber", material.NewRedRubber())
	mirror := s.AddMaterial("mirror", material.NewMirror())

	s.AddSphere(core.NewVec3(-3, 0, -16), 2, ivory)
	s.AddSphere(core.NewVec3(-1.0, -1.5, -12), 2, mirror)
	s.AddSphere(core.NewVec3(1.5, -0.5, -18), 3, redRubber)
	s.AddSphere(core.NewVec3(7, 5, -18), 4, mirror)

	addDefaultLights(s)
	return s
}

// NewEmptyScene creates a scene with nothing in it
func NewEmptyScene() *Scene {
	return NewScene("empty")
}

func addDefaultLights(s *Scene) {
	s.AddLight(core.NewVec3(-20, 20, 20), 1.5)
	s.AddLight(core.NewVec3(30, 50, -25), 1.8)
	s.AddLight(core.NewVec3(30, 20, 30), 1.7)
}
