package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Material describes how a surface responds to direct light and mirror reflection.
// Materials are built once during scene setup and shared by pointer between
// spheres; they must not be mutated while a render is running.
type Material struct {
	// Albedo weights the shading terms: X scales diffuse, Y scales specular and
	// Z scales the mirror reflection. The weights need not sum to one.
	Albedo core.Vec3

	DiffuseColor     core.Vec3 // Base RGB color, nominally in [0,1]
	SpecularExponent float64   // Phong exponent; larger is a tighter highlight
}

// NewMaterial creates a new material
func NewMaterial(albedo, diffuseColor core.Vec3, specularExponent float64) *Material {
	return &Material{
		Albedo:           albedo,
		DiffuseColor:     diffuseColor,
		SpecularExponent: specularExponent,
	}
}

// DefaultMaterial returns the material used when nothing was hit:
// pure diffuse weighting with a black color.
func DefaultMaterial() *Material {
	return NewMaterial(core.NewVec3(1, 0, 0), core.Vec3{}, 0)
}

// IsReflective reports whether the material has a mirror component
func (m *Material) IsReflective() bool {
	return m.Albedo.Z != 0
}

// NewIvory creates the off-white plastic used by the demo scenes
func NewIvory() *Material {
	return NewMaterial(core.NewVec3(0.6, 0.3, 0.1), core.NewVec3(0.4, 0.4, 0.3), 50)
}

// NewMatteIvory creates ivory without a mirror component
func NewMatteIvory() *Material {
	return NewMaterial(core.NewVec3(0.6, 0.3, 0.0), core.NewVec3(0.4, 0.4, 0.3), 50)
}

// NewRedRubber creates a dull red material with a weak highlight
func NewRedRubber() *Material {
	return NewMaterial(core.NewVec3(0.9, 0.1, 0.0), core.NewVec3(0.3, 0.1, 0.1), 10)
}

// NewMirror creates a near-perfect mirror with a very sharp highlight
func NewMirror() *Material {
	return NewMaterial(core.NewVec3(0.0, 10.0, 0.8), core.NewVec3(1, 1, 1), 1425)
}
