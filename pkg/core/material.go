package core

// Material holds the surface properties shared by one or more primitives.
// Its fields follow the Wavefront MTL conventions. Materials are built once
// by the loader and must not be mutated afterwards: many primitives across
// many worker threads reference the same material.
type Material struct {
	// Diffuse, ambient and specular reflectivities (Kd, Ka, Ks)
	Diffuse, Ambient, Specular Vec3

	// TransmissionFilter is the color filter applied to transmitted light (Tf)
	TransmissionFilter Vec3

	// Shininess is the specular exponent (Ns)
	Shininess float64

	// OpticalDensity is the index of refraction (Ni), >= 1
	OpticalDensity float64

	// Transparency in [0, 1]: 0 is opaque, 1 is fully transparent (d / Tr)
	Transparency float64

	// IlluminationModel selects the shading terms (illum, 0-9)
	IlluminationModel int
}

// NewMaterial creates a material with the MTL defaults for the fields a
// material file may leave unset
func NewMaterial() *Material {
	return &Material{
		TransmissionFilter: Vec3{1, 1, 1},
		OpticalDensity:     1,
		IlluminationModel:  1,
	}
}

// DefaultMaterial returns the fallback material used when a face references
// a material that was never defined
func DefaultMaterial() *Material {
	return &Material{
		Diffuse:            Vec3{0.5, 0.5, 0.5},
		Specular:           Vec3{0.5, 0.5, 0.5},
		TransmissionFilter: Vec3{1, 1, 1},
		Shininess:          96.7,
		OpticalDensity:     1,
		IlluminationModel:  2,
	}
}
