package kernel

import (
	"image"
	"math"
	"math/rand"

	"github.com/whitted/go-whitted/pkg/core"
	"github.com/whitted/go-whitted/pkg/geometry"
	"github.com/whitted/go-whitted/pkg/scene"
)

// Config holds the tunable constants of the shading kernel
type Config struct {
	// MaxDepth bounds the recursion of reflection and refraction rays
	MaxDepth int

	// AmbientFactor scales the ambient term of every material
	AmbientFactor float64

	// ShadowSamples is the number of jittered samples per light evaluation
	ShadowSamples int

	// ShadowJitterRadius is the half-width of the uniform jitter cube
	// around each light position
	ShadowJitterRadius float64

	// SurfaceEpsilon offsets secondary-ray origins off their spawning
	// surface to avoid self-intersection
	SurfaceEpsilon float64
}

// DefaultConfig returns the default kernel configuration
func DefaultConfig() Config {
	return Config{
		MaxDepth:           8,
		AmbientFactor:      0.2,
		ShadowSamples:      50,
		ShadowJitterRadius: 0.05,
		SurfaceEpsilon:     1e-5,
	}
}

// A sample's hit must land this close to the shaded point to count as
// having reached the light unoccluded.
const shadowMatchEpsilon = 1e-3

// BasicKernel is the shading kernel. It renders one pixel at a time with a
// Phong-like local illumination model plus recursive reflection and
// refraction, dispatched on the material's illumination model.
type BasicKernel struct {
	config Config
}

// NewBasicKernel creates a shading kernel with the given configuration
func NewBasicKernel(config Config) *BasicKernel {
	return &BasicKernel{config: config}
}

// shadeContext carries the state of a single shading evaluation
type shadeContext struct {
	scene  *scene.Scene
	camera scene.Camera
	ray    core.Ray
	hit    geometry.Hit
}

// Render renders the scene onto a new film sized to the camera's viewport
func (k *BasicKernel) Render(s *scene.Scene, camera scene.Camera) Film {
	film := NewDirectFilm(camera.Viewport.Dx(), camera.Viewport.Dy())
	k.RenderRegion(s, camera, film, image.Point{})
	return film
}

// RenderRegion renders into the given film with the given pixel offset
// within the camera's viewport
func (k *BasicKernel) RenderRegion(s *scene.Scene, camera scene.Camera, film Film, offset image.Point) {
	for y := 0; y < film.Height(); y++ {
		for x := 0; x < film.Width(); x++ {
			ray := camera.RayFrom(image.Pt(x+offset.X, y+offset.Y))
			film.Set(x, y, k.Trace(s, camera, ray, 0))
		}
	}
}

// Trace returns the radiance carried along the ray, clamped to [0,1] per
// component. A miss returns black.
func (k *BasicKernel) Trace(s *scene.Scene, camera scene.Camera, ray core.Ray, depth int) core.Vec3 {
	hit, ok := s.Graph.Intersect(ray)
	if !ok {
		return core.Vec3{}
	}
	hit.Depth = depth

	return k.shade(shadeContext{scene: s, camera: camera, ray: ray, hit: hit}, depth)
}

// shade evaluates the illumination model of the hit material
func (k *BasicKernel) shade(ctx shadeContext, depth int) core.Vec3 {
	material := ctx.hit.Primitive.Material()
	illum := material.IlluminationModel

	// Unlit preview: the diffuse color as-is
	if illum == 0 {
		return material.Diffuse.Clamp(0, 1)
	}

	result := material.Ambient.Multiply(k.config.AmbientFactor)

	var diffuse, specular float64
	for _, light := range ctx.scene.Lights {
		shadow := k.shadowFactor(ctx.scene, ctx.hit, light)
		if shadow == 0 {
			continue
		}

		lightDir := light.Subtract(ctx.hit.Position).Normalize()
		diffuse += shadow * math.Max(0, ctx.hit.Normal.Dot(lightDir))

		if illum >= 2 {
			view := ctx.ray.Origin.Subtract(ctx.hit.Position).Normalize()
			reflected := ctx.ray.Direction.Reflect(ctx.hit.Normal)
			specular += shadow * math.Pow(math.Max(0, view.Dot(reflected)), material.Shininess)
		}
	}

	result = result.Add(material.Diffuse.Multiply(diffuse))
	if illum >= 2 {
		result = result.Add(material.Specular.Multiply(specular))
	}

	if illum >= 3 && depth < k.config.MaxDepth {
		result = result.Add(k.traceReflection(ctx, depth))

		switch illum {
		case 4:
			// Blend the local result with the ray continuing straight
			// through the surface
			through := k.traceTransparency(ctx, depth)
			t := material.Transparency
			result = result.Multiply(1 - t).Add(through.Multiply(t))
		case 6, 7:
			// illum 7 asks for Fresnel weights; plain refraction is the
			// permitted fallback
			weight := core.NewVec3(1, 1, 1).Subtract(material.Specular).
				MultiplyVec(material.TransmissionFilter)
			result = result.Add(k.traceRefraction(ctx, depth).MultiplyVec(weight))
		}
	}

	return result.Clamp(0, 1)
}

// traceReflection recurses along the mirror reflection of the incoming ray
func (k *BasicKernel) traceReflection(ctx shadeContext, depth int) core.Vec3 {
	reflected := ctx.ray.Direction.Reflect(ctx.hit.Normal)
	origin := ctx.hit.Position.Add(reflected.Multiply(k.config.SurfaceEpsilon))
	return k.Trace(ctx.scene, ctx.camera, core.NewRay(origin, reflected), depth+1)
}

// traceTransparency recurses along the unchanged ray direction, continuing
// straight through the surface
func (k *BasicKernel) traceTransparency(ctx shadeContext, depth int) core.Vec3 {
	origin := ctx.hit.Position.Add(ctx.ray.Direction.Multiply(k.config.SurfaceEpsilon))
	return k.Trace(ctx.scene, ctx.camera, core.NewRay(origin, ctx.ray.Direction), depth+1)
}

// traceRefraction recurses along the refracted ray direction. Total
// internal reflection falls back to reflection about the interface normal.
func (k *BasicKernel) traceRefraction(ctx shadeContext, depth int) core.Vec3 {
	normal := ctx.hit.Normal
	eta := 1 / ctx.hit.Primitive.Material().OpticalDensity
	if ctx.ray.Direction.Dot(normal) > 0 {
		// Exiting the material: flip the interface normal and invert the
		// relative index of refraction
		normal = normal.Negate()
		eta = 1 / eta
	}

	direction, ok := refract(ctx.ray.Direction, normal, eta)
	if !ok {
		direction = ctx.ray.Direction.Reflect(normal)
	}

	origin := ctx.hit.Position.Add(direction.Multiply(k.config.SurfaceEpsilon))
	return k.Trace(ctx.scene, ctx.camera, core.NewRay(origin, direction), depth+1)
}

// refract returns the refraction of direction at a surface with unit normal
// and relative index of refraction eta. The second return value is false on
// total internal reflection, including the NaN cases of degenerate inputs.
func refract(direction, normal core.Vec3, eta float64) (core.Vec3, bool) {
	cosi := -direction.Dot(normal)
	discriminant := 1 - eta*eta*(1-cosi*cosi)
	if discriminant < 0 || math.IsNaN(discriminant) {
		return core.Vec3{}, false
	}

	refracted := direction.Multiply(eta).
		Add(normal.Multiply(eta*cosi - math.Sqrt(discriminant)))
	if refracted.IsNaN() {
		return core.Vec3{}, false
	}
	return refracted, true
}

// shadowFactor returns the fraction of jittered samples of the light that
// reach the hit position unoccluded. The sample stream reseeds for every
// evaluation, so renders are reproducible pixel for pixel.
func (k *BasicKernel) shadowFactor(s *scene.Scene, hit geometry.Hit, light core.Vec3) float64 {
	if k.config.ShadowSamples <= 0 {
		return 1
	}

	rng := rand.New(rand.NewSource(1))
	radius := k.config.ShadowJitterRadius

	unoccluded := 0
	for i := 0; i < k.config.ShadowSamples; i++ {
		jitter := core.NewVec3(
			(rng.Float64()*2-1)*radius,
			(rng.Float64()*2-1)*radius,
			(rng.Float64()*2-1)*radius,
		)
		sample := light.Add(jitter)

		ray := core.NewRay(sample, hit.Position.Subtract(sample))
		if occluder, ok := s.Graph.Intersect(ray); ok &&
			occluder.Position.Subtract(hit.Position).Length() < shadowMatchEpsilon {
			unoccluded++
		}
	}

	return float64(unoccluded) / float64(k.config.ShadowSamples)
}
