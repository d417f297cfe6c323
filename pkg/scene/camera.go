package scene

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/whitted/go-whitted/pkg/core"
)

// Camera projects the scene onto a viewport. It is an immutable value: all
// transforms return a new camera.
type Camera struct {
	// Viewport is the window rectangle rays are unprojected against
	Viewport image.Rectangle

	view       mgl64.Mat4
	projection mgl64.Mat4
}

// NewCamera creates a camera for the given viewport with identity view and
// projection matrices
func NewCamera(viewport image.Rectangle) Camera {
	return Camera{
		Viewport:   viewport,
		view:       mgl64.Ident4(),
		projection: mgl64.Ident4(),
	}
}

// LookAt returns a camera positioned at position and looking along
// direction, replacing the view matrix
func (c Camera) LookAt(position, direction, up core.Vec3) Camera {
	eye := toMgl(position)
	center := toMgl(position.Add(direction))
	c.view = mgl64.LookAtV(eye, center, toMgl(up))
	return c
}

// Perspective returns a camera with a perspective projection matrix. The
// field of view is given in radians.
func (c Camera) Perspective(fov, aspect, near, far float64) Camera {
	c.projection = mgl64.Perspective(fov, aspect, near, far)
	return c
}

// Orthographic returns a camera with an orthographic projection matrix
func (c Camera) Orthographic(left, right, bottom, top, near, far float64) Camera {
	c.projection = mgl64.Ortho(left, right, bottom, top, near, far)
	return c
}

// Translate returns a camera whose view matrix is post-multiplied by a
// translation
func (c Camera) Translate(d core.Vec3) Camera {
	c.view = c.view.Mul4(mgl64.Translate3D(d.X, d.Y, d.Z))
	return c
}

// Rotate returns a camera whose view matrix is post-multiplied by a
// rotation of angle radians about the given axis
func (c Camera) Rotate(angle float64, axis core.Vec3) Camera {
	c.view = c.view.Mul4(mgl64.HomogRotate3D(angle, toMgl(axis).Normalize()))
	return c
}

// Position returns the world-space position of the camera, derived from the
// translation column of the inverted view matrix
func (c Camera) Position() core.Vec3 {
	inv := c.view.Inv()
	return core.Vec3{X: inv.At(0, 3), Y: inv.At(1, 3), Z: inv.At(2, 3)}
}

// RayFrom returns the ray through the given window coordinate, unprojecting
// the near and far plane points of the pixel through the view and
// projection matrices
func (c Camera) RayFrom(win image.Point) core.Ray {
	x := float64(win.X)
	y := float64(win.Y)

	near, _ := mgl64.UnProject(mgl64.Vec3{x, y, 0}, c.view, c.projection,
		c.Viewport.Min.X, c.Viewport.Min.Y, c.Viewport.Dx(), c.Viewport.Dy())
	far, _ := mgl64.UnProject(mgl64.Vec3{x, y, 1}, c.view, c.projection,
		c.Viewport.Min.X, c.Viewport.Min.Y, c.Viewport.Dx(), c.Viewport.Dy())

	origin := fromMgl(near)
	return core.NewRay(origin, fromMgl(far).Subtract(origin))
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.Vec3{X: v.X(), Y: v.Y(), Z: v.Z()}
}
