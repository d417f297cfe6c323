package scene

import (
	"image"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/whitted/go-whitted/pkg/core"
)

func testCamera(width, height int) Camera {
	return NewCamera(image.Rect(0, 0, width, height)).
		LookAt(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0)).
		Perspective(mgl64.DegToRad(90), 1, 0.01, 10)
}

func TestCameraLookAtPositionRoundTrip(t *testing.T) {
	positions := []core.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 2, Y: 2, Z: 4},
		{X: -3, Y: 0.5, Z: 7},
	}

	for _, p := range positions {
		camera := NewCamera(image.Rect(0, 0, 100, 100)).
			LookAt(p, core.NewVec3(0, 0, -1).Subtract(p), core.NewVec3(0, 1, 0)).
			Perspective(mgl64.DegToRad(50), 1, 0.01, 10)

		got := camera.Position()
		if got.Subtract(p).Length() > 1e-9 {
			t.Errorf("LookAt(%v).Position(): got %v", p, got)
		}
	}
}

func TestCameraCenterRay(t *testing.T) {
	camera := testCamera(100, 100)

	ray := camera.RayFrom(image.Pt(50, 50))
	if math.Abs(ray.Direction.Length()-1) > 1e-9 {
		t.Errorf("expected unit direction, got length %v", ray.Direction.Length())
	}
	if ray.Direction.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-6 {
		t.Errorf("expected center ray along -Z, got %v", ray.Direction)
	}
}

func TestCameraRayDirections(t *testing.T) {
	camera := testCamera(100, 100)

	// Rays through the left half of the viewport bend towards -X, through
	// the top half towards +Y
	left := camera.RayFrom(image.Pt(10, 50))
	if left.Direction.X >= 0 {
		t.Errorf("expected a leftward ray, got %v", left.Direction)
	}
	top := camera.RayFrom(image.Pt(50, 90))
	if top.Direction.Y <= 0 {
		t.Errorf("expected an upward ray, got %v", top.Direction)
	}
}

func TestCameraRaysOriginateNearEye(t *testing.T) {
	eye := core.NewVec3(1, 2, 3)
	camera := NewCamera(image.Rect(0, 0, 64, 64)).
		LookAt(eye, core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0)).
		Perspective(mgl64.DegToRad(50), 1, 0.01, 10)

	// Ray origins sit on the near plane, a hair in front of the eye
	ray := camera.RayFrom(image.Pt(32, 32))
	if ray.Origin.Subtract(eye).Length() > 0.1 {
		t.Errorf("expected the ray to start near %v, got %v", eye, ray.Origin)
	}
}

func TestCameraTransformsReturnNewCameras(t *testing.T) {
	base := testCamera(100, 100)
	moved := base.Translate(core.NewVec3(5, 0, 0))
	rotated := base.Rotate(math.Pi/4, core.NewVec3(0, 1, 0))

	if moved.view == base.view {
		t.Error("Translate must not leave the view matrix unchanged")
	}
	if rotated.view == base.view {
		t.Error("Rotate must not leave the view matrix unchanged")
	}

	// The original camera still unprojects the same rays
	a := base.RayFrom(image.Pt(50, 50))
	b := testCamera(100, 100).RayFrom(image.Pt(50, 50))
	if a.Direction.Subtract(b.Direction).Length() > 1e-12 {
		t.Error("transforms mutated the receiver camera")
	}
}

func TestCameraOrthographic(t *testing.T) {
	camera := NewCamera(image.Rect(0, 0, 10, 10)).
		LookAt(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0)).
		Orthographic(-1, 1, -1, 1, 0.01, 10)

	// Orthographic rays are parallel
	a := camera.RayFrom(image.Pt(2, 5))
	b := camera.RayFrom(image.Pt(8, 5))
	if a.Direction.Subtract(b.Direction).Length() > 1e-9 {
		t.Errorf("expected parallel rays, got %v and %v", a.Direction, b.Direction)
	}
	if a.Origin.X >= b.Origin.X {
		t.Errorf("expected distinct origins across the viewport, got %v and %v", a.Origin, b.Origin)
	}
}
