package core

import (
	"math"
	"testing"
)

func TestEmptyAABBIsAbsorbingUnderUnion(t *testing.T) {
	empty := EmptyAABB()
	box := NewAABB(NewVec3(-1, -2, -3), NewVec3(1, 2, 3))

	if got := empty.Union(box); got != box {
		t.Errorf("empty ∪ box: expected %v, got %v", box, got)
	}
	if got := box.Union(empty); got != box {
		t.Errorf("box ∪ empty: expected %v, got %v", box, got)
	}
	if EmptyAABB().IsValid() {
		t.Error("expected the empty box to be invalid")
	}
}

func TestAABBUnion(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-1, 0.5, 0), NewVec3(0.5, 2, 3))

	got := a.Union(b)
	want := NewAABB(NewVec3(-1, 0, 0), NewVec3(1, 2, 3))
	if got != want {
		t.Errorf("Union: expected %v, got %v", want, got)
	}
}

func TestAABBLongestAxis(t *testing.T) {
	tests := []struct {
		name string
		box  AABB
		want int
	}{
		{"x longest", NewAABB(NewVec3(0, 0, 0), NewVec3(5, 1, 2)), 0},
		{"y longest", NewAABB(NewVec3(0, 0, 0), NewVec3(1, 5, 2)), 1},
		{"z longest", NewAABB(NewVec3(0, 0, 0), NewVec3(1, 2, 5)), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.LongestAxis(); got != tt.want {
				t.Errorf("expected axis %d, got %d", tt.want, got)
			}
		})
	}
}

func TestAABBIntersect(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name    string
		ray     Ray
		wantHit bool
	}{
		{"head on", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), true},
		{"pointing away", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), false},
		{"off to the side", NewRay(NewVec3(5, 5, 5), NewVec3(0, 0, -1)), false},
		{"diagonal through", NewRay(NewVec3(2, 2, 2), NewVec3(-1, -1, -1)), true},
		{"parallel inside slab", NewRay(NewVec3(0, 0, 5), NewVec3(0, 1, 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, hit := box.Intersect(tt.ray)
			if hit != tt.wantHit {
				t.Fatalf("expected hit=%v, got %v", tt.wantHit, hit)
			}
			if hit && math.IsNaN(d) {
				t.Error("hit distance must not be NaN")
			}
		})
	}
}

func TestAABBIntersectFromInside(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, -1))

	d, hit := box.Intersect(ray)
	if !hit {
		t.Fatal("expected a hit from inside the box")
	}
	if d > 0 {
		t.Errorf("expected non-positive entry distance from inside, got %v", d)
	}
}

// A ray grazing a corner may hit or miss, but must never produce NaN or a
// hit behind the origin
func TestAABBIntersectGrazingCorner(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	ray := NewRay(NewVec3(2, 2, 1), NewVec3(-1, -1, 0))

	d, hit := box.Intersect(ray)
	if math.IsNaN(d) {
		t.Error("grazing ray produced NaN distance")
	}
	if hit && d < 0 {
		t.Errorf("grazing ray produced negative hit distance %v", d)
	}
}

func TestEmptyAABBNeverIntersects(t *testing.T) {
	empty := EmptyAABB()
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, -1))

	if _, hit := empty.Intersect(ray); hit {
		t.Error("the empty box must not report hits")
	}
}

func TestAABBContains(t *testing.T) {
	outer := NewAABB(NewVec3(0, 0, 0), NewVec3(10, 10, 10))
	inner := NewAABB(NewVec3(1, 1, 1), NewVec3(9, 9, 9))

	if !outer.Contains(inner) {
		t.Error("expected outer to contain inner")
	}
	if inner.Contains(outer) {
		t.Error("expected inner not to contain outer")
	}
}
