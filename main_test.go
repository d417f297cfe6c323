package main

import (
	"testing"

	"github.com/whitted/go-whitted/pkg/core"
)

func TestParseTriple(t *testing.T) {
	tests := []struct {
		input string
		want  core.Vec3
		ok    bool
	}{
		{"(2, 2, 4)", core.NewVec3(2, 2, 4), true},
		{"(0,0,-1)", core.NewVec3(0, 0, -1), true},
		{"(1.5, -0.25, 3e2)", core.NewVec3(1.5, -0.25, 300), true},
		{"2, 2, 4", core.Vec3{}, false},
		{"(2, 2)", core.Vec3{}, false},
		{"(a, b, c)", core.Vec3{}, false},
	}

	for _, tt := range tests {
		got, err := parseTriple(tt.input)
		if tt.ok && err != nil {
			t.Errorf("parseTriple(%q): unexpected error %v", tt.input, err)
			continue
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("parseTriple(%q): expected an error", tt.input)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("parseTriple(%q): expected %v, got %v", tt.input, tt.want, got)
		}
	}
}

func TestParseRange(t *testing.T) {
	lo, hi, err := parseRange("(0, 32)")
	if err != nil || lo != 0 || hi != 32 {
		t.Errorf("expected (0, 32), got (%d, %d) err=%v", lo, hi, err)
	}

	if _, _, err := parseRange("0-32"); err == nil {
		t.Error("expected an error for a malformed range")
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"cube.obj", "cube.ppm"},
		{"/data/scenes/dragon.obj", "dragon.ppm"},
		{"scene.obj.gz", "scene.ppm"},
		{"noext", "noext.ppm"},
	}

	for _, tt := range tests {
		if got := outputName(tt.path); got != tt.want {
			t.Errorf("outputName(%q): expected %q, got %q", tt.path, tt.want, got)
		}
	}
}
