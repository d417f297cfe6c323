package kernel

import (
	"testing"

	"github.com/whitted/go-whitted/pkg/core"
)

func TestDirectFilmSetGet(t *testing.T) {
	film := NewDirectFilm(4, 3)

	if film.Width() != 4 || film.Height() != 3 {
		t.Fatalf("expected 4x3 film, got %dx%d", film.Width(), film.Height())
	}

	pixel := core.NewVec3(0.1, 0.5, 0.9)
	film.Set(2, 1, pixel)
	if got := film.At(2, 1); got != pixel {
		t.Errorf("expected %v, got %v", pixel, got)
	}
	if got := film.At(0, 0); got != (core.Vec3{}) {
		t.Errorf("expected untouched pixels to stay black, got %v", got)
	}
}

func TestPartitionedFilmFactoring(t *testing.T) {
	tests := []struct {
		n       int
		columns int
		rows    int
	}{
		{1, 1, 1},
		{4, 2, 2},
		{6, 2, 3},
		{7, 1, 7},
		{12, 3, 4},
		{64, 8, 8},
	}

	for _, tt := range tests {
		film := NewPartitionedFilm(80, 80, tt.n)
		if film.columns != tt.columns || film.rows != tt.rows {
			t.Errorf("n=%d: expected %dx%d grid, got %dx%d",
				tt.n, tt.columns, tt.rows, film.columns, film.rows)
		}
		if film.N() != tt.n {
			t.Errorf("n=%d: expected %d partitions, got %d", tt.n, tt.n, film.N())
		}
	}
}

// The tiles must cover the film exactly once
func TestPartitionedFilmTiling(t *testing.T) {
	for _, n := range []int{1, 3, 5, 8, 64} {
		film := NewPartitionedFilm(101, 67, n)

		covered := make([]int, 101*67)
		for i := 0; i < film.N(); i++ {
			offset := film.Offset(i)
			tile := film.Partition(i)
			for y := 0; y < tile.Height(); y++ {
				for x := 0; x < tile.Width(); x++ {
					covered[(offset.Y+y)*101+(offset.X+x)]++
				}
			}
		}

		for idx, count := range covered {
			if count != 1 {
				t.Fatalf("n=%d: pixel %d covered %d times", n, idx, count)
			}
		}
	}
}

func TestPartitionedFilmLastTilesAbsorbRemainder(t *testing.T) {
	// 10x10 film in a 3x3 grid: base tiles are 3x3, the last column and
	// row grow to 4
	film := NewPartitionedFilm(10, 10, 9)

	first := film.Partition(0)
	if first.Width() != 3 || first.Height() != 3 {
		t.Errorf("expected 3x3 base tile, got %dx%d", first.Width(), first.Height())
	}
	last := film.Partition(8)
	if last.Width() != 4 || last.Height() != 4 {
		t.Errorf("expected 4x4 corner tile, got %dx%d", last.Width(), last.Height())
	}
}

func TestPartitionedFilmResolvesPixels(t *testing.T) {
	film := NewPartitionedFilm(10, 10, 4)

	// Write through the film, read back through the tile and vice versa
	film.Set(7, 8, core.NewVec3(1, 0, 0))
	offset := film.Offset(3)
	tile := film.Partition(3)
	if got := tile.At(7-offset.X, 8-offset.Y); got != core.NewVec3(1, 0, 0) {
		t.Errorf("expected the write to land in tile 3, got %v", got)
	}

	tile.Set(0, 0, core.NewVec3(0, 1, 0))
	if got := film.At(offset.X, offset.Y); got != core.NewVec3(0, 1, 0) {
		t.Errorf("expected the tile write to be visible through the film, got %v", got)
	}
}
