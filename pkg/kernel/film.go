package kernel

import (
	"image"
	"math"

	"github.com/whitted/go-whitted/pkg/core"
)

// Film is a raster a kernel projects a scene onto. Pixels are addressed
// row-major with the origin in the bottom-left corner.
type Film interface {
	// Width returns the width of the film in pixels
	Width() int

	// Height returns the height of the film in pixels
	Height() int

	// At returns the pixel at (x, y)
	At(x, y int) core.Vec3

	// Set writes the pixel at (x, y)
	Set(x, y int, pixel core.Vec3)
}

// DirectFilm is a film backed by a single contiguous pixel buffer
type DirectFilm struct {
	width  int
	height int
	buffer []core.Vec3
}

// NewDirectFilm creates a film of the given size
func NewDirectFilm(width, height int) *DirectFilm {
	return &DirectFilm{
		width:  width,
		height: height,
		buffer: make([]core.Vec3, width*height),
	}
}

// Width returns the width of the film in pixels
func (f *DirectFilm) Width() int { return f.width }

// Height returns the height of the film in pixels
func (f *DirectFilm) Height() int { return f.height }

// At returns the pixel at (x, y)
func (f *DirectFilm) At(x, y int) core.Vec3 {
	return f.buffer[y*f.width+x]
}

// Set writes the pixel at (x, y)
func (f *DirectFilm) Set(x, y int, pixel core.Vec3) {
	f.buffer[y*f.width+x] = pixel
}

// PartitionedFilm is a film composed of disjoint sub-films (tiles). Each
// tile is rendered by exactly one worker, so tiles need no locking.
type PartitionedFilm struct {
	width  int
	height int

	partitions []*DirectFilm
	px, py     int // base tile size
	columns    int
	rows       int
}

// NewPartitionedFilm creates a film of the given size split into n tiles.
// n is factored into columns x rows with columns the largest divisor of n
// not exceeding sqrt(n); tiles in the last column and row absorb the
// remainder of the width and height.
func NewPartitionedFilm(width, height, n int) *PartitionedFilm {
	columns := int(math.Sqrt(float64(n)))
	for n%columns != 0 {
		columns--
	}
	rows := n / columns

	px := width / columns
	py := height / rows
	rx := width % columns
	ry := height % rows

	partitions := make([]*DirectFilm, 0, n)
	for row := 0; row < rows; row++ {
		for column := 0; column < columns; column++ {
			w := px
			if column == columns-1 {
				w += rx
			}
			h := py
			if row == rows-1 {
				h += ry
			}
			partitions = append(partitions, NewDirectFilm(w, h))
		}
	}

	return &PartitionedFilm{
		width:      width,
		height:     height,
		partitions: partitions,
		px:         px,
		py:         py,
		columns:    columns,
		rows:       rows,
	}
}

// Width returns the width of the film in pixels
func (f *PartitionedFilm) Width() int { return f.width }

// Height returns the height of the film in pixels
func (f *PartitionedFilm) Height() int { return f.height }

// N returns the number of tiles in the film
func (f *PartitionedFilm) N() int { return len(f.partitions) }

// Partition returns the i-th tile
func (f *PartitionedFilm) Partition(i int) *DirectFilm {
	return f.partitions[i]
}

// Offset returns the position of the i-th tile's origin within the film
func (f *PartitionedFilm) Offset(i int) image.Point {
	return image.Pt((i%f.columns)*f.px, (i/f.columns)*f.py)
}

// partitionAt resolves a film coordinate to its tile index
func (f *PartitionedFilm) partitionAt(x, y int) int {
	column := min(x/f.px, f.columns-1)
	row := min(y/f.py, f.rows-1)
	return row*f.columns + column
}

// At returns the pixel at (x, y)
func (f *PartitionedFilm) At(x, y int) core.Vec3 {
	n := f.partitionAt(x, y)
	offset := f.Offset(n)
	return f.partitions[n].At(x-offset.X, y-offset.Y)
}

// Set writes the pixel at (x, y)
func (f *PartitionedFilm) Set(x, y int, pixel core.Vec3) {
	n := f.partitionAt(x, y)
	offset := f.Offset(n)
	f.partitions[n].Set(x-offset.X, y-offset.Y, pixel)
}
