// Package exporter writes rendered films to image files. Only the binary
// PPM (P6) format is supported.
package exporter

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/whitted/go-whitted/pkg/core"
	"github.com/whitted/go-whitted/pkg/kernel"
)

// WritePPM writes the film to path as a binary P6 PPM file
func WritePPM(film kernel.Film, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}

	if err := EncodePPM(film, file); err != nil {
		file.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	return file.Close()
}

// EncodePPM encodes the film as binary P6. The film's origin is bottom-left
// while PPM rows run top to bottom, so rows are emitted in reverse order.
// Channels are the clamped-linear pixel values scaled by 255 and truncated.
func EncodePPM(film kernel.Film, w io.Writer) error {
	out := bufio.NewWriter(w)

	fmt.Fprintf(out, "P6\n%d %d\n255\n", film.Width(), film.Height())

	color := make([]byte, 3)
	for y := film.Height() - 1; y >= 0; y-- {
		for x := 0; x < film.Width(); x++ {
			pixel := film.At(x, y).Multiply(255)
			color[0] = byte(pixel.X)
			color[1] = byte(pixel.Y)
			color[2] = byte(pixel.Z)
			if _, err := out.Write(color); err != nil {
				return err
			}
		}
	}

	return out.Flush()
}

// ReadPPM reads a binary P6 PPM file back into a film
func ReadPPM(path string) (*kernel.DirectFilm, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer file.Close()

	film, err := DecodePPM(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return film, nil
}

// DecodePPM decodes a binary P6 stream into a film
func DecodePPM(r io.Reader) (*kernel.DirectFilm, error) {
	in := bufio.NewReader(r)

	var magic string
	var width, height, maxVal int
	if _, err := fmt.Fscan(in, &magic, &width, &height, &maxVal); err != nil {
		return nil, fmt.Errorf("bad header: %w", err)
	}
	if magic != "P6" {
		return nil, fmt.Errorf("bad magic %q, want P6", magic)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bad dimensions %dx%d", width, height)
	}
	if maxVal != 255 {
		return nil, fmt.Errorf("unsupported max value %d, want 255", maxVal)
	}

	// A single whitespace byte separates the header from the raster
	if _, err := in.ReadByte(); err != nil {
		return nil, fmt.Errorf("bad header: %w", err)
	}

	film := kernel.NewDirectFilm(width, height)
	color := make([]byte, 3)
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			if _, err := io.ReadFull(in, color); err != nil {
				return nil, fmt.Errorf("truncated raster: %w", err)
			}
			film.Set(x, y, core.NewVec3(
				float64(color[0])/255,
				float64(color[1])/255,
				float64(color[2])/255,
			))
		}
	}

	return film, nil
}
