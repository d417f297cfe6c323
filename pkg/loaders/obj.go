// Package loaders turns scene files into immutable scenes. Only the
// Wavefront OBJ/MTL format is supported.
package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/whitted/go-whitted/pkg/core"
	"github.com/whitted/go-whitted/pkg/geometry"
	"github.com/whitted/go-whitted/pkg/graph"
	"github.com/whitted/go-whitted/pkg/scene"
)

const defaultMaterialName = "$default$"

// LoadOBJ parses a Wavefront OBJ file (optionally gzip-compressed) and
// returns a scene over the kd-tree of its triangles. The caller supplies
// lights and camera afterwards.
//
// Honoured OBJ directives: v, f (1-indexed, negative indices resolve from
// the end, larger faces are fan-triangulated), usemtl and mtllib. Texture
// and normal indices are parsed but ignored; normals are recomputed from
// the geometry. Unknown directives are skipped.
func LoadOBJ(path string) (*scene.Scene, error) {
	in, err := openMaybeGzip(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer in.Close()

	builder := graph.NewKDTreeBuilder()
	materials := map[string]*core.Material{
		defaultMaterialName: core.DefaultMaterial(),
	}

	var vertices []core.Vec3
	matname := defaultMaterialName

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			vertex, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: vertex: %w", path, line, err)
			}
			vertices = append(vertices, vertex)

		case "f":
			indices, err := parseFace(fields[1:], len(vertices))
			if err != nil {
				return nil, fmt.Errorf("%s:%d: face: %w", path, line, err)
			}
			material := materials[matname]
			for i := 1; i < len(indices)-1; i++ {
				o := vertices[indices[0]]
				u := vertices[indices[i]].Subtract(o)
				v := vertices[indices[i+1]].Subtract(o)
				builder.Add(geometry.NewTriangle(o, u, v, material))
			}

		case "usemtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%s:%d: usemtl without a name", path, line)
			}
			matname = fields[1]
			if _, ok := materials[matname]; !ok {
				fmt.Fprintf(os.Stderr, "warning: material %q not defined in material file, taking default\n", matname)
				matname = defaultMaterialName
			}

		case "mtllib":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%s:%d: mtllib without a file", path, line)
			}
			mtlPath := filepath.Join(filepath.Dir(path), fields[1])
			if err := loadMTL(mtlPath, materials); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return scene.New(builder.Build()), nil
}

// loadMTL parses a Wavefront material library into the materials map. The
// first definition of a name wins.
func loadMTL(path string, materials map[string]*core.Material) error {
	in, err := openMaybeGzip(path)
	if err != nil {
		return fmt.Errorf("load materials %s: %w", path, err)
	}
	defer in.Close()

	var current *core.Material
	commit := func(name string, m *core.Material) {
		if m == nil {
			return
		}
		if _, ok := materials[name]; !ok {
			materials[name] = m
		}
	}

	name := ""
	scanner := bufio.NewScanner(in)
	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				return fmt.Errorf("%s:%d: newmtl without a name", path, line)
			}
			commit(name, current)
			name = fields[1]
			current = core.NewMaterial()

		case "Kd", "Ka", "Ks", "Tf", "Ns", "Ni", "d", "Tr", "illum":
			if current == nil {
				return fmt.Errorf("%s:%d: %s before newmtl", path, line, fields[0])
			}
			switch fields[0] {
			case "Kd":
				current.Diffuse, err = parseVec3(fields[1:])
			case "Ka":
				current.Ambient, err = parseVec3(fields[1:])
			case "Ks":
				current.Specular, err = parseVec3(fields[1:])
			case "Tf":
				current.TransmissionFilter, err = parseVec3(fields[1:])
			case "Ns":
				current.Shininess, err = parseFloat(fields[1:])
			case "Ni":
				current.OpticalDensity, err = parseFloat(fields[1:])
			case "d", "Tr":
				current.Transparency, err = parseFloat(fields[1:])
			case "illum":
				current.IlluminationModel, err = parseInt(fields[1:])
			}
			if err != nil {
				return fmt.Errorf("%s:%d: %s: %w", path, line, fields[0], err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("load materials %s: %w", path, err)
	}
	commit(name, current)

	return nil
}

// parseFace resolves the vertex indices of an f directive. Indices are
// 1-based; negative indices count back from the current end of the vertex
// list. Texture and normal references after the slashes are discarded.
func parseFace(fields []string, vertexCount int) ([]int, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("expected at least 3 vertices, got %d", len(fields))
	}

	indices := make([]int, 0, len(fields))
	for _, field := range fields {
		ref, _, _ := strings.Cut(field, "/")
		index, err := strconv.Atoi(ref)
		if err != nil {
			return nil, fmt.Errorf("bad vertex reference %q", field)
		}
		if index < 0 {
			index = vertexCount + index
		} else {
			index--
		}
		if index < 0 || index >= vertexCount {
			return nil, fmt.Errorf("vertex reference %q out of range", field)
		}
		indices = append(indices, index)
	}
	return indices, nil
}

func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var components [3]float64
	for i := 0; i < 3; i++ {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("bad component %q", fields[i])
		}
		components[i] = value
	}
	return core.NewVec3(components[0], components[1], components[2]), nil
}

func parseFloat(fields []string) (float64, error) {
	if len(fields) < 1 {
		return 0, fmt.Errorf("missing value")
	}
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("bad value %q", fields[0])
	}
	return value, nil
}

func parseInt(fields []string) (int, error) {
	if len(fields) < 1 {
		return 0, fmt.Errorf("missing value")
	}
	value, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("bad value %q", fields[0])
	}
	return value, nil
}

// openMaybeGzip opens a file, transparently decompressing it when the name
// ends in .gz. When the exact name does not exist but a .gz sibling does,
// the sibling is opened instead (a gzipped OBJ may reference a gzipped
// material library by its plain name).
func openMaybeGzip(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			if sibling, err2 := os.Open(path + ".gz"); err2 == nil {
				file = sibling
				path += ".gz"
			} else {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	if !strings.HasSuffix(path, ".gz") {
		return file, nil
	}

	unzip, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &gzipReadCloser{Reader: unzip, file: file}, nil
}

type gzipReadCloser struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Close() error {
	err := g.Reader.Close()
	if ferr := g.file.Close(); err == nil {
		err = ferr
	}
	return err
}
