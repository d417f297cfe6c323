package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/urfave/cli"

	"github.com/whitted/go-whitted/pkg/core"
	"github.com/whitted/go-whitted/pkg/exporter"
	"github.com/whitted/go-whitted/pkg/graph"
	"github.com/whitted/go-whitted/pkg/kernel"
	"github.com/whitted/go-whitted/pkg/loaders"
	"github.com/whitted/go-whitted/pkg/scene"
)

func main() {
	// -h is taken by the viewport height
	cli.HelpFlag = cli.BoolFlag{
		Name:  "help",
		Usage: "show help",
	}

	app := cli.NewApp()
	app.Name = "go-whitted"
	app.Usage = "render Wavefront OBJ scenes with a Whitted-style ray tracer"
	app.ArgsUsage = "scene.obj..."
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "w",
			Value: 800,
			Usage: "viewport width",
		},
		cli.IntFlag{
			Name:  "h",
			Value: 800,
			Usage: "viewport height",
		},
		cli.IntFlag{
			Name:  "N",
			Value: runtime.NumCPU(),
			Usage: "number of render workers",
		},
		cli.IntFlag{
			Name:  "p",
			Value: 64,
			Usage: "number of film partitions",
		},
		cli.StringFlag{
			Name:  "r",
			Usage: "partition index range to render as \"(lo, hi)\"",
		},
		cli.StringFlag{
			Name:  "e",
			Value: "(2, 2, 4)",
			Usage: "camera eye position as \"(x, y, z)\"",
		},
		cli.StringFlag{
			Name:  "c",
			Value: "(0, 0, -1)",
			Usage: "camera centre as \"(x, y, z)\"",
		},
		cli.StringFlag{
			Name:  "u",
			Value: "(0, 1, 0)",
			Usage: "camera up vector as \"(x, y, z)\"",
		},
	}
	app.Action = render

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func render(c *cli.Context) error {
	width := c.Int("w")
	height := c.Int("h")
	workers := c.Int("N")
	partitions := c.Int("p")

	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid viewport size %dx%d", width, height)
	}
	if workers <= 0 {
		return fmt.Errorf("invalid worker count %d", workers)
	}
	if partitions <= 0 {
		return fmt.Errorf("invalid partition count %d", partitions)
	}

	lo, hi := 0, partitions
	if r := c.String("r"); r != "" {
		var err error
		if lo, hi, err = parseRange(r); err != nil {
			return err
		}
		if lo < 0 || hi > partitions || lo > hi {
			return fmt.Errorf("partition range (%d, %d) out of bounds for %d partitions", lo, hi, partitions)
		}
	}

	eye, err := parseTriple(c.String("e"))
	if err != nil {
		return err
	}
	centre, err := parseTriple(c.String("c"))
	if err != nil {
		return err
	}
	up, err := parseTriple(c.String("u"))
	if err != nil {
		return err
	}

	if c.NArg() == 0 {
		cli.ShowAppHelp(c)
		return fmt.Errorf("no scene files given")
	}

	// Set up the camera over the viewport
	viewport := image.Rect(0, 0, width, height)
	camera := scene.NewCamera(viewport).
		LookAt(eye, centre.Subtract(eye), up).
		Perspective(mgl64.DegToRad(50), 1, 0.01, 10)

	// Tracing and scheduling kernels
	tracer := kernel.NewBasicKernel(kernel.DefaultConfig())
	scheduler := kernel.NewMultithreadedKernelWithRange(
		tracer, workers, partitions, lo, hi, newConsoleObserver(),
	)
	defer scheduler.Close()

	for i, path := range c.Args() {
		fmt.Printf("[%d] Loading scene at path %q\n", i+1, path)
		sc, err := loaders.LoadOBJ(path)
		if err != nil {
			return err
		}
		sc.Camera = camera
		sc.Lights = []core.Vec3{eye}

		if kd, ok := sc.Graph.(*graph.KDTree); ok {
			fmt.Printf("[%d] Rendering scene (%d primitives, graph depth %d, %d workers)\n",
				i+1, kd.Count(), kd.Depth(), scheduler.Workers())
		} else {
			fmt.Printf("[%d] Rendering scene (%d primitives, %d workers)\n",
				i+1, sc.Graph.Count(), scheduler.Workers())
		}

		begin := time.Now()
		film := scheduler.Render(sc, camera)
		fmt.Printf("[%d] Rendering done (real %.3fs)\n", i+1, time.Since(begin).Seconds())

		target := outputName(path)
		if err := exporter.WritePPM(film, target); err != nil {
			return err
		}
		fmt.Printf("[%d] Saved result to %s\n", i+1, target)
	}
	return nil
}

// outputName derives the output file from a scene path: the base name with
// the extension (and a trailing .gz) replaced by .ppm
func outputName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ".ppm"
}

// parseTriple parses a vector formatted as "(x, y, z)"
func parseTriple(s string) (core.Vec3, error) {
	var x, y, z float64
	if n, _ := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "(%f,%f,%f)", &x, &y, &z); n != 3 {
		return core.Vec3{}, fmt.Errorf("invalid vector %q", s)
	}
	return core.NewVec3(x, y, z), nil
}

// parseRange parses a partition index range formatted as "(lo, hi)"
func parseRange(s string) (int, int, error) {
	var lo, hi int
	if n, _ := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "(%d,%d)", &lo, &hi); n != 2 {
		return 0, 0, fmt.Errorf("invalid range %q", s)
	}
	return lo, hi, nil
}
