// Command raytracer renders a scene file to a PPM image.
//
// Usage:
//
//	raytracer [scene_file] [output_file] [width] [height] [samples_per_pixel]
//
// All arguments are positional and optional.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	rt "github.com/elh/go-raytracer"
	"github.com/elh/go-raytracer/internal/ppm"
	"github.com/elh/go-raytracer/internal/sceneio"
)

const (
	defaultSceneFile = "scenes/simple.txt"
	defaultOutFile   = "output/render.ppm"
	defaultWidth     = 1920
	defaultHeight    = 1080
	defaultSamples   = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	sceneFile := defaultSceneFile
	outFile := defaultOutFile
	width := defaultWidth
	height := defaultHeight
	samples := defaultSamples

	if len(args) > 0 {
		sceneFile = args[0]
	}
	if len(args) > 1 {
		outFile = args[1]
	}
	if len(args) > 2 {
		v, err := strconv.Atoi(args[2])
		if err != nil {
			fmt.Printf("error: invalid width %q: %v\n", args[2], err)
			return 1
		}
		width = v
	}
	if len(args) > 3 {
		v, err := strconv.Atoi(args[3])
		if err != nil {
			fmt.Printf("error: invalid height %q: %v\n", args[3], err)
			return 1
		}
		height = v
	}
	if len(args) > 4 {
		v, err := strconv.Atoi(args[4])
		if err != nil {
			fmt.Printf("error: invalid samples_per_pixel %q: %v\n", args[4], err)
			return 1
		}
		samples = v
	}

	fmt.Printf("Ray Tracer - rendering %dx%d\n", width, height)
	fmt.Printf("Scene: %s\n", sceneFile)

	f, err := os.Open(sceneFile)
	if err != nil {
		fmt.Printf("error: scene file %q not found: %v\n", sceneFile, err)
		return 1
	}
	scene, diags, err := sceneio.Load(f)
	f.Close()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return 1
	}
	for _, d := range diags {
		fmt.Printf("warning: %s\n", d)
	}
	if scene.Camera == nil {
		fmt.Println("error: no camera in scene")
		return 1
	}

	if dir := filepath.Dir(outFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Printf("error: creating output directory: %v\n", err)
			return 1
		}
	}

	fmt.Println("Rendering...")
	grid := rt.Render(scene, rt.RenderOptions{
		Width:           width,
		Height:          height,
		MaxDepth:        rt.DefaultMaxDepth,
		SamplesPerPixel: samples,
		Seed:            rt.DefaultSeed,
		Progress:        os.Stdout,
	})

	fmt.Println("Saving...")
	out, err := os.Create(outFile)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return 1
	}
	defer out.Close()
	if err := ppm.Write(out, ppm.FromRenderGrid(grid)); err != nil {
		fmt.Printf("error writing PPM: %v\n", err)
		return 1
	}

	fmt.Printf("Done! Image: %s\n", outFile)
	return 0
}
