// Command animate generates a rotating-sphere scene for each frame of a
// short animation and renders every frame to PPM.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	rt "github.com/elh/go-raytracer"
	"github.com/elh/go-raytracer/internal/anim"
	"github.com/elh/go-raytracer/internal/ppm"
	"github.com/elh/go-raytracer/internal/sceneio"
)

func main() {
	frames := flag.Int("frames", 30, "number of animation frames")
	sceneDir := flag.String("scene-dir", "scenes/animation", "directory to write per-frame scene files")
	outDir := flag.String("out-dir", "output/animation", "directory to write per-frame PPM renders")
	width := flag.Int("width", 640, "render width")
	height := flag.Int("height", 360, "render height")
	samples := flag.Int("samples", 4, "samples per pixel")
	flag.Parse()

	if err := os.MkdirAll(*sceneDir, 0o755); err != nil {
		log.Fatalf("creating %s: %v", *sceneDir, err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("creating %s: %v", *outDir, err)
	}

	scene := defaultAnimationScene()

	fmt.Printf("Generating %d frames...\n", *frames)
	for frame := 0; frame < *frames; frame++ {
		text := scene.RenderFrameScene(frame, *frames)
		scenePath := filepath.Join(*sceneDir, anim.FrameFilename(frame))
		if err := os.WriteFile(scenePath, []byte(text), 0o644); err != nil {
			log.Fatalf("writing %s: %v", scenePath, err)
		}

		loaded, diags, err := sceneio.Load(strings.NewReader(text))
		if err != nil {
			log.Fatalf("loading generated scene %s: %v", scenePath, err)
		}
		for _, d := range diags {
			fmt.Printf("  warning (frame %d): %s\n", frame, d)
		}

		fmt.Printf("  frame %d/%d...", frame+1, *frames)
		grid := rt.Render(loaded, rt.RenderOptions{
			Width:           *width,
			Height:          *height,
			SamplesPerPixel: *samples,
			Seed:            rt.DefaultSeed,
		})

		outPath := filepath.Join(*outDir, strings.TrimSuffix(anim.FrameFilename(frame), ".txt")+".ppm")
		out, err := os.Create(outPath)
		if err != nil {
			log.Fatalf("creating %s: %v", outPath, err)
		}
		err = ppm.Write(out, ppm.FromRenderGrid(grid))
		out.Close()
		if err != nil {
			log.Fatalf("writing %s: %v", outPath, err)
		}
		fmt.Println(" ok")
	}

	fmt.Printf("Done. Frames in %s\n", *outDir)
}

// defaultAnimationScene is a three-sphere rig: a fixed green center
// sphere and a red/blue sphere orbiting it, over a ground plane.
func defaultAnimationScene() anim.Scene {
	centerX, centerY, centerZ := 0.0, 0.7, -0.5
	return anim.Scene{
		CameraPos:      [3]float64{0, 2, 8},
		CameraLookAt:   [3]float64{0, 0, 0},
		FovDegrees:     50,
		Lights:         []anim.Light{{X: 5, Y: 10, Z: 5, Intensity: 1.0}, {X: -3, Y: 5, Z: 3, Intensity: 0.5}},
		Background:     [3]float64{0.2, 0.2, 0.3},
		HasGroundPlane: true,
		GroundColor:    [3]float64{0.5, 0.5, 0.5},
		CenterX:        centerX,
		CenterZ:        centerZ,
		Spheres: []anim.RotatingSphere{
			{Name: "red (orbits)", X: -2, Y: 1, Z: 0, Radius: 1.0, R: 0.8, G: 0.2, B: 0.2, Ambient: 0.1, Diffuse: 0.7, Specular: 0.3, Shininess: 50, Reflectivity: 0.2},
			{Name: "green (center, fixed)", X: centerX, Y: centerY, Z: centerZ, Radius: 0.7, R: 0.2, G: 0.8, B: 0.2, Ambient: 0.1, Diffuse: 0.7, Specular: 0.4, Shininess: 60, Reflectivity: 0.1},
			{Name: "blue (orbits)", X: 2.5, Y: 1.2, Z: -1, Radius: 1.2, R: 0.2, G: 0.3, B: 0.9, Ambient: 0.1, Diffuse: 0.6, Specular: 0.5, Shininess: 80, Reflectivity: 0.3},
		},
	}
}
