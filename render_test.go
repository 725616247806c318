package raytracer

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/elh/go-raytracer/internal/imgdiff"
	"github.com/elh/go-raytracer/internal/ppm"
)

// An empty scene renders every pixel as the background color.
func TestEmptySceneRendersBackground(t *testing.T) {
	scene := NewScene()
	scene.Camera = NewCamera(Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: -1}, Vec3{X: 0, Y: 1, Z: 0}, 60, 16.0/9.0)
	scene.Background = RGB(0.2, 0.4, 0.6)

	grid := Render(scene, RenderOptions{Width: 4, Height: 3, SamplesPerPixel: 1})

	want := RGB(0.2, 0.4, 0.6)
	for y, row := range grid {
		for x, c := range row {
			if diff := cmp.Diff(c, want, approxOpts); diff != "" {
				t.Errorf("pixel (%d,%d) mismatch (-got +want):\n%s", x, y, diff)
			}
		}
	}

	img := ppm.FromRenderGrid(grid)
	wantBytes := [3]byte{51, 102, 153}
	for i := 0; i < len(img.Pixels); i += 3 {
		got := [3]byte{img.Pixels[i], img.Pixels[i+1], img.Pixels[i+2]}
		if got != wantBytes {
			t.Fatalf("pixel byte %d: got %v, want %v", i/3, got, wantBytes)
		}
	}
}

// A single sphere dead center, lit by a collocated light, has no
// specular contribution and clamps ambient+diffuse.
func TestSingleSphereDeadCenterAmbientPlusDiffuse(t *testing.T) {
	scene := NewScene()
	scene.Camera = NewCamera(Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: -5}, Vec3{X: 0, Y: 1, Z: 0}, 60, 16.0/9.0)

	material := NewMaterial(RGB(1, 0, 0))
	material.Ambient = 0.1
	material.Diffuse = 0.7
	material.Specular = 0
	material.Shininess = 1
	material.Reflectivity = 0
	scene.AddObject(&Sphere{Center: Vec3{X: 0, Y: 0, Z: -5}, Radius: 1, Material: material})
	scene.AddLight(NewPointLight(Vec3{X: 0, Y: 0, Z: 0}, 1))

	grid := Render(scene, RenderOptions{Width: 3, Height: 3, SamplesPerPixel: 1})

	want := RGB(0.8, 0, 0)
	if diff := cmp.Diff(grid[1][1], want, approxOpts); diff != "" {
		t.Errorf("center pixel mismatch (-got +want):\n%s", diff)
	}
}

// A ground plane lit only by ambient light returns ambient*material.
func TestGroundPlaneAmbientOnly(t *testing.T) {
	scene := NewScene()
	scene.Camera = NewCamera(Vec3{X: 0, Y: 1, Z: 0}, Vec3{X: 0, Y: -1, Z: 0}, Vec3{X: 0, Y: 1, Z: 0}, 90, 16.0/9.0)
	scene.AddObject(NewPlane(Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 1, Z: 0}, NewMaterial(RGB(0.5, 0.5, 0.5))))
	scene.AddLight(NewAmbientLight(1.0))

	grid := Render(scene, RenderOptions{Width: 8, Height: 8, SamplesPerPixel: 1})

	want := RGB(0.05, 0.05, 0.05)
	// The center pixel looks straight down the lookAt axis and must hit
	// the plane.
	got := grid[len(grid)/2][len(grid[0])/2]
	if diff := cmp.Diff(got, want, approxOpts); diff != "" {
		t.Errorf("downward-looking pixel mismatch (-got +want):\n%s", diff)
	}
}

// A sphere occluded from its only light receives only the ambient term.
func TestOccludedSphereReceivesOnlyAmbient(t *testing.T) {
	occluderMaterial := NewMaterial(RGB(0.1, 0.1, 0.1))
	litMaterial := NewMaterial(RGB(0.6, 0.3, 0.3))
	litMaterial.Specular = 0

	scene := NewScene()
	scene.Camera = NewCamera(Vec3{X: 0, Y: 0, Z: 5}, Vec3{X: 0, Y: 0, Z: -10}, Vec3{X: 0, Y: 1, Z: 0}, 40, 16.0/9.0)
	scene.AddObject(&Sphere{Center: Vec3{X: 0, Y: 0, Z: -2}, Radius: 1, Material: occluderMaterial})
	scene.AddObject(&Sphere{Center: Vec3{X: 0, Y: 0, Z: -10}, Radius: 1, Material: litMaterial})
	scene.AddLight(NewPointLight(Vec3{X: 0, Y: 0, Z: 20}, 1.0))

	point := Vec3{X: 0, Y: 0, Z: -9}
	normal := Vec3{X: 0, Y: 0, Z: 1}
	view := Vec3{X: 0, Y: 0, Z: -1}

	got := shade(scene, &point, &normal, &view, &litMaterial)
	want := litMaterial.Color.Scale(litMaterial.Ambient).Clamp(0, 1)
	if diff := cmp.Diff(got, want, approxOpts); diff != "" {
		t.Errorf("occluded lit-face color mismatch (-got +want):\n%s", diff)
	}
}

// A perfect mirror sphere, hit head-on, approximates the background color
// (local shading is black for a black, non-reflective-local material),
// with recursion bounded by the configured max depth.
func TestPerfectMirrorApproximatesBackgroundAtDepthLimit(t *testing.T) {
	mirror := NewMaterial(RGB(0, 0, 0))
	mirror.Ambient = 0
	mirror.Diffuse = 0
	mirror.Specular = 0
	mirror.Reflectivity = 1

	scene := NewScene()
	scene.Camera = NewCamera(Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: -5}, Vec3{X: 0, Y: 1, Z: 0}, 40, 1.0)
	scene.Background = RGB(0.3, 0.6, 0.9)
	scene.AddObject(&Sphere{Center: Vec3{X: 0, Y: 0, Z: -5}, Radius: 1, Material: mirror})

	grid := Render(scene, RenderOptions{Width: 3, Height: 3, SamplesPerPixel: 1, MaxDepth: 3})
	got := grid[1][1]

	diffs := imgdiff.Compare([][]Vec3{{got}}, [][]Vec3{{scene.Background}}, 0.999)
	if len(diffs) != 0 {
		t.Errorf("expected near-background reflection, got %v", diffs)
	}
}

// Anti-aliasing across an edge between two primitives produces at least
// one pixel whose color is neither pure color.
func TestAntiAliasingBlendsEdgePixels(t *testing.T) {
	left := NewMaterial(RGB(1, 0, 0))
	left.Ambient = 1
	left.Diffuse = 0
	left.Specular = 0
	right := NewMaterial(RGB(0, 0, 1))
	right.Ambient = 1
	right.Diffuse = 0
	right.Specular = 0

	scene := NewScene()
	scene.Camera = NewCamera(Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: -1}, Vec3{X: 0, Y: 1, Z: 0}, 90, 1.0)
	scene.AddObject(NewPlane(Vec3{X: -0.001, Y: 0, Z: -2}, Vec3{X: 1, Y: 0, Z: -0.001}, left))
	scene.AddObject(NewPlane(Vec3{X: 0.001, Y: 0, Z: -2}, Vec3{X: -1, Y: 0, Z: -0.001}, right))
	scene.AddLight(NewAmbientLight(1))

	grid := Render(scene, RenderOptions{Width: 16, Height: 16, SamplesPerPixel: 64, Seed: 7})

	midRow := grid[len(grid)/2]
	pureRed := RGB(1, 0, 0)
	pureBlue := RGB(0, 0, 1)
	foundBlend := false
	for _, c := range midRow {
		if !approxEqual(c, pureRed) && !approxEqual(c, pureBlue) {
			foundBlend = true
			break
		}
	}
	if !foundBlend {
		t.Errorf("expected at least one blended edge pixel in %v", midRow)
	}
}

func approxEqual(a, b Vec3) bool {
	const eps = 1e-6
	return absF(a.X-b.X) < eps && absF(a.Y-b.Y) < eps && absF(a.Z-b.Z) < eps
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// With S samples, a pixel's color is the arithmetic mean of its S
// jittered per-sample traces, using the same per-pixel RNG seed
// derivation renderPixel uses internally.
func TestPixelIsArithmeticMeanOfSamples(t *testing.T) {
	scene := NewScene()
	scene.Camera = NewCamera(Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: -5}, Vec3{X: 0, Y: 1, Z: 0}, 60, 1.0)
	scene.Background = RGB(0.1, 0.2, 0.3)
	material := NewMaterial(RGB(0.9, 0.1, 0.1))
	scene.AddObject(&Sphere{Center: Vec3{X: 0.2, Y: 0, Z: -5}, Radius: 1, Material: material})
	scene.AddLight(NewPointLight(Vec3{X: 5, Y: 5, Z: 0}, 1))

	const samples = 8
	width, height := 3, 3
	opts := RenderOptions{Width: width, Height: height, SamplesPerPixel: samples, Seed: 42}
	grid := Render(scene, opts)

	i, j := 1, 1
	rng := rand.New(rand.NewSource(pixelSeed(opts.Seed, i, j)))
	sum := Vec3{}
	for s := 0; s < samples; s++ {
		du := rng.Float64()
		dv := rng.Float64()
		u := (float64(i) + du) / float64(width-1)
		v := 1.0 - (float64(j)+dv)/float64(height-1)
		ray := scene.Camera.GetRay(u, v)
		sum.AddI(trace(scene, ray, 0, opts.normalized().MaxDepth))
	}
	want := *sum.Scale(1.0 / float64(samples))

	if diff := cmp.Diff(grid[j][i], want, approxOpts); diff != "" {
		t.Errorf("pixel mean mismatch (-got +want):\n%s", diff)
	}
}
