package raytracer

import (
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"sync"
)

// Render defaults.
const (
	DefaultMaxDepth         = 3
	DefaultSamplesPerPixel  = 4
	DefaultSeed             = 1
	progressReportInterval  = 50
)

// RenderOptions configures the sampling driver. Zero values for MaxDepth
// and SamplesPerPixel fall back to the package defaults; Width and Height
// have no default and must be set by the caller.
type RenderOptions struct {
	Width, Height    int
	MaxDepth         int
	SamplesPerPixel  int
	Seed             int64
	Workers          int       // 0 means runtime.NumCPU()
	Progress         io.Writer // nil disables progress reporting
}

func (o RenderOptions) normalized() RenderOptions {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.SamplesPerPixel <= 0 {
		o.SamplesPerPixel = DefaultSamplesPerPixel
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

// Render produces an H-rows-by-W-columns grid of colors, row 0 at the top
// of the image, by casting (optionally jittered, multi-sample) primary
// rays through every pixel and tracing each one against scene.
//
// Rows are rendered by a small worker pool: the scene is read-only and
// each row's output slot is disjoint, so no synchronization beyond the
// task queue is required. Each pixel draws its jitter from a
// seed derived from (seed, row, col), so the produced image is identical
// regardless of which worker rendered which row.
func Render(scene *Scene, opts RenderOptions) [][]Vec3 {
	opts = opts.normalized()
	image := make([][]Vec3, opts.Height)
	for j := range image {
		image[j] = make([]Vec3, opts.Width)
	}

	rowTasks := make(chan int, opts.Height)
	for j := 0; j < opts.Height; j++ {
		rowTasks <- j
	}
	close(rowTasks)

	var completed int
	var mu sync.Mutex
	reportDone := func() {
		if opts.Progress == nil {
			return
		}
		mu.Lock()
		completed++
		n := completed
		mu.Unlock()
		if n%progressReportInterval == 0 || n == opts.Height {
			pct := float64(n) / float64(opts.Height) * 100
			fmt.Fprintf(opts.Progress, "%.1f%% (%d/%d)\n", pct, n, opts.Height)
		}
	}

	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range rowTasks {
				renderRow(scene, opts, j, image[j])
				reportDone()
			}
		}()
	}
	wg.Wait()

	return image
}

func renderRow(scene *Scene, opts RenderOptions, j int, row []Vec3) {
	for i := 0; i < opts.Width; i++ {
		row[i] = renderPixel(scene, opts, i, j)
	}
}

func renderPixel(scene *Scene, opts RenderOptions, i, j int) Vec3 {
	if opts.SamplesPerPixel <= 1 {
		u := float64(i) / float64(opts.Width-1)
		v := 1.0 - float64(j)/float64(opts.Height-1)
		ray := scene.Camera.GetRay(u, v)
		return *trace(scene, ray, 0, opts.MaxDepth)
	}

	rng := rand.New(rand.NewSource(pixelSeed(opts.Seed, i, j)))
	sum := Vec3{}
	for s := 0; s < opts.SamplesPerPixel; s++ {
		du := rng.Float64()
		dv := rng.Float64()
		u := (float64(i) + du) / float64(opts.Width-1)
		v := 1.0 - (float64(j)+dv)/float64(opts.Height-1)
		ray := scene.Camera.GetRay(u, v)
		sum.AddI(trace(scene, ray, 0, opts.MaxDepth))
	}
	return *sum.Scale(1.0 / float64(opts.SamplesPerPixel))
}

// pixelSeed derives a per-pixel RNG seed from the render seed and pixel
// coordinates so that sample jitter (and therefore the final image) is
// identical regardless of worker scheduling order.
func pixelSeed(seed int64, i, j int) int64 {
	const prime = 1000003
	return seed + int64(j)*prime + int64(i)
}
