// Package imgdiff compares two rendered color grids approximately. Scenes
// under test are small and fully deterministic, so a per-pixel
// cosine-similarity check is enough to catch regressions while tolerating
// the floating-point reassociation that concurrent sample accumulation
// can introduce.
package imgdiff

import (
	"fmt"
	"math"

	rt "github.com/elh/go-raytracer"
)

// Diff is one pixel whose cosine similarity to the expected color fell
// below the caller's threshold.
type Diff struct {
	X, Y       int
	Got, Want  rt.Vec3
	Similarity float64
}

func (d Diff) String() string {
	return fmt.Sprintf("pixel (%d, %d): got %v, want %v (similarity = %v)", d.X, d.Y, d.Got, d.Want, d.Similarity)
}

// Compare reports every pixel in got whose cosine similarity to the
// matching pixel in want is below minSimilarity (1.0 = identical
// direction). Pixels where both colors are near-black are treated as
// equal, since cosine similarity is undefined for the zero vector; a
// pixel where only one of the two colors is black has similarity 0.
func Compare(got, want [][]rt.Vec3, minSimilarity float64) []Diff {
	var diffs []Diff
	for y := range want {
		for x := range want[y] {
			g, w := got[y][x], want[y][x]
			if nearBlack(&g) && nearBlack(&w) {
				continue
			}
			sim := cosineSimilarity(&g, &w)
			if sim < minSimilarity {
				diffs = append(diffs, Diff{X: x, Y: y, Got: g, Want: w, Similarity: sim})
			}
		}
	}
	return diffs
}

func nearBlack(v *rt.Vec3) bool {
	const eps = 1e-6
	return math.Abs(v.X) < eps && math.Abs(v.Y) < eps && math.Abs(v.Z) < eps
}

func cosineSimilarity(a, b *rt.Vec3) float64 {
	denom := a.Length() * b.Length()
	if denom == 0 {
		return 0
	}
	return a.Dot(b) / denom
}
