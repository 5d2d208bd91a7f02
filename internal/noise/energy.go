package noise

import (
	"fmt"
	"math"

	"blue-noise/internal/core"
)

// distanceVariance is the spatial falloff of the pair energy, exp(-d²/2.1²).
const distanceVariance = 2.1

var invDistanceVarianceSq = float32(1) / (float32(distanceVariance) * float32(distanceVariance))

// Scorer evaluates the neighbourhood energy of grid elements. It keeps
// scratch buffers and is not safe for concurrent use.
type Scorer struct {
	grid     *core.Grid
	kernel   *Kernel
	channels int

	coords    []int
	neighbors []int
}

// NewScorer returns a scorer for values laid out on grid with the given
// channel count, using kernel as the neighbourhood window.
func NewScorer(grid *core.Grid, kernel *Kernel, channels int) *Scorer {
	return &Scorer{
		grid:      grid,
		kernel:    kernel,
		channels:  channels,
		coords:    make([]int, 0, grid.Rank()),
		neighbors: make([]int, kernel.Len()),
	}
}

// Neighbors returns the wrapped linear index of every kernel entry around
// element s, in kernel order. The slice is reused by the next call.
func (sc *Scorer) Neighbors(s int) []int {
	sc.coords = sc.grid.Coords(s, sc.coords)
	for e := range sc.neighbors {
		sc.neighbors[e] = sc.grid.Offset(sc.coords, sc.kernel.Offset(e))
	}
	return sc.neighbors
}

// ElementScore sums the pair energy between element s and every other
// element in its window.
func (sc *Scorer) ElementScore(values []float32, s int) float32 {
	var score float32
	for e, j := range sc.Neighbors(s) {
		if j == s {
			continue
		}
		score += sc.pairEnergy(values, s, j, sc.kernel.Weight(e))
	}
	if checksEnabled && !(score >= 0) {
		panic(fmt.Sprintf("noise: element %d scored %v", s, score))
	}
	return score
}

// TotalScore sums ElementScore over the whole grid. Each unordered pair is
// counted from both sides; only differences of totals are meaningful.
func (sc *Scorer) TotalScore(values []float32) float64 {
	var total float64
	for i := 0; i < sc.grid.Len(); i++ {
		total += float64(sc.ElementScore(values, i))
	}
	return total
}

// pairEnergy is exp(-|a-b|^C - d²/σ²), where |a-b| is the Euclidean distance
// between the channel vectors and d² the precomputed kernel weight.
func (sc *Scorer) pairEnergy(values []float32, a, b int, distSq float32) float32 {
	c := sc.channels
	va := values[a*c : a*c+c]
	vb := values[b*c : b*c+c]
	var sq float32
	for i := range va {
		diff := va[i] - vb[i]
		sq += diff * diff
	}
	var valueTerm float32
	switch c {
	case 1:
		valueTerm = float32(math.Sqrt(float64(sq)))
	case 2:
		valueTerm = sq
	default:
		valueTerm = float32(math.Pow(float64(sq), float64(c)/2))
	}
	return float32(math.Exp(float64(-valueTerm - distSq*invDistanceVarianceSq)))
}
