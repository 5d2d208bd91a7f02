// Package spectrum measures how "blue" a pattern is by looking at the power
// spectrum of its channels.
package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"

	"blue-noise/internal/core"
	"blue-noise/internal/export"

	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Power returns |F(k)|²/n for one channel of f after removing its mean. Bins
// follow the frame layout, so bin 0 is the DC term.
func Power(f export.Frame, channel int) ([]float64, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if channel < 0 || channel >= f.Channels {
		return nil, fmt.Errorf("%w: channel %d of %d", export.ErrUnsupported, channel, f.Channels)
	}
	n := f.Len()
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = float64(f.Values[i*f.Channels+channel])
	}
	mean := stat.Mean(samples, nil)

	// dsputils matrices are row-major with the first dimension slowest,
	// the reverse of the frame layout.
	rev := make([]int, len(f.Dims))
	for d, extent := range f.Dims {
		rev[len(f.Dims)-1-d] = extent
	}
	buf := make([]complex128, n)
	for i, s := range samples {
		buf[i] = complex(s-mean, 0)
	}
	freq := fft.FFTN(dsputils.MakeMatrix(buf, rev))

	grid := core.NewGrid(f.Dims)
	coords := make([]int, 0, len(f.Dims))
	idx := make([]int, len(f.Dims))
	power := make([]float64, n)
	for i := range power {
		coords = grid.Coords(i, coords)
		for d, c := range coords {
			idx[len(coords)-1-d] = c
		}
		a := cmplx.Abs(freq.Value(idx))
		power[i] = a * a / float64(n)
	}
	return power, nil
}

// radius returns the frequency magnitude of bin i normalised so that the
// Nyquist frequency along any single axis is 1.
func radius(grid *core.Grid, i int) float64 {
	var sq float64
	for d := 0; d < grid.Rank(); d++ {
		n := grid.Extent(d)
		k := grid.Coord(i, d)
		if k > n/2 {
			k -= n
		}
		r := float64(k) / (float64(n) / 2)
		sq += r * r
	}
	return math.Sqrt(sq)
}

// Radial averages power over shells of equal normalised frequency. The
// profile has bins entries covering radii [0, 1]; energy beyond the axis
// Nyquist (diagonal corners) lands in the last bin.
func Radial(power []float64, dims []int, bins int) []float64 {
	if bins <= 0 {
		bins = 1
	}
	grid := core.NewGrid(dims)
	sums := make([]float64, bins)
	counts := make([]float64, bins)
	for i := 0; i < grid.Len() && i < len(power); i++ {
		b := int(radius(grid, i) * float64(bins-1))
		if b >= bins {
			b = bins - 1
		}
		sums[b] += power[i]
		counts[b]++
	}
	for b := range sums {
		if counts[b] > 0 {
			sums[b] /= counts[b]
		}
	}
	return sums
}

// LowBandRatio returns the share of total power at normalised frequencies
// below cutoff. Blue noise keeps this far below white noise.
func LowBandRatio(power []float64, dims []int, cutoff float64) float64 {
	grid := core.NewGrid(dims)
	low := make([]float64, 0, len(power))
	for i := 0; i < grid.Len() && i < len(power); i++ {
		if radius(grid, i) < cutoff {
			low = append(low, power[i])
		}
	}
	total := floats.Sum(power)
	if total == 0 {
		return 0
	}
	return floats.Sum(low) / total
}
