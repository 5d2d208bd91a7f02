package noise

import (
	"fmt"

	"blue-noise/internal/core"
)

// highPassKernels holds the 3^D filter taps for one, two and three
// dimensions, indexed in the same mixed radix as Kernel.
var highPassKernels = [...][]float32{
	{-1, 2, -1},
	{
		-1, -2, -1,
		-2, 12, -2,
		-1, -2, -1,
	},
	{
		-1, -2, -1,
		-2, -4, -2,
		-1, -2, -1,

		-2, -4, -2,
		-4, 56, -4,
		-2, -4, -2,

		-1, -2, -1,
		-2, -4, -2,
		-1, -2, -1,
	},
}

// HighPass is the non-iterative alternative to the optimiser: every pass
// convolves each channel with a fixed high-pass filter over the torus and
// re-equalises the histogram. Passes are applied unconditionally.
type HighPass struct {
	cfg     Config
	grid    *core.Grid
	window  *Kernel
	taps    []float32
	pattern *Pattern
	pass    int

	coords []int
}

// NewHighPass prepares cfg.Passes filter passes over p.
func NewHighPass(p *Pattern, cfg Config) (*HighPass, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Method != MethodHighPass {
		return nil, fmt.Errorf("%w: high-pass requires method %v, got %v", ErrInvalidConfig, MethodHighPass, cfg.Method)
	}
	if err := checkShape(p, cfg); err != nil {
		return nil, err
	}
	grid := core.NewGrid(cfg.Dims)
	p.Sync()
	return &HighPass{
		cfg:     cfg,
		grid:    grid,
		window:  BuildKernel(grid.Rank(), 1),
		taps:    highPassKernels[grid.Rank()-1],
		pattern: p,
		coords:  make([]int, 0, grid.Rank()),
	}, nil
}

// Pattern returns the filtered pattern.
func (h *HighPass) Pattern() *Pattern { return h.pattern }

// Done reports whether all passes were applied.
func (h *HighPass) Done() bool { return h.pass >= h.cfg.Passes }

// Stats reports the pass counter; high-pass runs carry no score.
func (h *HighPass) Stats() Stats {
	return Stats{Strategy: StrategyHighPass, Iteration: h.pass, Iterations: h.cfg.Passes, Accepted: h.pass}
}

// Step applies one filter pass followed by histogram equalisation.
func (h *HighPass) Step() bool {
	h.pattern.Sync()
	src := h.pattern.Shadow()
	dst := h.pattern.Values()
	c := h.cfg.Channels
	for i := 0; i < h.grid.Len(); i++ {
		h.coords = h.grid.Coords(i, h.coords)
		for ch := 0; ch < c; ch++ {
			var sum float32
			for e, w := range h.taps {
				j := h.grid.Offset(h.coords, h.window.Offset(e))
				sum += src[j*c+ch] * w
			}
			dst[i*c+ch] = sum
		}
	}
	Equalize(dst, c)
	h.pattern.Sync()
	h.pass++
	return true
}
