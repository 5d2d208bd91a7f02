package noise

import (
	"fmt"
	"math"

	"blue-noise/internal/core"
)

// maxSwaps bounds the number of item swaps proposed per iteration. Moving up
// to three pairs at once lets the search step over shallow local minima.
const maxSwaps = 3

// Source is the random capability the generators consume. *rand.Rand from
// math/rand/v2 and core.RNG both satisfy it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// Strategy identifies how an optimiser iteration rescored the grid.
type Strategy uint8

const (
	// StrategyIncremental rescores only the neighbourhood of swapped items.
	StrategyIncremental Strategy = iota
	// StrategyGlobal rescores every element after each proposal.
	StrategyGlobal
	// StrategyHighPass applies filter passes and has no score.
	StrategyHighPass
)

// String returns a short label for logs.
func (s Strategy) String() string {
	switch s {
	case StrategyIncremental:
		return "incremental"
	case StrategyGlobal:
		return "global"
	case StrategyHighPass:
		return "high-pass"
	default:
		return "unknown"
	}
}

// Stats summarises the progress of a run.
type Stats struct {
	Strategy     Strategy
	Iteration    int
	Iterations   int
	Accepted     int
	InitialScore float64
	Score        float64
}

// Optimizer is the hill-climbing energy minimiser. It proposes random item
// swaps and keeps only those that lower the total score.
type Optimizer struct {
	cfg      Config
	grid     *core.Grid
	kernel   *Kernel
	scorer   *Scorer
	pattern  *Pattern
	src      Source
	touched  *touchedSet
	strategy Strategy

	swaps  [2 * maxSwaps]int
	nswaps int

	score    float64
	initial  float64
	iter     int
	accepted int
}

// NewOptimizer prepares an optimiser over p. The pattern is scored once in
// full; the working and shadow slots are synchronised.
func NewOptimizer(p *Pattern, cfg Config, src Source) (*Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Method != MethodSolidAngle {
		return nil, fmt.Errorf("%w: optimizer requires method %v, got %v", ErrInvalidConfig, MethodSolidAngle, cfg.Method)
	}
	if err := checkShape(p, cfg); err != nil {
		return nil, err
	}
	if src == nil {
		src = core.NewRNG(cfg.Seed)
	}
	grid := core.NewGrid(cfg.Dims)
	kernel := BuildKernel(grid.Rank(), cfg.Radius)
	o := &Optimizer{
		cfg:      cfg,
		grid:     grid,
		kernel:   kernel,
		scorer:   NewScorer(grid, kernel, cfg.Channels),
		pattern:  p,
		src:      src,
		strategy: StrategyGlobal,
	}
	if cfg.Incremental() {
		o.strategy = StrategyIncremental
		o.touched = newTouchedSet(grid.Len())
	}
	p.Sync()
	o.score = o.scorer.TotalScore(p.Values())
	o.initial = o.score
	return o, nil
}

func checkShape(p *Pattern, cfg Config) error {
	if p == nil {
		return fmt.Errorf("%w: nil pattern", ErrPatternShape)
	}
	if p.Channels() != cfg.Channels || p.Len() != cfg.ElementCount() {
		return fmt.Errorf("%w: pattern has %d items x %d channels, config wants %d x %d",
			ErrPatternShape, p.Len(), p.Channels(), cfg.ElementCount(), cfg.Channels)
	}
	return nil
}

// Pattern returns the pattern being optimised.
func (o *Optimizer) Pattern() *Pattern { return o.pattern }

// Score returns the running best score.
func (o *Optimizer) Score() float64 { return o.score }

// Done reports whether the iteration budget is spent.
func (o *Optimizer) Done() bool { return o.iter >= o.cfg.Iterations }

// Stats returns the current progress counters.
func (o *Optimizer) Stats() Stats {
	return Stats{
		Strategy:     o.strategy,
		Iteration:    o.iter,
		Iterations:   o.cfg.Iterations,
		Accepted:     o.accepted,
		InitialScore: o.initial,
		Score:        o.score,
	}
}

// Rescore recomputes the total score of the working slot from scratch.
func (o *Optimizer) Rescore() float64 { return o.scorer.TotalScore(o.pattern.Values()) }

// Step runs one iteration and reports whether the proposal was accepted.
func (o *Optimizer) Step() bool {
	var accepted bool
	if o.strategy == StrategyIncremental {
		accepted = o.stepIncremental()
	} else {
		accepted = o.stepGlobal()
	}
	o.iter++
	if accepted {
		o.accepted++
	}
	if checksEnabled && !validScore(o.score) {
		panic(fmt.Sprintf("noise: running score %v after iteration %d", o.score, o.iter))
	}
	return accepted
}

// propose draws between one and maxSwaps distinct-endpoint index pairs.
func (o *Optimizer) propose() {
	n := o.grid.Len()
	o.nswaps = 1 + o.src.IntN(maxSwaps)
	for i := 0; i < o.nswaps; i++ {
		from := o.src.IntN(n)
		to := o.src.IntN(n)
		for from == to {
			to = o.src.IntN(n)
		}
		o.swaps[2*i] = from
		o.swaps[2*i+1] = to
	}
}

func (o *Optimizer) stepIncremental() bool {
	o.propose()
	swapped := o.swaps[:2*o.nswaps]

	for _, idx := range swapped {
		for _, j := range o.scorer.Neighbors(idx) {
			o.touched.add(j)
		}
	}

	shadow := o.pattern.Shadow()
	var remove float64
	for _, i := range o.touched.list {
		remove += float64(o.scorer.ElementScore(shadow, i))
	}

	for i := 0; i < o.nswaps; i++ {
		o.pattern.Swap(swapped[2*i], swapped[2*i+1])
	}

	working := o.pattern.Values()
	var add float64
	for _, i := range o.touched.list {
		add += float64(o.scorer.ElementScore(working, i))
	}
	o.touched.reset()

	delta := add - remove
	if delta < 0 {
		o.score += delta
		for _, idx := range swapped {
			o.pattern.Commit(idx)
		}
		return true
	}
	for _, idx := range swapped {
		o.pattern.Rollback(idx)
	}
	return false
}

// stepGlobal keeps the pre-swap state in the shadow slot and, on rejection,
// makes it current again by flipping slot roles instead of copying back.
func (o *Optimizer) stepGlobal() bool {
	o.pattern.Sync()
	o.propose()
	for i := 0; i < o.nswaps; i++ {
		o.pattern.Swap(o.swaps[2*i], o.swaps[2*i+1])
	}
	score := o.scorer.TotalScore(o.pattern.Values())
	if score < o.score {
		o.score = score
		return true
	}
	o.pattern.Flip()
	return false
}

func validScore(s float64) bool {
	return s >= 0 && !math.IsInf(s, 0)
}
