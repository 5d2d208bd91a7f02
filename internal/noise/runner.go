package noise

import (
	"fmt"

	"blue-noise/internal/core"
)

// Runner advances a pattern towards blue noise one step at a time.
type Runner interface {
	Step() bool
	Done() bool
	Stats() Stats
	Pattern() *Pattern
}

// Observer receives progress after every step of Run.
type Observer func(Stats)

// NewRunner picks the generator for cfg.Method.
func NewRunner(p *Pattern, cfg Config, src Source) (Runner, error) {
	switch cfg.Method {
	case MethodSolidAngle:
		return NewOptimizer(p, cfg, src)
	case MethodHighPass:
		return NewHighPass(p, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown method %v", ErrInvalidConfig, cfg.Method)
	}
}

// Run steps r until its budget is spent and validates the final score.
func Run(r Runner, obs Observer) (Stats, error) {
	for !r.Done() {
		r.Step()
		if obs != nil {
			obs(r.Stats())
		}
	}
	st := r.Stats()
	if !validScore(st.Score) {
		return st, fmt.Errorf("%w: final score %v", ErrScoreDegenerate, st.Score)
	}
	return st, nil
}

// InitialPattern fills a pattern for cfg with uniform random values and
// equalises every channel.
func InitialPattern(cfg Config, src Source) (*Pattern, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = core.NewRNG(cfg.Seed)
	}
	p := NewPattern(cfg.ElementCount(), cfg.Channels)
	values := p.Values()
	core.FillUniform(src, values)
	Equalize(values, cfg.Channels)
	p.Sync()
	return p, nil
}

// Optimize runs cfg's method over a copy of initial and returns the final
// flat value array. A nil src is replaced by an RNG seeded from cfg.Seed.
func Optimize(initial []float32, cfg Config, src Source, obs Observer) ([]float32, Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Stats{}, err
	}
	if len(initial) != cfg.ElementCount()*cfg.Channels {
		return nil, Stats{}, fmt.Errorf("%w: %d values, config wants %d", ErrPatternShape, len(initial), cfg.ElementCount()*cfg.Channels)
	}
	p, err := PatternFrom(initial, cfg.Channels)
	if err != nil {
		return nil, Stats{}, err
	}
	r, err := NewRunner(p, cfg, src)
	if err != nil {
		return nil, Stats{}, err
	}
	st, err := Run(r, obs)
	if err != nil {
		return nil, st, err
	}
	return p.Snapshot(), st, nil
}

// Generate draws the initial pattern from src and runs cfg's method on it,
// sharing the same random stream for both phases.
func Generate(cfg Config, src Source, obs Observer) ([]float32, Stats, error) {
	if src == nil {
		src = core.NewRNG(cfg.Seed)
	}
	p, err := InitialPattern(cfg, src)
	if err != nil {
		return nil, Stats{}, err
	}
	return Optimize(p.Values(), cfg, src, obs)
}
