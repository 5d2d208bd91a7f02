package noise

import (
	"strconv"

	"blue-noise/internal/core"
)

const keyStepsPerFrame = "steps_per_frame"

// Session adapts a Runner to the interactive viewer. Each Step advances the
// runner by StepsPerFrame iterations.
type Session struct {
	cfg           Config
	runner        Runner
	stepsPerFrame int
	seed          int64
}

// NewSession prepares a session and draws its first pattern from cfg.Seed.
func NewSession(cfg Config, stepsPerFrame int) (*Session, error) {
	if stepsPerFrame <= 0 {
		stepsPerFrame = 1
	}
	s := &Session{cfg: cfg, stepsPerFrame: stepsPerFrame}
	if err := s.Reset(cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the method label.
func (s *Session) Name() string { return s.cfg.Method.String() }

// Dims returns the grid extents.
func (s *Session) Dims() []int { return append([]int(nil), s.cfg.Dims...) }

// Channels returns the number of values per item.
func (s *Session) Channels() int { return s.cfg.Channels }

// Values exposes the current pattern.
func (s *Session) Values() []float32 { return s.runner.Pattern().Values() }

// Stats returns the runner progress.
func (s *Session) Stats() Stats { return s.runner.Stats() }

// Done reports whether the runner budget is spent.
func (s *Session) Done() bool { return s.runner.Done() }

// Reset restarts generation from a fresh random pattern drawn with seed.
func (s *Session) Reset(seed int64) error {
	src := core.NewRNG(seed)
	p, err := InitialPattern(s.cfg, src)
	if err != nil {
		return err
	}
	r, err := NewRunner(p, s.cfg, src)
	if err != nil {
		return err
	}
	s.runner = r
	s.seed = seed
	return nil
}

// Step advances the runner by up to StepsPerFrame iterations.
func (s *Session) Step() {
	for i := 0; i < s.stepsPerFrame && !s.runner.Done(); i++ {
		s.runner.Step()
	}
}

// Parameters reports the configuration and live statistics.
func (s *Session) Parameters() core.ParameterSnapshot {
	st := s.runner.Stats()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Config",
			Params: []core.Parameter{
				{Key: "method", Label: "Method", Type: core.ParamTypeString, Value: s.cfg.Method.String()},
				{Key: "dims", Label: "Dims", Type: core.ParamTypeString, Value: FormatDims(s.cfg.Dims)},
				intParam("channels", "Channels", s.cfg.Channels),
				intParam("radius", "Radius", s.cfg.Radius),
				int64Param("seed", "Seed", s.seed),
				intParam(keyStepsPerFrame, "Steps/frame", s.stepsPerFrame),
			},
		},
		{
			Name: "Progress",
			Params: []core.Parameter{
				{Key: "strategy", Label: "Strategy", Type: core.ParamTypeString, Value: st.Strategy.String()},
				intParam("iteration", "Iteration", st.Iteration),
				intParam("iterations", "Budget", st.Iterations),
				intParam("accepted", "Accepted", st.Accepted),
				floatParam("initial_score", "Initial score", st.InitialScore),
				floatParam("score", "Score", st.Score),
			},
		},
	}}
}

// ParameterControls exposes the adjustable steps-per-frame rate.
func (s *Session) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: keyStepsPerFrame, Label: "Steps/frame", Step: 64, Min: 1, HasMin: true, Max: 1 << 16, HasMax: true},
	}
}

// SetIntParameter updates an adjustable parameter.
func (s *Session) SetIntParameter(key string, value int) bool {
	if key != keyStepsPerFrame || value <= 0 {
		return false
	}
	s.stepsPerFrame = value
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', 4, 64)}
}
