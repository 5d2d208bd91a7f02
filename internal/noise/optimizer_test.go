package noise

import (
	"slices"
	"testing"

	"blue-noise/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig(dims []int, radius, iterations int) Config {
	cfg := DefaultConfig()
	cfg.Dims = dims
	cfg.Radius = radius
	cfg.Iterations = iterations
	cfg.Seed = 11
	return cfg
}

// sortedItems returns the channel vectors of values in lexicographic order.
func sortedItems(values []float32, channels int) [][]float32 {
	items := make([][]float32, 0, len(values)/channels)
	for i := 0; i < len(values); i += channels {
		items = append(items, append([]float32(nil), values[i:i+channels]...))
	}
	slices.SortFunc(items, func(a, b []float32) int { return slices.Compare(a, b) })
	return items
}

func TestOptimizerStrategySelection(t *testing.T) {
	cfg := smallConfig([]int{8, 8}, 1, 10)
	p, err := InitialPattern(cfg, nil)
	require.NoError(t, err)
	o, err := NewOptimizer(p, cfg, core.NewRNG(1))
	require.NoError(t, err)
	assert.Equal(t, StrategyGlobal, o.Stats().Strategy)

	cfg.IncrementalThreshold = 64
	o, err = NewOptimizer(p, cfg, core.NewRNG(1))
	require.NoError(t, err)
	assert.Equal(t, StrategyIncremental, o.Stats().Strategy)
}

func TestOptimizerRejectsBadInput(t *testing.T) {
	cfg := smallConfig([]int{4, 4}, 4, 10)
	_, err := NewOptimizer(NewPattern(16, 1), cfg, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg.Radius = 1
	_, err = NewOptimizer(NewPattern(15, 1), cfg, nil)
	assert.ErrorIs(t, err, ErrPatternShape)
	_, err = NewOptimizer(nil, cfg, nil)
	assert.ErrorIs(t, err, ErrPatternShape)

	cfg.Method = MethodHighPass
	_, err = NewOptimizer(NewPattern(16, 1), cfg, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestIncrementalMatchesFullRescore(t *testing.T) {
	cfg := smallConfig([]int{4, 4}, 1, 2000)
	cfg.IncrementalThreshold = 0
	src := core.NewRNG(3)
	p, err := InitialPattern(cfg, src)
	require.NoError(t, err)
	o, err := NewOptimizer(p, cfg, src)
	require.NoError(t, err)
	require.Equal(t, StrategyIncremental, o.Stats().Strategy)

	accepted := 0
	for !o.Done() {
		if o.Step() {
			accepted++
			require.InEpsilon(t, o.Rescore(), o.Score(), 1e-4, "iteration %d", o.Stats().Iteration)
		}
		require.Equal(t, p.Values(), p.Shadow(), "slots diverged after iteration %d", o.Stats().Iteration)
	}
	require.Greater(t, accepted, 0, "expected at least one improving swap")
	assert.Equal(t, accepted, o.Stats().Accepted)
}

func TestGlobalScoreTracksPattern(t *testing.T) {
	cfg := smallConfig([]int{5, 4}, 1, 300)
	src := core.NewRNG(8)
	p, err := InitialPattern(cfg, src)
	require.NoError(t, err)
	o, err := NewOptimizer(p, cfg, src)
	require.NoError(t, err)
	require.Equal(t, StrategyGlobal, o.Stats().Strategy)

	for !o.Done() {
		o.Step()
		require.Equal(t, o.Rescore(), o.Score(), "iteration %d", o.Stats().Iteration)
	}
}

func TestOptimizerPreservesValueMultiset(t *testing.T) {
	for _, tc := range []struct {
		name      string
		threshold int
		channels  int
	}{
		{"incremental", 0, 1},
		{"incremental-3ch", 0, 3},
		{"global", 1 << 30, 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := smallConfig([]int{6, 6}, 2, 500)
			cfg.Channels = tc.channels
			cfg.IncrementalThreshold = tc.threshold
			src := core.NewRNG(21)
			p, err := InitialPattern(cfg, src)
			require.NoError(t, err)
			before := sortedItems(p.Values(), tc.channels)

			final, _, err := Optimize(p.Values(), cfg, src, nil)
			require.NoError(t, err)
			assert.Equal(t, before, sortedItems(final, tc.channels))
		})
	}
}

func TestOptimizerScoreMonotonic(t *testing.T) {
	for _, threshold := range []int{0, 1 << 30} {
		cfg := smallConfig([]int{8, 8}, 2, 800)
		cfg.IncrementalThreshold = threshold
		last := -1.0
		_, st, err := Generate(cfg, core.NewRNG(5), func(s Stats) {
			if last >= 0 {
				require.LessOrEqual(t, s.Score, last, "score rose at iteration %d", s.Iteration)
			}
			last = s.Score
		})
		require.NoError(t, err)
		assert.Less(t, st.Score, st.InitialScore)
		assert.Equal(t, 800, st.Iteration)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := smallConfig([]int{20, 20}, 2, 500)
	a, sa, err := Generate(cfg, core.NewRNG(99), nil)
	require.NoError(t, err)
	b, sb, err := Generate(cfg, core.NewRNG(99), nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, sa, sb)

	c, _, err := Generate(cfg, core.NewRNG(100), nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerateEndToEnd8x8(t *testing.T) {
	cfg := smallConfig([]int{8, 8}, 1, 1000)
	cfg.Seed = 1234

	final, st, err := Generate(cfg, nil, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, st.Score, st.InitialScore)
	assert.Equal(t, 1000, st.Iteration)

	got := append([]float32(nil), final...)
	slices.Sort(got)
	assert.Equal(t, ladder(64), got)

	grid := core.NewGrid(cfg.Dims)
	sc := NewScorer(grid, BuildKernel(2, 1), 1)
	assert.InEpsilon(t, sc.TotalScore(final), st.Score, 1e-4)
}

func TestOptimizeZeroIterations(t *testing.T) {
	cfg := smallConfig([]int{4, 4}, 1, 0)
	p, err := InitialPattern(cfg, nil)
	require.NoError(t, err)
	final, st, err := Optimize(p.Values(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, p.Values(), final)
	assert.Equal(t, st.InitialScore, st.Score)
	assert.Equal(t, 0, st.Accepted)
}

func TestOptimizeShapeMismatch(t *testing.T) {
	cfg := smallConfig([]int{4, 4}, 1, 10)
	_, _, err := Optimize(make([]float32, 10), cfg, nil, nil)
	assert.ErrorIs(t, err, ErrPatternShape)
}

func TestOptimizeDoesNotMutateInput(t *testing.T) {
	cfg := smallConfig([]int{6, 6}, 1, 200)
	p, err := InitialPattern(cfg, nil)
	require.NoError(t, err)
	initial := p.Snapshot()
	_, _, err = Optimize(initial, cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, p.Values(), initial)
}

func TestPatternCommitRollback(t *testing.T) {
	p, err := PatternFrom([]float32{1, 2, 3, 4, 5, 6}, 2)
	require.NoError(t, err)
	p.Swap(0, 2)
	assert.Equal(t, []float32{5, 6, 3, 4, 1, 2}, p.Values())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, p.Shadow())

	p.Commit(0)
	p.Rollback(2)
	assert.Equal(t, []float32{5, 6, 3, 4, 5, 6}, p.Values())
	assert.Equal(t, []float32{5, 6, 3, 4, 5, 6}, p.Shadow())

	p.Swap(1, 2)
	p.Flip()
	assert.Equal(t, []float32{5, 6, 3, 4, 5, 6}, p.Values())

	_, err = PatternFrom([]float32{1, 2, 3}, 2)
	assert.ErrorIs(t, err, ErrPatternShape)
}

func TestTouchedSetDeduplicates(t *testing.T) {
	ts := newTouchedSet(8)
	for _, i := range []int{3, 1, 3, 7, 1} {
		ts.add(i)
	}
	assert.Equal(t, []int{3, 1, 7}, ts.list)
	ts.reset()
	assert.Empty(t, ts.list)
	assert.NotContains(t, ts.marked, true)
	ts.add(3)
	assert.Equal(t, []int{3}, ts.list)
}
