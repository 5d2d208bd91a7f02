package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressCadence(t *testing.T) {
	p := NewProgress(1000)
	assert.False(t, p.Due(0))
	assert.True(t, p.Due(10))
	assert.False(t, p.Due(15))

	small := NewProgress(5)
	assert.True(t, small.Due(1))
	assert.True(t, small.Due(4))
}

func TestProgressETA(t *testing.T) {
	clock := time.Unix(0, 0)
	p := newProgress(100, func() time.Time { return clock })
	clock = clock.Add(10 * time.Second)

	assert.Equal(t, 10*time.Second, p.Elapsed())
	assert.InDelta(t, 0.25, p.Fraction(25), 1e-12)
	assert.Equal(t, 30*time.Second, p.ETA(25))
	assert.Equal(t, time.Duration(0), p.ETA(0))
}

func TestSliceSize(t *testing.T) {
	assert.Equal(t, Size{W: 8, H: 1}, SliceSize([]int{8}))
	assert.Equal(t, Size{W: 8, H: 4}, SliceSize([]int{8, 4, 2}))
	assert.Equal(t, Size{}, SliceSize(nil))
}

func TestParameterSnapshotFlatten(t *testing.T) {
	s := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "a", Params: []Parameter{{Key: "k1", Value: "1"}}},
		{Name: "b", Params: []Parameter{{Key: "k2", Value: "x"}}},
	}}
	assert.Equal(t, []any{"k1", "1", "k2", "x"}, s.Flatten())
	p, ok := s.Lookup("k2")
	assert.True(t, ok)
	assert.Equal(t, "x", p.Value)
	_, ok = s.Lookup("missing")
	assert.False(t, ok)
}
