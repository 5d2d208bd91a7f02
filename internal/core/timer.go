package core

import "time"

// Progress paces periodic reports over a fixed-length run and estimates the
// remaining time from the elapsed wall clock.
type Progress struct {
	total int
	every int
	start time.Time
	now   func() time.Time
}

// NewProgress reports roughly once per percent of total.
func NewProgress(total int) *Progress {
	return newProgress(total, time.Now)
}

func newProgress(total int, now func() time.Time) *Progress {
	every := total / 100
	if every <= 0 {
		every = 1
	}
	return &Progress{total: total, every: every, start: now(), now: now}
}

// Due reports whether iteration iter should be reported. Iteration zero never is.
func (p *Progress) Due(iter int) bool {
	return iter > 0 && iter%p.every == 0
}

// Fraction returns the completed share of the run for iteration iter.
func (p *Progress) Fraction(iter int) float64 {
	if p.total <= 0 {
		return 1
	}
	return float64(iter) / float64(p.total)
}

// Elapsed returns the wall time since the progress tracker was created.
func (p *Progress) Elapsed() time.Duration { return p.now().Sub(p.start) }

// ETA extrapolates the remaining time linearly from the elapsed time.
func (p *Progress) ETA(iter int) time.Duration {
	pct := p.Fraction(iter)
	if pct <= 0 {
		return 0
	}
	elapsed := p.Elapsed()
	return time.Duration(float64(elapsed) / pct * (1 - pct))
}
