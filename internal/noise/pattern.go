package noise

import "fmt"

// Pattern holds the items of a grid in two equally sized slots. The active
// slot is the working state; the other is the shadow of the last committed
// state. Between iterations both slots are element-wise identical.
type Pattern struct {
	channels int
	slots    [2][]float32
	active   int
}

// NewPattern allocates a zeroed pattern of n items with the given channels.
func NewPattern(n, channels int) *Pattern {
	return &Pattern{
		channels: channels,
		slots:    [2][]float32{make([]float32, n*channels), make([]float32, n*channels)},
	}
}

// PatternFrom copies values into a new pattern; both slots start equal.
func PatternFrom(values []float32, channels int) (*Pattern, error) {
	if channels < 1 || len(values)%channels != 0 {
		return nil, fmt.Errorf("%w: %d values for %d channels", ErrPatternShape, len(values), channels)
	}
	p := NewPattern(len(values)/channels, channels)
	copy(p.slots[0], values)
	copy(p.slots[1], values)
	return p, nil
}

// Len returns the number of items.
func (p *Pattern) Len() int { return len(p.slots[0]) / p.channels }

// Channels returns the number of values per item.
func (p *Pattern) Channels() int { return p.channels }

// Values returns the working slot. The slice aliases pattern storage.
func (p *Pattern) Values() []float32 { return p.slots[p.active] }

// Shadow returns the committed slot. The slice aliases pattern storage.
func (p *Pattern) Shadow() []float32 { return p.slots[p.active^1] }

// Snapshot returns a copy of the working slot.
func (p *Pattern) Snapshot() []float32 { return append([]float32(nil), p.Values()...) }

// Sync copies the working slot over the shadow slot.
func (p *Pattern) Sync() { copy(p.Shadow(), p.Values()) }

// Flip exchanges the roles of the two slots.
func (p *Pattern) Flip() { p.active ^= 1 }

// Swap exchanges the channel vectors of items a and b in the working slot.
func (p *Pattern) Swap(a, b int) {
	w := p.Values()
	c := p.channels
	for i := 0; i < c; i++ {
		w[a*c+i], w[b*c+i] = w[b*c+i], w[a*c+i]
	}
}

// Commit copies item i from the working slot into the shadow slot.
func (p *Pattern) Commit(i int) {
	c := p.channels
	copy(p.Shadow()[i*c:i*c+c], p.Values()[i*c:i*c+c])
}

// Rollback restores item i of the working slot from the shadow slot.
func (p *Pattern) Rollback(i int) {
	c := p.channels
	copy(p.Values()[i*c:i*c+c], p.Shadow()[i*c:i*c+c])
}

// touchedSet collects element indices whose score must be recomputed. The
// membership bitmap keeps insertion O(1) without scanning the list.
type touchedSet struct {
	marked []bool
	list   []int
}

func newTouchedSet(n int) *touchedSet {
	return &touchedSet{marked: make([]bool, n)}
}

func (t *touchedSet) add(i int) {
	if t.marked[i] {
		return
	}
	t.marked[i] = true
	t.list = append(t.list, i)
}

func (t *touchedSet) reset() {
	for _, i := range t.list {
		t.marked[i] = false
	}
	t.list = t.list[:0]
}
