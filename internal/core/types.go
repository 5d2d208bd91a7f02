package core

// Session is the contract the viewer drives: a pattern generator that can be
// reset and advanced one step at a time.
type Session interface {
	Name() string
	Dims() []int
	Channels() int
	Reset(seed int64) error
	Step()
	Done() bool
	Values() []float32
}

// Size describes the on-screen dimensions of a 2D slice of a session.
type Size struct {
	W int
	H int
}

// SliceSize returns the 2D view of dims: the first two extents, with a
// single row for one-dimensional grids.
func SliceSize(dims []int) Size {
	switch len(dims) {
	case 0:
		return Size{}
	case 1:
		return Size{W: dims[0], H: 1}
	default:
		return Size{W: dims[0], H: dims[1]}
	}
}
