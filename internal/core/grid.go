package core

import "fmt"

// Grid describes a periodic N-dimensional index space. Linear indices are
// mixed-radix over Dims with dimension 0 varying fastest.
type Grid struct {
	dims    []int
	strides []int
	total   int
}

// NewGrid builds a grid for the provided per-dimension extents. Extents below
// one are clamped to one.
func NewGrid(dims []int) *Grid {
	g := &Grid{
		dims:    make([]int, len(dims)),
		strides: make([]int, len(dims)),
		total:   1,
	}
	for d, extent := range dims {
		if extent <= 0 {
			extent = 1
		}
		g.dims[d] = extent
		g.strides[d] = g.total
		g.total *= extent
	}
	return g
}

// Dims returns a copy of the per-dimension extents.
func (g *Grid) Dims() []int { return append([]int(nil), g.dims...) }

// Rank reports the number of dimensions.
func (g *Grid) Rank() int { return len(g.dims) }

// Extent returns the size of dimension d.
func (g *Grid) Extent(d int) int { return g.dims[d] }

// Stride returns the linear step between neighbours along dimension d.
func (g *Grid) Stride(d int) int { return g.strides[d] }

// Len returns the number of cells in the grid.
func (g *Grid) Len() int { return g.total }

// Coord returns the coordinate of linear index i along dimension d.
func (g *Grid) Coord(i, d int) int { return (i / g.strides[d]) % g.dims[d] }

// Coords writes the coordinates of linear index i into dst and returns it.
func (g *Grid) Coords(i int, dst []int) []int {
	dst = dst[:0]
	for d := range g.dims {
		dst = append(dst, g.Coord(i, d))
	}
	return dst
}

// Index returns the linear index for already wrapped coordinates.
func (g *Grid) Index(coords []int) int {
	idx := 0
	for d, c := range coords {
		idx += c * g.strides[d]
	}
	return idx
}

// Offset returns the linear index reached from the cell at coords by moving
// offsets[d] along every dimension, wrapping toroidally.
func (g *Grid) Offset(coords, offsets []int) int {
	idx := 0
	for d, c := range coords {
		idx += Wrap(c, offsets[d], g.dims[d]) * g.strides[d]
	}
	return idx
}

// Wrap applies toroidal wrapping to base+offset within [0, extent). A single
// period is corrected, so |offset| must stay below extent; larger offsets
// panic instead of producing a silently wrong coordinate.
func Wrap(base, offset, extent int) int {
	if offset >= extent || -offset >= extent {
		panic(fmt.Sprintf("core: Wrap offset %d out of range for extent %d", offset, extent))
	}
	pos := base + offset
	if pos < 0 {
		pos += extent
	}
	if pos >= extent {
		pos -= extent
	}
	return pos
}
