package noise

// Kernel is the fixed window of integer offsets scored around every element,
// with the squared Euclidean length of each offset precomputed. Entry e
// encodes its offset in mixed radix (2R+1) with dimension 0 fastest, matching
// the grid addressing.
type Kernel struct {
	Radius int
	Rank   int
	// offsets holds Rank entries per window cell.
	offsets []int
	weights []float32
}

// BuildKernel precomputes the window of the given radius over rank dimensions.
func BuildKernel(rank, radius int) *Kernel {
	width := 2*radius + 1
	size := 1
	for d := 0; d < rank; d++ {
		size *= width
	}
	k := &Kernel{
		Radius:  radius,
		Rank:    rank,
		offsets: make([]int, size*rank),
		weights: make([]float32, size),
	}
	for e := 0; e < size; e++ {
		rem := e
		var distSq int
		for d := 0; d < rank; d++ {
			off := rem%width - radius
			rem /= width
			k.offsets[e*rank+d] = off
			distSq += off * off
		}
		k.weights[e] = float32(distSq)
	}
	return k
}

// Len returns the number of window cells, (2R+1)^Rank.
func (k *Kernel) Len() int { return len(k.weights) }

// Offset returns the offset vector of entry e. The slice aliases kernel storage.
func (k *Kernel) Offset(e int) []int { return k.offsets[e*k.Rank : (e+1)*k.Rank] }

// Weight returns the squared distance of entry e from the window centre.
func (k *Kernel) Weight(e int) float32 { return k.weights[e] }
