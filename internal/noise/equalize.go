package noise

import "sort"

type rankEntry struct {
	value float32
	index int
}

// Equalize replaces every channel of values by its rank divided by n-1, so
// each channel becomes an exact permutation of {0, 1/(n-1), ..., 1}.
// Channels are ranked independently; ties keep original index order.
func Equalize(values []float32, channels int) {
	if channels <= 0 {
		return
	}
	n := len(values) / channels
	if n == 0 {
		return
	}
	entries := make([]rankEntry, n)
	for c := 0; c < channels; c++ {
		for i := range entries {
			entries[i] = rankEntry{value: values[i*channels+c], index: i}
		}
		sort.SliceStable(entries, func(a, b int) bool { return entries[a].value < entries[b].value })
		for rank, e := range entries {
			values[e.index*channels+c] = rankValue(rank, n)
		}
	}
}

// rankValue maps rank r of n onto [0, 1].
func rankValue(r, n int) float32 {
	if n < 2 {
		return 0
	}
	return float32(r) / float32(n-1)
}
