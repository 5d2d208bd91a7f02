//go:build !bluenoise_debug

package noise

// checksEnabled turns on per-element and per-iteration invariant panics.
const checksEnabled = false
