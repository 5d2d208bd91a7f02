package noise

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidConfig reports a configuration rejected before optimisation.
	ErrInvalidConfig = errors.New("noise: invalid config")
	// ErrScoreDegenerate reports a NaN, infinite or negative running score.
	ErrScoreDegenerate = errors.New("noise: degenerate score")
	// ErrPatternShape reports a value array that does not match the config.
	ErrPatternShape = errors.New("noise: pattern shape mismatch")
)

// Method selects the generation strategy once, at configuration time.
type Method uint8

const (
	// MethodSolidAngle minimises the neighbourhood energy by swapping items.
	MethodSolidAngle Method = iota
	// MethodHighPass repeatedly high-pass filters and re-equalises.
	MethodHighPass
)

// String returns the flag spelling of the method.
func (m Method) String() string {
	switch m {
	case MethodSolidAngle:
		return "solid-angle"
	case MethodHighPass:
		return "high-pass"
	default:
		return "unknown(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMethod accepts the spellings produced by Method.String.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "solid-angle", "solidangle", "solid_angle":
		return MethodSolidAngle, nil
	case "high-pass", "highpass", "high_pass":
		return MethodHighPass, nil
	}
	return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidConfig, s)
}

// DefaultIncrementalThreshold is the element count from which the
// incremental optimiser beats a full rescore.
const DefaultIncrementalThreshold = 18 * 18

// Config is the immutable description of one generation run.
type Config struct {
	Dims       []int
	Channels   int
	Radius     int
	Iterations int
	// IncrementalThreshold selects the incremental optimiser when the
	// element count is at least this large.
	IncrementalThreshold int
	Method               Method
	// Passes is the number of high-pass filter passes.
	Passes int
	Seed   int64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Dims:                 []int{128, 128},
		Channels:             1,
		Radius:               3,
		Iterations:           256 * 1024,
		IncrementalThreshold: DefaultIncrementalThreshold,
		Method:               MethodSolidAngle,
		Passes:               4,
		Seed:                 42,
	}
}

// ElementCount returns the number of grid cells.
func (c Config) ElementCount() int {
	n := 1
	for _, d := range c.Dims {
		n *= d
	}
	return n
}

// Incremental reports whether the optimiser should use touched-set rescoring.
func (c Config) Incremental() bool {
	return c.ElementCount() >= c.IncrementalThreshold
}

// Validate rejects configurations the generators cannot run correctly.
func (c Config) Validate() error {
	if len(c.Dims) == 0 {
		return fmt.Errorf("%w: at least one dimension is required", ErrInvalidConfig)
	}
	minExtent := 0
	for d, extent := range c.Dims {
		if extent < 1 {
			return fmt.Errorf("%w: dimension %d has extent %d", ErrInvalidConfig, d, extent)
		}
		if d == 0 || extent < minExtent {
			minExtent = extent
		}
	}
	if c.ElementCount() < 2 {
		return fmt.Errorf("%w: need at least 2 elements, got %d", ErrInvalidConfig, c.ElementCount())
	}
	if c.Channels < 1 {
		return fmt.Errorf("%w: channels must be >= 1, got %d", ErrInvalidConfig, c.Channels)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("%w: iterations must be >= 0, got %d", ErrInvalidConfig, c.Iterations)
	}
	switch c.Method {
	case MethodSolidAngle:
		if c.Radius < 1 {
			return fmt.Errorf("%w: radius must be >= 1, got %d", ErrInvalidConfig, c.Radius)
		}
		if c.Radius >= minExtent {
			return fmt.Errorf("%w: radius %d must be smaller than every extent (min %d)", ErrInvalidConfig, c.Radius, minExtent)
		}
	case MethodHighPass:
		if len(c.Dims) > len(highPassKernels) {
			return fmt.Errorf("%w: high-pass supports up to %d dimensions, got %d", ErrInvalidConfig, len(highPassKernels), len(c.Dims))
		}
		if minExtent < 2 {
			return fmt.Errorf("%w: high-pass needs every extent >= 2 (min %d)", ErrInvalidConfig, minExtent)
		}
		if c.Passes < 0 {
			return fmt.Errorf("%w: passes must be >= 0, got %d", ErrInvalidConfig, c.Passes)
		}
	default:
		return fmt.Errorf("%w: unknown method %v", ErrInvalidConfig, c.Method)
	}
	return nil
}

// ParseDims parses extents written as "128x128" or "64,64,4".
func ParseDims(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == 'x' || r == 'X' || r == ',' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty dimension list %q", ErrInvalidConfig, s)
	}
	dims := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || v < 1 {
			return nil, fmt.Errorf("%w: bad extent %q in %q", ErrInvalidConfig, f, s)
		}
		dims = append(dims, v)
	}
	return dims, nil
}

// FormatDims renders extents the way ParseDims reads them.
func FormatDims(dims []int) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "x")
}

// FromMap populates a Config from flag-style key/value pairs on top of the
// defaults. Unknown keys are ignored; malformed values are reported.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	var errs []error
	atoi := func(key string, dst *int) {
		v, ok := cfg[key]
		if !ok {
			return
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, v))
			return
		}
		*dst = parsed
	}
	if v, ok := cfg["dims"]; ok {
		dims, err := ParseDims(v)
		if err != nil {
			errs = append(errs, err)
		} else {
			c.Dims = dims
		}
	}
	atoi("channels", &c.Channels)
	atoi("radius", &c.Radius)
	atoi("iterations", &c.Iterations)
	atoi("threshold", &c.IncrementalThreshold)
	atoi("passes", &c.Passes)
	if v, ok := cfg["method"]; ok {
		m, err := ParseMethod(v)
		if err != nil {
			errs = append(errs, err)
		} else {
			c.Method = m
		}
	}
	if v, ok := cfg["seed"]; ok {
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: seed=%q", ErrInvalidConfig, v))
		} else {
			c.Seed = parsed
		}
	}
	return c, errors.Join(errs...)
}
