// Package export writes finished patterns as raster images, source-code
// arrays and shader lookup functions.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnsupported reports a dimension or channel count a format cannot hold.
var ErrUnsupported = errors.New("export: unsupported frame")

// Frame is a finished pattern: a flat value array with Channels values per
// item, items laid out mixed-radix over Dims with dimension 0 fastest.
type Frame struct {
	Values   []float32
	Dims     []int
	Channels int
}

// Len returns the number of items described by Dims.
func (f Frame) Len() int {
	n := 1
	for _, d := range f.Dims {
		n *= d
	}
	return n
}

// Validate checks that Values matches Dims and Channels.
func (f Frame) Validate() error {
	if len(f.Dims) == 0 || f.Channels < 1 {
		return fmt.Errorf("%w: %d dims, %d channels", ErrUnsupported, len(f.Dims), f.Channels)
	}
	for _, d := range f.Dims {
		if d < 1 {
			return fmt.Errorf("%w: extent %d", ErrUnsupported, d)
		}
	}
	if want := f.Len() * f.Channels; len(f.Values) != want {
		return fmt.Errorf("%w: %d values, dims and channels want %d", ErrUnsupported, len(f.Values), want)
	}
	return nil
}

func (f Frame) item(i int) []float32 {
	return f.Values[i*f.Channels : (i+1)*f.Channels]
}

// Format names an output encoding.
type Format string

const (
	FormatPPM         Format = "ppm"
	FormatBMP         Format = "bmp"
	FormatPNG         Format = "png"
	FormatCArray      Format = "c"
	FormatMathematica Format = "mathematica"
	FormatGLSL        Format = "glsl"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatPPM, FormatBMP, FormatPNG, FormatCArray, FormatMathematica, FormatGLSL}
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown format %q", ErrUnsupported, s)
}

// Extension returns the conventional file suffix for the format.
func (f Format) Extension() string {
	switch f {
	case FormatCArray:
		return ".h"
	case FormatMathematica:
		return ".txt"
	case FormatGLSL:
		return ".glsl"
	default:
		return "." + string(f)
	}
}

// Check reports whether format can hold a pattern with the given extents and
// channel count, so callers can refuse a job before generating it.
func Check(format Format, dims []int, channels int) error {
	if len(dims) == 0 || channels < 1 {
		return fmt.Errorf("%w: %d dims, %d channels", ErrUnsupported, len(dims), channels)
	}
	switch format {
	case FormatPPM, FormatBMP, FormatPNG:
		return checkRasterShape(dims, channels)
	case FormatGLSL:
		return checkGLSLShape(channels)
	case FormatCArray, FormatMathematica:
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q", ErrUnsupported, format)
	}
}

// Options tunes the encoders. Zero values are valid.
type Options struct {
	// Name is the identifier used by source-code formats.
	Name string
	// Triangular remaps raster values to a triangular distribution.
	Triangular bool
}

func (o Options) name() string {
	if o.Name == "" {
		return "blueNoise"
	}
	return o.Name
}

// Write encodes f to w in the requested format.
func Write(w io.Writer, format Format, f Frame, opts Options) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, f)
	case FormatBMP:
		return EncodeBMP(w, f, opts.Triangular)
	case FormatPNG:
		return EncodePNG(w, f, opts.Triangular)
	case FormatCArray:
		return WriteCArray(w, f, opts.name())
	case FormatMathematica:
		return WriteMathematica(w, f)
	case FormatGLSL:
		return WriteGLSL(w, f, opts.name())
	default:
		return fmt.Errorf("%w: unknown format %q", ErrUnsupported, format)
	}
}
