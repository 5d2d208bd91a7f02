package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteCArray writes the frame as a nested C initialiser:
//
//	static const float name[d0][d1][C] = {{...}};
func WriteCArray(w io.Writer, f Frame, name string) error {
	return writeNested(w, f, name, false)
}

// WriteMathematica writes the frame as a bare nested list.
func WriteMathematica(w io.Writer, f Frame) error {
	return writeNested(w, f, "", true)
}

func writeNested(w io.Writer, f Frame, name string, bare bool) error {
	if err := f.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if !bare {
		bw.WriteString("static const float " + name)
		for _, d := range f.Dims {
			fmt.Fprintf(bw, "[%d]", d)
		}
		if f.Channels > 1 {
			fmt.Fprintf(bw, "[%d]", f.Channels)
		}
		bw.WriteString(" = \n")
	}

	strides := make([]int, len(f.Dims))
	stride := 1
	for d, extent := range f.Dims {
		strides[d] = stride
		stride *= extent
	}
	coord := func(i, d int) int { return (i / strides[d]) % f.Dims[d] }

	for i := 0; i < f.Len(); i++ {
		for d := range f.Dims {
			if coord(i, d) != 0 {
				break
			}
			bw.WriteByte('{')
		}

		v := f.item(i)
		if f.Channels == 1 {
			bw.WriteString(fixed8(v[0]))
		} else {
			parts := make([]string, len(v))
			for c := range v {
				parts[c] = fixed8(v[c])
			}
			bw.WriteString("{" + strings.Join(parts, ", ") + "}")
		}

		for d := range f.Dims {
			if coord(i, d) == f.Dims[d]-1 {
				bw.WriteByte('}')
				continue
			}
			bw.WriteByte(',')
			if d > 0 {
				bw.WriteByte('\n')
			}
			break
		}
	}
	if !bare {
		bw.WriteByte(';')
	}
	bw.WriteString("\n\n")
	return bw.Flush()
}

func fixed8(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 8, 32)
}

// WriteGLSL writes a shader snippet that looks up item `name` by binary
// search over nested ifs, returning a float or vecC.
func WriteGLSL(w io.Writer, f Frame, name string) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if err := checkGLSLShape(f.Channels); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	writeGLSLRange(bw, f, name, 0, f.Len())
	bw.WriteByte('\n')
	return bw.Flush()
}

func checkGLSLShape(channels int) error {
	if channels > 4 {
		return fmt.Errorf("%w: GLSL vectors hold at most 4 channels, got %d", ErrUnsupported, channels)
	}
	return nil
}

func writeGLSLRange(bw *bufio.Writer, f Frame, name string, lo, hi int) {
	if hi-lo == 1 {
		v := f.item(lo)
		if f.Channels == 1 {
			bw.WriteString("return " + glslFloat(v[0]) + ";")
			return
		}
		parts := make([]string, len(v))
		for c := range v {
			parts[c] = glslFloat(v[c])
		}
		fmt.Fprintf(bw, "return vec%d(%s);", f.Channels, strings.Join(parts, ", "))
		return
	}
	mid := (lo + hi) / 2
	fmt.Fprintf(bw, "if(%s < %d) \n{\n", name, mid)
	writeGLSLRange(bw, f, name, lo, mid)
	bw.WriteString("} else {\n")
	writeGLSLRange(bw, f, name, mid, hi)
	bw.WriteString("\n}")
}

// glslFloat formats v as a GLSL float literal, which needs a decimal point.
func glslFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'g', 6, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
