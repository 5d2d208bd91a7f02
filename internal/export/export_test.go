package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func TestFrameValidate(t *testing.T) {
	ok := Frame{Values: make([]float32, 12), Dims: []int{2, 3}, Channels: 2}
	assert.NoError(t, ok.Validate())

	for _, bad := range []Frame{
		{Values: make([]float32, 11), Dims: []int{2, 3}, Channels: 2},
		{Values: nil, Dims: nil, Channels: 1},
		{Values: make([]float32, 4), Dims: []int{2, 2}, Channels: 0},
		{Values: nil, Dims: []int{0, 2}, Channels: 1},
	} {
		assert.ErrorIs(t, bad.Validate(), ErrUnsupported)
	}
}

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	f := Frame{Values: []float32{0, 0.5, 1}, Dims: []int{3, 1}, Channels: 1}
	require.NoError(t, WritePPM(&buf, f))
	assert.Equal(t, "P3\n3 1\n255\n0 0 0 127 127 127 255 255 255 ", buf.String())

	buf.Reset()
	f = Frame{Values: []float32{1, 0, 0, 1}, Dims: []int{2, 1}, Channels: 2}
	require.NoError(t, WritePPM(&buf, f))
	assert.Equal(t, "P3\n2 1\n255\n255 0 0 0 255 0 ", buf.String())
}

func TestRasterRejectsUnsupportedFrames(t *testing.T) {
	var buf bytes.Buffer
	threeD := Frame{Values: make([]float32, 8), Dims: []int{2, 2, 2}, Channels: 1}
	assert.ErrorIs(t, WritePPM(&buf, threeD), ErrUnsupported)
	fourCh := Frame{Values: make([]float32, 16), Dims: []int{2, 2}, Channels: 4}
	assert.ErrorIs(t, EncodeBMP(&buf, fourCh, false), ErrUnsupported)
	assert.ErrorIs(t, EncodePNG(&buf, fourCh, false), ErrUnsupported)
	assert.Zero(t, buf.Len(), "nothing is written for rejected frames")
}

func TestEncodeBMPRoundTrip(t *testing.T) {
	f := Frame{Values: []float32{0, 0.5, 0.25, 1}, Dims: []int{2, 2}, Channels: 1}
	var buf bytes.Buffer
	require.NoError(t, EncodeBMP(&buf, f, false))

	img, err := bmp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	r, g, b, _ := img.At(1, 0).RGBA()
	assert.Equal(t, uint32(128), r>>8)
	assert.Equal(t, r, g)
	assert.Equal(t, r, b)
	r, _, _, _ = img.At(1, 1).RGBA()
	assert.Equal(t, uint32(255), r>>8)
}

func TestEncodePNGTwoChannels(t *testing.T) {
	f := Frame{Values: []float32{0.25, 0.75}, Dims: []int{1, 1}, Channels: 2}
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, f, false))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(64), r>>8)
	assert.Equal(t, uint32(192), g>>8)
	assert.Equal(t, uint32(0), b>>8)
}

func TestRemapTriangular(t *testing.T) {
	assert.InDelta(t, 0.0, RemapTriangular(0), 1e-12)
	assert.InDelta(t, 0.5, RemapTriangular(0.5), 1e-12)
	assert.InDelta(t, 1.0, RemapTriangular(1), 1e-12)
	prev := -1.0
	for i := 0; i <= 100; i++ {
		v := RemapTriangular(float64(i) / 100)
		assert.GreaterOrEqual(t, v, prev, "remap must be monotonic")
		prev = v
	}
}

func TestWriteCArray(t *testing.T) {
	var buf bytes.Buffer
	f := Frame{Values: []float32{0, 0.25, 0.5, 1}, Dims: []int{2, 2}, Channels: 1}
	require.NoError(t, WriteCArray(&buf, f, "bn"))
	want := "static const float bn[2][2] = \n{{0.00000000,0.25000000},\n{0.50000000,1.00000000}};\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteMathematicaMultiChannel(t *testing.T) {
	var buf bytes.Buffer
	f := Frame{Values: []float32{0, 1, 0.5, 0.5}, Dims: []int{2}, Channels: 2}
	require.NoError(t, WriteMathematica(&buf, f))
	assert.Equal(t, "{{0.00000000, 1.00000000},{0.50000000, 0.50000000}}\n\n", buf.String())
}

func TestWriteGLSL(t *testing.T) {
	var buf bytes.Buffer
	f := Frame{Values: []float32{0.25, 1}, Dims: []int{2}, Channels: 1}
	require.NoError(t, WriteGLSL(&buf, f, "i"))
	assert.Equal(t, "if(i < 1) \n{\nreturn 0.25;} else {\nreturn 1.0;\n}\n", buf.String())

	buf.Reset()
	f = Frame{Values: []float32{0, 0.5, 1, 1, 0.5, 0}, Dims: []int{3}, Channels: 2}
	require.NoError(t, WriteGLSL(&buf, f, "idx"))
	out := buf.String()
	assert.Contains(t, out, "return vec2(0.0, 0.5);")
	assert.Contains(t, out, "if(idx < 1)")
	assert.Equal(t, 3, strings.Count(out, "return "))

	wide := Frame{Values: make([]float32, 5), Dims: []int{1}, Channels: 5}
	assert.ErrorIs(t, WriteGLSL(&buf, wide, "i"), ErrUnsupported)
}

func TestWriteDispatch(t *testing.T) {
	f := Frame{Values: []float32{0, 1}, Dims: []int{2, 1}, Channels: 1}
	for _, format := range Formats() {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, format, f, Options{}), "format %s", format)
		assert.NotZero(t, buf.Len(), "format %s", format)
	}
	var buf bytes.Buffer
	assert.ErrorIs(t, Write(&buf, Format("tiff"), f, Options{}), ErrUnsupported)

	parsed, err := ParseFormat(" PNG ")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, parsed)
	assert.Equal(t, ".png", parsed.Extension())
	assert.Equal(t, ".h", FormatCArray.Extension())
	_, err = ParseFormat("jpeg")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestCheckShape(t *testing.T) {
	for _, tc := range []struct {
		format   Format
		dims     []int
		channels int
		ok       bool
	}{
		{FormatPNG, []int{16, 16}, 3, true},
		{FormatPNG, []int{16, 16}, 4, false},
		{FormatBMP, []int{16, 16, 4}, 1, false},
		{FormatPPM, []int{16}, 1, false},
		{FormatGLSL, []int{8, 8, 8}, 4, true},
		{FormatGLSL, []int{8}, 5, false},
		{FormatCArray, []int{4, 4, 4, 4}, 7, true},
		{FormatMathematica, []int{4}, 2, true},
		{FormatCArray, nil, 1, false},
		{Format("tiff"), []int{4, 4}, 1, false},
	} {
		err := Check(tc.format, tc.dims, tc.channels)
		if tc.ok {
			assert.NoError(t, err, "%s %v x%d", tc.format, tc.dims, tc.channels)
		} else {
			assert.ErrorIs(t, err, ErrUnsupported, "%s %v x%d", tc.format, tc.dims, tc.channels)
		}
	}
}
