package export

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/bmp"
)

// checkRaster accepts 2D frames with one to three channels.
func checkRaster(f Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return checkRasterShape(f.Dims, f.Channels)
}

func checkRasterShape(dims []int, channels int) error {
	if len(dims) != 2 {
		return fmt.Errorf("%w: raster output needs 2 dimensions, got %d", ErrUnsupported, len(dims))
	}
	if channels > 3 {
		return fmt.Errorf("%w: raster output holds at most 3 channels, got %d", ErrUnsupported, channels)
	}
	return nil
}

// WritePPM writes an ASCII (P3) portable pixmap. One channel is written as
// grey, two channels fill red and green.
func WritePPM(w io.Writer, f Frame) error {
	if err := checkRaster(f); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", f.Dims[0], f.Dims[1])
	for i := 0; i < f.Len(); i++ {
		rgb := [3]uint32{}
		v := f.item(i)
		switch f.Channels {
		case 1:
			b := unormByte(v[0])
			rgb = [3]uint32{b, b, b}
		case 2:
			rgb = [3]uint32{unormByte(v[0]), unormByte(v[1]), 0}
		case 3:
			rgb = [3]uint32{unormByte(v[0]), unormByte(v[1]), unormByte(v[2])}
		}
		fmt.Fprintf(bw, "%d %d %d ", rgb[0], rgb[1], rgb[2])
	}
	return bw.Flush()
}

func unormByte(v float32) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint32(255 * v)
}

// Image converts a 2D frame into 8-bit RGB pixels. A single channel is
// splatted to grey; missing channels stay zero.
func Image(f Frame, triangular bool) (*image.RGBA, error) {
	if err := checkRaster(f); err != nil {
		return nil, err
	}
	w, h := f.Dims[0], f.Dims[1]
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < f.Len(); i++ {
		var px [3]uint8
		v := f.item(i)
		for c := range v {
			px[c] = quantize(v[c], triangular)
		}
		if f.Channels == 1 {
			px[1], px[2] = px[0], px[0]
		}
		img.SetRGBA(i%w, i/w, color.RGBA{R: px[0], G: px[1], B: px[2], A: 255})
	}
	return img, nil
}

// quantize maps [0,1] onto 0..255 with v*256 truncation, clamping at both ends.
func quantize(v float32, triangular bool) uint8 {
	x := float64(v)
	if triangular {
		x = RemapTriangular(x)
	}
	n := int(x * 256)
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	return uint8(n)
}

// RemapTriangular maps a uniform value in [0,1] through the inverse CDF of
// the symmetric triangular distribution on [0,1].
func RemapTriangular(v float64) float64 {
	if v < 0.5 {
		return math.Sqrt(0.5 * v)
	}
	return 1 - math.Sqrt(0.5*(1-v))
}

// EncodeBMP writes a 24-bit bitmap.
func EncodeBMP(w io.Writer, f Frame, triangular bool) error {
	img, err := Image(f, triangular)
	if err != nil {
		return err
	}
	return bmp.Encode(w, img)
}

// EncodePNG writes an 8-bit RGBA PNG.
func EncodePNG(w io.Writer, f Frame, triangular bool) error {
	img, err := Image(f, triangular)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
