package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillValueRGBA(t *testing.T) {
	buf := make([]byte, 4*2)
	fillValueRGBA(buf, []float32{0, 1}, 1, 2, 1)
	assert.Equal(t, []byte{0, 0, 0, 255, 255, 255, 255, 255}, buf)

	fillValueRGBA(buf, []float32{1, 0, 0, 1}, 2, 2, 1)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 255, 0, 255}, buf)

	buf = make([]byte, 4)
	fillValueRGBA(buf, []float32{0.2, 0.4, 0.6, 0.9}, 4, 1, 1)
	assert.Equal(t, []byte{51, 102, 153, 255}, buf)
}

func TestFillValueRGBAShortInput(t *testing.T) {
	buf := make([]byte, 4*4)
	fillValueRGBA(buf, []float32{1}, 1, 2, 2)
	assert.Equal(t, byte(255), buf[0])
	assert.Equal(t, byte(0), buf[4], "pixels without items stay untouched")
}

func TestFillProfileRGBA(t *testing.T) {
	w, h := 2, 4
	buf := make([]byte, 4*w*h)
	fillProfileRGBA(buf, []float64{1, 2}, w, h)
	// Column 1 is full height, column 0 half height.
	assert.Equal(t, byte(255), buf[(0*w+1)*4])
	assert.Equal(t, byte(0), buf[(1*w+0)*4])
	assert.Equal(t, byte(255), buf[(2*w+0)*4])
	assert.Equal(t, byte(255), buf[(3*w+0)*4])
}
