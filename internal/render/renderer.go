//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a 2D slice of a pattern into a single RGBA image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads the provided values into the painter image and draws it.
func (gp *GridPainter) Blit(dst *ebiten.Image, values []float32, channels, scale int) {
	fillValueRGBA(gp.buf, values, channels, gp.w, gp.h)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }

// ProfilePainter draws a frequency profile as a bar graph.
type ProfilePainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewProfilePainter allocates a painter for a w*h graph.
func NewProfilePainter(w, h int) *ProfilePainter {
	pp := &ProfilePainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	pp.img = ebiten.NewImage(w, h)
	return pp
}

// Blit draws profile at the given scale with its top-left corner at x, y.
func (pp *ProfilePainter) Blit(dst *ebiten.Image, profile []float64, x, y, scale int) {
	fillProfileRGBA(pp.buf, profile, pp.w, pp.h)
	pp.img.WritePixels(pp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(pp.img, op)
}
