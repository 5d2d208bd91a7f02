//go:build ebiten

package ui

import (
	"image/color"

	"blue-noise/internal/core"
	"blue-noise/internal/export"
	"blue-noise/internal/render"
	"blue-noise/internal/spectrum"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	profileBins    = 64
	profileHeight  = 48
	refreshEvery   = 30
	overlayPadding = 4
)

// Overlay draws the radially averaged power spectrum of channel 0 over the
// bottom of the pattern view. Key 1 toggles it.
type Overlay struct {
	session core.Session
	show    bool

	painter *render.ProfilePainter
	profile []float64
	frames  int
	err     error
}

// NewOverlay constructs a hidden overlay for session.
func NewOverlay(session core.Session) *Overlay {
	return &Overlay{
		session: session,
		painter: render.NewProfilePainter(profileBins, profileHeight),
	}
}

// Update toggles visibility and refreshes the profile while shown.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.show = !o.show
		o.frames = 0
	}
	if !o.show {
		return
	}
	if o.frames%refreshEvery == 0 {
		o.refresh()
	}
	o.frames++
}

// Invalidate forces a recompute on the next visible Update.
func (o *Overlay) Invalidate() { o.frames = 0 }

func (o *Overlay) refresh() {
	frame := export.Frame{
		Values:   o.session.Values(),
		Dims:     o.session.Dims(),
		Channels: o.session.Channels(),
	}
	power, err := spectrum.Power(frame, 0)
	if err != nil {
		o.err = err
		o.profile = nil
		return
	}
	o.err = nil
	o.profile = spectrum.Radial(power, frame.Dims, profileBins)
}

// Draw renders the overlay across the leftmost viewWidth pixels of screen.
func (o *Overlay) Draw(screen *ebiten.Image, viewWidth int) {
	if !o.show {
		return
	}
	face := basicfont.Face7x13
	height := screen.Bounds().Dy()
	if o.err != nil {
		text.Draw(screen, o.err.Error(), face, overlayPadding, height-overlayPadding, color.RGBA{R: 255, G: 96, B: 96, A: 255})
		return
	}
	if len(o.profile) == 0 {
		return
	}
	scale := viewWidth / profileBins
	if scale < 1 {
		scale = 1
	}
	top := height - profileHeight*scale
	o.painter.Blit(screen, o.profile, 0, top, scale)
	text.Draw(screen, "radial power", face, overlayPadding, top-overlayPadding, color.White)
}
