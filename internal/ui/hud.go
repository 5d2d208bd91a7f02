//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strconv"
	"strings"

	"blue-noise/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the pattern view.
type HUD struct {
	session    core.Session
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls     []hudControlState
	setter       core.IntParameterSetter
	panelOffsetX int
	title        string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided session and panel width.
func NewHUD(session core.Session, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{session: session, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.title = strings.ToUpper(session.Name())
	if provider, ok := session.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, hudControlState{control: ctrl, value: "--"})
		}
	}
	if setter, ok := session.(core.IntParameterSetter); ok {
		h.setter = setter
	}
	return h
}

// Update refreshes the cached snapshot and handles button clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	provider, ok := h.session.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
	h.refreshControlValues()
	h.layoutControls()
	h.handleInput()
}

// Draw paints the HUD panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, headerColor)
	for _, group := range h.snapshot.Groups {
		y += groupSpacing
		text.Draw(h.panel, group.Name, face, panelPadding, y, headerColor)
		for _, p := range group.Params {
			y += rowHeight
			text.Draw(h.panel, p.Label, face, panelPadding, y, labelColor)
			bounds := text.BoundString(face, p.Value)
			text.Draw(h.panel, p.Value, face, h.width-panelPadding-bounds.Dx(), y, valueColor)
		}
	}
	for i := range h.controls {
		h.drawControl(&h.controls[i])
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

// controlsTop is where the adjustable controls start, below the snapshot rows.
func (h *HUD) controlsTop() int {
	y := panelPadding + headerBaseline
	for _, group := range h.snapshot.Groups {
		y += groupSpacing + rowHeight*len(group.Params)
	}
	return y + groupSpacing
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			state.hasValue = false
			state.value = "--"
			continue
		}
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			state.hasValue = false
			state.value = "--"
			continue
		}
		state.intValue = parsed
		state.value = param.Value
		state.hasValue = true
	}
}

func (h *HUD) layoutControls() {
	top := h.controlsTop()
	for i := range h.controls {
		rowTop := top + i*lineHeight
		buttonY := rowTop + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = rowTop
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || h.setter == nil {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	pt := image.Pt(mx-h.panelOffsetX, my)
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		switch {
		case pt.In(state.minusRect):
			h.adjust(state, -1)
			return
		case pt.In(state.plusRect):
			h.adjust(state, 1)
			return
		}
	}
}

func (h *HUD) adjust(state *hudControlState, direction int) {
	target, ok := nextValue(state.control, state.intValue, direction)
	if !ok {
		return
	}
	if h.setter.SetIntParameter(state.control.Key, target) {
		state.intValue = target
		state.value = strconv.Itoa(target)
	}
}

// nextValue applies one step in direction and clamps to the control bounds.
func nextValue(ctrl core.ParameterControl, current, direction int) (int, bool) {
	step := ctrl.Step
	if step <= 0 {
		step = 1
	}
	target := current + direction*step
	if ctrl.HasMin && target < ctrl.Min {
		target = ctrl.Min
	}
	if ctrl.HasMax && target > ctrl.Max {
		target = ctrl.Max
	}
	return target, target != current
}

func (h *HUD) drawControl(state *hudControlState) {
	face := basicfont.Face7x13
	labelY := state.top + labelBaseline
	text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, labelColor)
	fg := valueColor
	if !state.hasValue {
		fg = disabledColor
	}
	bounds := text.BoundString(face, state.value)
	text.Draw(h.panel, state.value, face, state.minusRect.Min.X-buttonGap-bounds.Dx(), labelY, fg)

	_, minusOK := nextValue(state.control, state.intValue, -1)
	_, plusOK := nextValue(state.control, state.intValue, 1)
	h.drawButton(state.minusRect, "-", state.hasValue && minusOK)
	h.drawButton(state.plusRect, "+", state.hasValue && plusOK)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = disabledColor
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

type hudControlState struct {
	control  core.ParameterControl
	value    string
	intValue int
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

var (
	headerColor   = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor    = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	valueColor    = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	disabledColor = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 36
	rowHeight      = 16
	groupSpacing   = 24
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
)
