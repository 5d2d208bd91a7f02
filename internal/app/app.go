//go:build ebiten

package app

import (
	"log/slog"
	"time"

	"blue-noise/internal/core"
	"blue-noise/internal/render"
	"blue-noise/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a generator session to the ebiten.Game interface.
type Game struct {
	session core.Session
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	size    core.Size

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided session.
func New(session core.Session, scale, hudWidth int, seed int64) *Game {
	size := core.SliceSize(session.Dims())
	return &Game{
		session:  session,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(session, hudWidth),
		overlay:  ui.NewOverlay(session),
		size:     size,
		scale:    scale,
		hudWidth: hudWidth,
		seed:     seed,
	}
}

// Reset regenerates the starting pattern from seed.
func (g *Game) Reset(seed int64) {
	if err := g.session.Reset(seed); err != nil {
		slog.Error("reset failed", "seed", seed, "err", err)
		return
	}
	g.seed = seed
	g.tickOnce = false
	g.overlay.Invalidate()
	if provider, ok := g.session.(core.ParameterProvider); ok {
		slog.Info("reset", provider.Parameters().Flatten()...)
	}
}

// Update handles per-frame logic and advances the session.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.hud.Update(g.viewWidth())
	g.overlay.Update()

	if (!g.paused || g.tickOnce) && !g.session.Done() {
		g.session.Step()
	}
	g.tickOnce = false
	return nil
}

// Draw renders the current pattern, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.session.Values(), g.session.Channels(), g.scale)
	g.overlay.Draw(screen, g.viewWidth())
	g.hud.Draw(screen, g.viewWidth(), g.size.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewWidth() + g.hudWidth, g.size.H * g.scale
}

func (g *Game) viewWidth() int { return g.size.W * g.scale }
