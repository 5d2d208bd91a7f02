//go:build !ebiten

package app

import (
	"fmt"

	"blue-noise/internal/core"
)

// Game stands in for the pattern viewer when the ebiten tag is absent.
type Game struct{}

// New panics: the pattern viewer needs the ebiten build tag.
func New(core.Session, int, int, int64) *Game {
	panic("app.New: the pattern viewer requires building with the 'ebiten' tag")
}

// Reset does nothing without a viewer.
func (g *Game) Reset(int64) {}

// Update reports that the viewer was not compiled in.
func (g *Game) Update() error {
	return fmt.Errorf("app.Game.Update: pattern viewer not built (missing 'ebiten' tag)")
}

// Draw does nothing without a viewer.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
