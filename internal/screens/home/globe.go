package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flagquiz/internal/ui/theme"
)

// GlobeVariant selects which globe art to display.
type GlobeVariant int

const (
	GlobeIdle    GlobeVariant = iota
	GlobeWaiting              // a suspended session can be resumed
)

const globeIdle = `  .-""""-.
 / ⚑  ~~  \
|  ~~   ~~ |
 \   ~~   /
  '-....-'`

const globeWaiting = `  .-""""-.
 / ⚑  ~~  \  ▶
|  ~~   ~~ |
 \   ~~   /
  '-....-'`

// RenderGlobe returns the globe art for the given variant.
func RenderGlobe(variant GlobeVariant) string {
	art := globeIdle
	fg := theme.Primary
	if variant == GlobeWaiting {
		art = globeWaiting
		fg = theme.Secondary
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

func renderGlobeBox(variant GlobeVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderGlobe(variant))
}
