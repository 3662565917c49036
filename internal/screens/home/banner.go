package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flagquiz/internal/ui/theme"
)

const bannerFull = `█▀▀ █   ▄▀█ █▀▀   █▀█ █ █ █ ▀█
█▀  █▄▄ █▀█ █▄█   ▀▀█ █▄█ █ █▄`

const bannerCompact = "F · L · A · G   Q · U · I · Z"

func renderBanner(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	art := bannerFull
	if compact {
		art = bannerCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the best score, saved session and catalog size in
// a double-bordered box.
func renderStatsBar(best, savedAt, flags, cw int, compact bool) string {
	bestStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	savedStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	flagStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			bestStyle.Render(fmt.Sprintf("★%d", best)),
			savedText(savedAt, true, savedStyle, dimStyle),
			flagStyle.Render(fmt.Sprintf("⚑%d", flags)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			bestStyle.Render(fmt.Sprintf("★ BEST %d/10", best)),
			savedText(savedAt, false, savedStyle, dimStyle),
			flagStyle.Render(fmt.Sprintf("⚑ %d FLAGS", flags)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func savedText(question int, compact bool, active, dim lipgloss.Style) string {
	if question == 0 {
		if compact {
			return dim.Render("▶-")
		}
		return dim.Render("▶ NO SAVE")
	}
	if compact {
		return active.Render(fmt.Sprintf("▶Q%d", question))
	}
	return active.Render(fmt.Sprintf("▶ SAVED AT Q%d", question))
}

func renderPlayerLine(input string, focused bool, cw int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Player ")
	if focused {
		label = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Player ")
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(label + input)
}

func renderNotice(msg string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + msg)
}

// renderFrame wraps content in a double border, centered in the given area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
