package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flagquiz/internal/ui/theme"
)

// Meter is a horizontal bar filled to Fraction (0-1).
type Meter struct {
	Fraction    float64
	ShowPercent bool
	Width       int
}

// NewMeter creates a meter Width cells wide, including the percentage.
func NewMeter(fraction float64, showPercent bool, width int) Meter {
	return Meter{Fraction: fraction, ShowPercent: showPercent, Width: width}
}

func (m Meter) View() string {
	cells := m.Width
	if m.ShowPercent {
		cells -= len("  100%")
	}
	cells = max(cells, 4)

	filled := min(max(int(float64(cells)*m.Fraction), 0), cells)
	bar := theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", cells-filled))

	if !m.ShowPercent {
		return bar
	}
	pct := int(m.Fraction*100 + 0.5)
	return bar + lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %3d%%", pct))
}

// Mark is the state of one question in a Track.
type Mark int

const (
	MarkPending Mark = iota
	MarkCurrent
	MarkCorrect
	MarkWrong
	MarkAnswered // answered in an earlier run; the result was not kept
)

var markGlyphs = map[Mark]string{
	MarkPending:  theme.TrackPending.Render("○"),
	MarkCurrent:  theme.TrackCurrent.Render("●"),
	MarkCorrect:  theme.Correct.Render("✓"),
	MarkWrong:    theme.Incorrect.Render("✗"),
	MarkAnswered: theme.TrackPending.Render("●"),
}

// Track renders one cell per question of a round.
type Track struct {
	Marks []Mark
}

func (t Track) View() string {
	cells := make([]string, len(t.Marks))
	for i, m := range t.Marks {
		cells[i] = markGlyphs[m]
	}
	return strings.Join(cells, " ")
}
