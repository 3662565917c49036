package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flagquiz/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	CompactHeightThreshold = 30
)

// AppLabel is shown at the left of the header on every screen.
const AppLabel = "⚑ Flag Quiz"

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border).
	Padding(0, 1)

// barInner is the text width inside a bar of the given outer width.
func barInner(width int) int {
	return max(width-bar.GetHorizontalFrameSize(), 0)
}

// RenderHeader renders the app label, the screen title centered and status,
// e.g. the running score, on the right.
func RenderHeader(title, status string, width int) string {
	inner := barInner(width)
	third := inner / 3

	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Width(third).Render(AppLabel)
	right := lipgloss.NewStyle().Foreground(theme.Accent).
		Width(third).Align(lipgloss.Right).Render(status)
	center := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Width(inner - 2*third).Align(lipgloss.Center).Render(title)

	return bar.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, center, right))
}

// RenderFooter renders key hints. Hints that do not fit are dropped from the
// end.
func RenderFooter(hints []KeyHint, width int) string {
	inner := barInner(width)
	sep := lipgloss.NewStyle().Foreground(theme.Border).Render("  ·  ")

	var content string
	for _, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		next := part
		if content != "" {
			next = content + sep + part
		}
		if lipgloss.Width(next) > inner {
			break
		}
		content = next
	}

	return bar.Width(width).Render(content)
}

// RenderFrame stacks header, content and footer; content is padded to fill
// the height left between them.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)
	return strings.Join([]string{header, body, footer}, "\n")
}
