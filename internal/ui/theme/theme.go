package theme

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Palette
var (
	Primary   = lipgloss.Color("#2563EB") // atlas blue
	Secondary = lipgloss.Color("#14B8A6") // sea teal
	Accent    = lipgloss.Color("#F59E0B") // gold
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// regionAccents colours the flag card by asset region.
var regionAccents = map[string]color.Color{
	"africa":   lipgloss.Color("#EAB308"),
	"americas": lipgloss.Color("#EF4444"),
	"asia":     lipgloss.Color("#F59E0B"),
	"europe":   lipgloss.Color("#3B82F6"),
	"oceania":  lipgloss.Color("#06B6D4"),
}

// RegionAccent returns the accent colour of region, Accent for unknown ones.
func RegionAccent(region string) color.Color {
	if c, ok := regionAccents[strings.ToLower(region)]; ok {
		return c
	}
	return Accent
}

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Align(lipgloss.Center).
		Padding(1, 2)
)

// FlagCard frames the flag placeholder in the colour of its region.
func FlagCard(region string) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(RegionAccent(region)).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(1, 4)
}

// Answer states
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Progress
var (
	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)

	TrackCurrent = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	TrackPending = lipgloss.NewStyle().Foreground(TextDim)
)

// Buttons
var (
	ButtonActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(BgDark).
			Background(Accent).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(0, 1)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)
)
