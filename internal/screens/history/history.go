package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flagquiz/internal/router"
	"github.com/abhisek/flagquiz/internal/screen"
	"github.com/abhisek/flagquiz/internal/store"
	"github.com/abhisek/flagquiz/internal/ui/layout"
	"github.com/abhisek/flagquiz/internal/ui/theme"
)

type historyLoadedMsg struct {
	Sessions  []store.SessionSummaryRecord
	Countries []store.CountryStat
	Err       error
}

// HistoryScreen displays past sessions and per-country accuracy.
type HistoryScreen struct {
	eventRepo     store.EventRepo
	sessions      []store.SessionSummaryRecord
	countries     []store.CountryStat
	selected      int
	showCountries bool
	loaded        bool
	errMsg        string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{eventRepo: eventRepo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: 50})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// Country stats are optional; show sessions even if they fail.
		countries, _ := repo.CountryAccuracy(ctx)
		return historyLoadedMsg{Sessions: sessions, Countries: countries}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	toggle := "Countries"
	if s.showCountries {
		toggle = "Sessions"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: toggle},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.countries = msg.Countries
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.showCountries = !s.showCountries
			s.selected = 0
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < s.rows()-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) rows() int {
	if s.showCountries {
		return len(s.countries)
	}
	return len(s.sessions)
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 && len(s.countries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Play a round!")
	}

	var lines []string
	if s.showCountries {
		lines = s.countryLines()
	} else {
		lines = s.sessionLines()
	}

	// Keep the selection visible when the list is taller than the screen.
	visible := height - 2
	start := 0
	if visible > 0 && s.selected >= visible {
		start = s.selected - visible + 1
	}

	var b strings.Builder
	b.WriteString("\n")
	for i := start; i < len(lines) && (visible <= 0 || i < start+visible); i++ {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "  "
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
			prefix = "> "
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+lines[i])))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) sessionLines() []string {
	lines := make([]string, 0, len(s.sessions))
	for _, sess := range s.sessions {
		dateStr := sess.Timestamp.Format("Jan 02, 2006 15:04")
		durationStr := fmt.Sprintf("%d:%02d", sess.DurationSecs/60, sess.DurationSecs%60)

		player := sess.Player
		if player == "" {
			player = "-"
		}
		lines = append(lines, fmt.Sprintf("%s  %-12s  %-8s  %2d/%d  %s",
			dateStr, player, sess.Region, sess.CorrectAnswers, sess.QuestionsServed, durationStr))
	}
	return lines
}

func (s *HistoryScreen) countryLines() []string {
	lines := make([]string, 0, len(s.countries))
	for _, c := range s.countries {
		lines = append(lines, fmt.Sprintf("%-24s  %3d/%-3d  %3.0f%%",
			c.Country, c.Correct, c.Attempts, c.Accuracy()*100))
	}
	return lines
}
