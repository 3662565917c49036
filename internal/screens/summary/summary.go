package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flagquiz/internal/quiz"
	"github.com/abhisek/flagquiz/internal/router"
	"github.com/abhisek/flagquiz/internal/screen"
	"github.com/abhisek/flagquiz/internal/ui/components"
	"github.com/abhisek/flagquiz/internal/ui/layout"
	"github.com/abhisek/flagquiz/internal/ui/theme"
)

// Result is what the summary screen reports about a finished session.
type Result struct {
	Score    quiz.Score
	Last     *quiz.Result // final answer, nil when resumed straight into the summary
	Duration time.Duration
	Player   string
}

// SummaryScreen displays the final score of a session.
type SummaryScreen struct {
	result  Result
	restart func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. restart builds the screen for a new
// session when the player chooses to play again; nil disables it.
func New(result Result, restart func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{result: result, restart: restart}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Final Score"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Esc", Description: "Home"}}
	if s.restart != nil {
		hints = append([]layout.KeyHint{{Key: "Enter", Description: "Restart"}}, hints...)
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "r":
			if s.restart == nil {
				return s, nil
			}
			next := s.restart()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		case "esc", "q":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

// Message is the final score sentence.
func (s *SummaryScreen) Message() string {
	return fmt.Sprintf("You got %d right out of %d.", s.result.Score.Correct, s.result.Score.Total)
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	cw := components.ContentWidth(width)

	var b strings.Builder

	if res.Last != nil {
		if res.Last.Correct {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Wrong!"))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Final Score"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(s.Message()))
	b.WriteString("\n\n")

	b.WriteString(components.NewMeter(res.Score.Percent()/100, true, cw-20).View())
	b.WriteString("\n\n")

	mins := int(res.Duration.Minutes())
	secs := int(res.Duration.Seconds()) % 60
	details := fmt.Sprintf("Duration: %d:%02d", mins, secs)
	if res.Player != "" {
		details = fmt.Sprintf("Player: %s    %s", res.Player, details)
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(details))

	if s.restart != nil {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Press Enter to play again"))
	}

	return components.Center(components.Panel(b.String(), cw), width, height)
}
