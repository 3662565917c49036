package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flagquiz/internal/quiz"
	"github.com/abhisek/flagquiz/internal/router"
	"github.com/abhisek/flagquiz/internal/screen"
)

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                              { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (stubScreen) View(int, int) string                       { return "" }
func (stubScreen) Title() string                              { return "stub" }

func testResult() Result {
	return Result{
		Score:    quiz.Score{Correct: 7, Total: 10},
		Last:     &quiz.Result{Guess: "Japan", Answer: "Japan", Correct: true},
		Duration: 95 * time.Second,
		Player:   "ada",
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult(), nil)
	if s.Title() != "Final Score" {
		t.Errorf("Title = %q, want %q", s.Title(), "Final Score")
	}
}

func TestSummaryScreen_Message(t *testing.T) {
	s := New(testResult(), nil)
	if got := s.Message(); got != "You got 7 right out of 10." {
		t.Errorf("Message = %q", got)
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testResult(), func() screen.Screen { return stubScreen{} })
	view := s.View(80, 30)

	for _, want := range []string{"Final Score", "You got 7 right out of 10.", "Correct!", "1:35", "ada", "70%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_EnterRestarts(t *testing.T) {
	built := 0
	s := New(testResult(), func() screen.Screen {
		built++
		return stubScreen{}
	})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil || built != 1 {
		t.Errorf("expected restart screen to be built once, built %d", built)
	}
}

func TestSummaryScreen_EnterWithoutRestart(t *testing.T) {
	s := New(testResult(), nil)
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected no command when restart is disabled")
	}
}

func TestSummaryScreen_EscGoesHome(t *testing.T) {
	s := New(testResult(), nil)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Errorf("expected PopToRootMsg, got %T", cmd())
	}
}
