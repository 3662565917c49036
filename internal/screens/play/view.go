package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/flagquiz/internal/catalog"
	"github.com/abhisek/flagquiz/internal/quiz"
	"github.com/abhisek/flagquiz/internal/ui/components"
	"github.com/abhisek/flagquiz/internal/ui/theme"
)

var regionTitle = cases.Title(language.English)

func scoreLine(score quiz.Score) string {
	return fmt.Sprintf("✓ %d/%d", score.Correct, score.Total)
}

func (s *PlayScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.flag == "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Drawing flags...")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	n := s.session.QuestionNumber()
	b.WriteString(theme.Title.Width(cw).Render(
		fmt.Sprintf("Question %d of %d", n, quiz.QuestionsPerSession)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center, components.Track{Marks: s.trackMarks()}.View()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center, s.renderFlagCard(cw)))
	b.WriteString("\n\n")

	b.WriteString(theme.Subtitle.Width(cw).Render("Which country does this flag belong to?"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center, s.choice.View()))
	b.WriteString("\n")

	b.WriteString(s.renderFeedback(cw))

	return components.Center(b.String(), width, height)
}

// trackMarks marks each question of the round. results only covers answers
// given since this screen opened, so earlier answers of a resumed round show
// as plain answered cells.
func (s *PlayScreen) trackMarks() []components.Mark {
	marks := make([]components.Mark, quiz.QuestionsPerSession)
	n := s.session.QuestionNumber()
	answered := n - 1
	if s.session.Answered() {
		answered = n
	}
	first := answered - len(s.results)
	for i := 0; i < answered; i++ {
		switch {
		case i < first:
			marks[i] = components.MarkAnswered
		case s.results[i-first]:
			marks[i] = components.MarkCorrect
		default:
			marks[i] = components.MarkWrong
		}
	}
	if n > 0 && !s.session.Answered() {
		marks[n-1] = components.MarkCurrent
	}
	return marks
}

// renderFlagCard draws the flag placeholder. Only the region and the
// identifier prefix are shown; the country name is the answer.
func (s *PlayScreen) renderFlagCard(cw int) string {
	cat := s.session.Catalog()
	region := regionTitle.String(cat.Region())

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.RegionAccent(cat.Region())).Bold(true).Render("⚑"),
		lipgloss.NewStyle().Foreground(theme.Text).Render(region),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(catalog.Prefix(s.flag) + catalog.Delimiter + "?" + catalog.ImageExt),
	}
	return theme.FlagCard(cat.Region()).Width(min(cw, 30)).Render(strings.Join(lines, "\n"))
}

func (s *PlayScreen) renderFeedback(cw int) string {
	if !s.showFeedback || s.lastResult == nil {
		return ""
	}
	if s.lastResult.Correct {
		return theme.Correct.Width(cw).Align(lipgloss.Center).Render("Correct!")
	}
	return theme.Incorrect.Width(cw).Align(lipgloss.Center).Render("Wrong!")
}

func renderError(width, height int, msg string) string {
	content := lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Render("Cannot continue the quiz") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render(msg) +
		"\n\n" +
		theme.Hint.Render("Press any key to go home")
	return components.Center(content, width, height)
}
