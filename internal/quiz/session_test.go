package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/abhisek/flagquiz/internal/catalog"
)

var exampleFlags = []string{
	"as-Japan", "as-Korea", "as-China", "as-India", "as-Nepal", "as-Laos",
	"as-Iran", "as-Iraq", "as-Oman", "as-Peru", "as-Chad",
}

func testCatalog(t *testing.T, ids []string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New("asia", ids)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

func testSession(t *testing.T, ids []string, seed uint64) *Session {
	t.Helper()
	n := 0
	return New(testCatalog(t, ids),
		WithRand(rand.New(rand.NewPCG(seed, 7))),
		WithIDFunc(func() string {
			n++
			return fmt.Sprintf("session-%d", n)
		}),
	)
}

func startedSession(t *testing.T, ids []string, seed uint64) *Session {
	t.Helper()
	s := testSession(t, ids, seed)
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return s
}

func TestNew_NotStarted(t *testing.T) {
	s := testSession(t, exampleFlags, 1)

	if s.Phase() != PhaseNotStarted {
		t.Errorf("Phase = %v, want %v", s.Phase(), PhaseNotStarted)
	}
	if _, err := s.NextQuestion(); !errors.Is(err, ErrEmptyQuestionQueue) {
		t.Errorf("NextQuestion err = %v, want ErrEmptyQuestionQueue", err)
	}
	if _, err := s.CorrectAnswer(); !errors.Is(err, ErrNoCurrentQuestion) {
		t.Errorf("CorrectAnswer err = %v, want ErrNoCurrentQuestion", err)
	}
	if _, ok := s.CurrentFlag(); ok {
		t.Error("expected no current flag before first question")
	}
}

func TestReset_DrawsTenDistinctCatalogFlags(t *testing.T) {
	cat := testCatalog(t, exampleFlags)
	for seed := uint64(1); seed <= 50; seed++ {
		s := startedSession(t, exampleFlags, seed)

		queue := s.Remaining()
		if len(queue) != QuestionsPerSession {
			t.Fatalf("seed %d: queue length = %d, want %d", seed, len(queue), QuestionsPerSession)
		}
		seen := make(map[string]bool)
		for _, id := range queue {
			if seen[id] {
				t.Errorf("seed %d: flag %q repeated", seed, id)
			}
			seen[id] = true
			if !cat.Contains(id) {
				t.Errorf("seed %d: flag %q not in catalog", seed, id)
			}
		}
	}
}

func TestReset_InsufficientCatalog(t *testing.T) {
	s := testSession(t, exampleFlags[:9], 1)

	err := s.Reset()
	if !errors.Is(err, ErrInsufficientCatalog) {
		t.Fatalf("Reset err = %v, want ErrInsufficientCatalog", err)
	}
	if s.Phase() != PhaseNotStarted {
		t.Errorf("Phase = %v, want %v after failed reset", s.Phase(), PhaseNotStarted)
	}
}

func TestReset_EmptyCatalog(t *testing.T) {
	s := New(catalog.Empty("asia"))
	if err := s.Reset(); !errors.Is(err, ErrInsufficientCatalog) {
		t.Fatalf("Reset err = %v, want ErrInsufficientCatalog", err)
	}
}

func TestReset_ExactlyTenFlagsUsesAll(t *testing.T) {
	s := startedSession(t, exampleFlags[:10], 3)

	got := make(map[string]bool)
	for _, id := range s.Remaining() {
		got[id] = true
	}
	for _, id := range exampleFlags[:10] {
		if !got[id] {
			t.Errorf("expected %q in session", id)
		}
	}
}

func TestReset_ClearsProgress(t *testing.T) {
	s := startedSession(t, exampleFlags, 5)
	firstID := s.ID()

	for i := 0; i < 4; i++ {
		if _, err := s.NextQuestion(); err != nil {
			t.Fatalf("NextQuestion: %v", err)
		}
		answer, _ := s.CorrectAnswer()
		if _, err := s.SubmitAnswer(answer); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if s.QuestionNumber() != 0 {
		t.Errorf("QuestionNumber = %d, want 0", s.QuestionNumber())
	}
	if s.CorrectAnswers() != 0 {
		t.Errorf("CorrectAnswers = %d, want 0", s.CorrectAnswers())
	}
	if _, ok := s.CurrentFlag(); ok {
		t.Error("expected current flag cleared")
	}
	if len(s.Remaining()) != QuestionsPerSession {
		t.Errorf("Remaining = %d, want %d", len(s.Remaining()), QuestionsPerSession)
	}
	if s.ID() == firstID {
		t.Error("expected a new session ID after reset")
	}
}

func TestNextQuestion_ServesQueueFrontToBack(t *testing.T) {
	s := startedSession(t, exampleFlags, 9)
	queue := s.Remaining()

	for i, want := range queue {
		got, err := s.NextQuestion()
		if err != nil {
			t.Fatalf("NextQuestion %d: %v", i, err)
		}
		if got != want {
			t.Errorf("question %d = %q, want %q", i+1, got, want)
		}
		if cur, ok := s.CurrentFlag(); !ok || cur != got {
			t.Errorf("CurrentFlag = %q, want %q", cur, got)
		}
		if s.QuestionNumber() != i+1 {
			t.Errorf("QuestionNumber = %d, want %d", s.QuestionNumber(), i+1)
		}
		for _, rest := range s.Remaining() {
			if rest == got {
				t.Errorf("served flag %q still queued", got)
			}
		}
	}
}

func TestNextQuestion_CompleteAfterTen(t *testing.T) {
	s := startedSession(t, exampleFlags, 11)

	for i := 0; i < QuestionsPerSession; i++ {
		if s.IsComplete() {
			t.Fatalf("complete after only %d questions", i)
		}
		if _, err := s.NextQuestion(); err != nil {
			t.Fatalf("NextQuestion %d: %v", i+1, err)
		}
	}

	if !s.IsComplete() {
		t.Error("expected session complete after 10 questions")
	}
	if s.Phase() != PhaseComplete {
		t.Errorf("Phase = %v, want %v", s.Phase(), PhaseComplete)
	}
	if _, err := s.NextQuestion(); !errors.Is(err, ErrEmptyQuestionQueue) {
		t.Errorf("11th NextQuestion err = %v, want ErrEmptyQuestionQueue", err)
	}
}

func TestCorrectAnswer_IsSuffixAfterFirstDelimiter(t *testing.T) {
	ids := append([]string{"Asia-Timor-Leste"}, exampleFlags[:9]...)
	s := startedSession(t, ids, 2)

	for i := 0; i < QuestionsPerSession; i++ {
		flag, err := s.NextQuestion()
		if err != nil {
			t.Fatalf("NextQuestion: %v", err)
		}
		answer, err := s.CorrectAnswer()
		if err != nil {
			t.Fatalf("CorrectAnswer: %v", err)
		}
		want := flag[strings.Index(flag, "-")+1:]
		if answer != want {
			t.Errorf("CorrectAnswer(%q) = %q, want %q", flag, answer, want)
		}
	}
}

func TestAnswerOptions_ThreeDistinctIncludingAnswer(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		s := startedSession(t, exampleFlags, seed)
		for i := 0; i < QuestionsPerSession; i++ {
			if _, err := s.NextQuestion(); err != nil {
				t.Fatalf("NextQuestion: %v", err)
			}
			answer, _ := s.CorrectAnswer()
			options, err := s.AnswerOptions()
			if err != nil {
				t.Fatalf("AnswerOptions: %v", err)
			}
			if len(options) != OptionsPerQuestion {
				t.Fatalf("options = %v, want %d entries", options, OptionsPerQuestion)
			}

			hasAnswer := false
			seen := make(map[string]bool)
			for _, o := range options {
				key := strings.ToLower(o)
				if seen[key] {
					t.Errorf("duplicate option %q in %v", o, options)
				}
				seen[key] = true
				if o == answer {
					hasAnswer = true
				}
			}
			if !hasAnswer {
				t.Errorf("options %v missing correct answer %q", options, answer)
			}
		}
	}
}

func TestAnswerOptions_DeterministicUnderSeed(t *testing.T) {
	run := func() [][]string {
		s := startedSession(t, exampleFlags, 42)
		var all [][]string
		for i := 0; i < QuestionsPerSession; i++ {
			if _, err := s.NextQuestion(); err != nil {
				t.Fatalf("NextQuestion: %v", err)
			}
			options, err := s.AnswerOptions()
			if err != nil {
				t.Fatalf("AnswerOptions: %v", err)
			}
			all = append(all, options)
		}
		return all
	}

	a, b := run(), run()
	for i := range a {
		if strings.Join(a[i], ",") != strings.Join(b[i], ",") {
			t.Errorf("question %d: options %v != %v under the same seed", i+1, a[i], b[i])
		}
	}
}

func TestAnswerOptions_InsufficientDistractors(t *testing.T) {
	ids := []string{
		"a0-Japan", "a1-Japan", "a2-Japan", "a3-Japan", "a4-Japan", "a5-Japan",
		"b0-Korea", "b1-Korea", "b2-Korea", "b3-Korea", "b4-Korea",
	}
	s := startedSession(t, ids, 1)

	if _, err := s.NextQuestion(); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	if _, err := s.AnswerOptions(); !errors.Is(err, ErrInsufficientDistractors) {
		t.Errorf("AnswerOptions err = %v, want ErrInsufficientDistractors", err)
	}
}

func TestAnswerOptions_NoCurrentQuestion(t *testing.T) {
	s := startedSession(t, exampleFlags, 1)
	if _, err := s.AnswerOptions(); !errors.Is(err, ErrNoCurrentQuestion) {
		t.Errorf("AnswerOptions err = %v, want ErrNoCurrentQuestion", err)
	}
}

func TestAnswerOptions_ExcludesCaseVariantsOfAnswer(t *testing.T) {
	ids := append([]string{"jp-JAPAN", "as-japan"}, exampleFlags...)
	for seed := uint64(1); seed <= 30; seed++ {
		s := startedSession(t, ids, seed)
		for i := 0; i < QuestionsPerSession; i++ {
			if _, err := s.NextQuestion(); err != nil {
				t.Fatalf("NextQuestion: %v", err)
			}
			answer, _ := s.CorrectAnswer()
			options, err := s.AnswerOptions()
			if err != nil {
				t.Fatalf("AnswerOptions: %v", err)
			}
			for _, o := range options {
				if o != answer && strings.EqualFold(o, answer) {
					t.Errorf("distractor %q is a case variant of answer %q", o, answer)
				}
			}
		}
	}
}

func TestAnswerOptions_AnswerPositionIsUniform(t *testing.T) {
	s := startedSession(t, exampleFlags, 99)
	if _, err := s.NextQuestion(); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	answer, _ := s.CorrectAnswer()

	const draws = 3000
	var positions [OptionsPerQuestion]int
	for i := 0; i < draws; i++ {
		options, err := s.AnswerOptions()
		if err != nil {
			t.Fatalf("AnswerOptions: %v", err)
		}
		for pos, o := range options {
			if o == answer {
				positions[pos]++
			}
		}
	}

	for pos, n := range positions {
		if n < 850 || n > 1150 {
			t.Errorf("answer at position %d in %d/%d draws, want about a third", pos, n, draws)
		}
	}
}

func TestSubmitAnswer_CorrectAndIncorrect(t *testing.T) {
	s := startedSession(t, exampleFlags, 4)

	if _, err := s.NextQuestion(); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	answer, _ := s.CorrectAnswer()
	res, err := s.SubmitAnswer(answer)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !res.Correct {
		t.Error("expected correct answer to score")
	}
	if res.Answer != answer || res.Guess != answer {
		t.Errorf("Result = %+v, want answer and guess %q", res, answer)
	}

	if _, err := s.NextQuestion(); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	res, err = s.SubmitAnswer("definitely-not-a-country")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if res.Correct {
		t.Error("expected wrong answer not to score")
	}

	if got := s.Score(); got.Correct != 1 || got.Total != QuestionsPerSession {
		t.Errorf("Score = %+v, want {1 %d}", got, QuestionsPerSession)
	}
	if s.QuestionNumber() != 2 {
		t.Errorf("QuestionNumber = %d, want 2 (submit must not advance)", s.QuestionNumber())
	}
}

// Scoring is case-sensitive while distractor filtering is not.
func TestSubmitAnswer_IsCaseSensitive(t *testing.T) {
	s := startedSession(t, exampleFlags, 6)
	if _, err := s.NextQuestion(); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	answer, _ := s.CorrectAnswer()

	res, err := s.SubmitAnswer(strings.ToLower(answer))
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if res.Correct {
		t.Errorf("lower-cased %q scored as correct", answer)
	}
}

func TestSubmitAnswer_OnlyOncePerQuestion(t *testing.T) {
	s := startedSession(t, exampleFlags, 8)
	if _, err := s.NextQuestion(); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	answer, _ := s.CorrectAnswer()

	if _, err := s.SubmitAnswer(answer); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if _, err := s.SubmitAnswer(answer); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("second SubmitAnswer err = %v, want ErrAlreadyAnswered", err)
	}
	if s.CorrectAnswers() != 1 {
		t.Errorf("CorrectAnswers = %d, want 1", s.CorrectAnswers())
	}
}

func TestSubmitAnswer_BeforeFirstQuestion(t *testing.T) {
	s := startedSession(t, exampleFlags, 1)
	if _, err := s.SubmitAnswer("Japan"); !errors.Is(err, ErrNoCurrentQuestion) {
		t.Errorf("SubmitAnswer err = %v, want ErrNoCurrentQuestion", err)
	}
}

func TestScore_NeverExceedsQuestionNumber(t *testing.T) {
	s := startedSession(t, exampleFlags, 13)
	prev := 0

	for i := 0; i < QuestionsPerSession; i++ {
		if _, err := s.NextQuestion(); err != nil {
			t.Fatalf("NextQuestion: %v", err)
		}
		guess := "wrong"
		if i%3 != 0 {
			guess, _ = s.CorrectAnswer()
		}
		if _, err := s.SubmitAnswer(guess); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}

		got := s.CorrectAnswers()
		if got < prev {
			t.Errorf("score decreased from %d to %d", prev, got)
		}
		if got > s.QuestionNumber() {
			t.Errorf("score %d exceeds question number %d", got, s.QuestionNumber())
		}
		prev = got
	}

	if s.Score().Correct != 6 {
		t.Errorf("final score = %d, want 6", s.Score().Correct)
	}
}

func TestExampleCatalog(t *testing.T) {
	s := startedSession(t, exampleFlags, 2024)

	flag, err := s.NextQuestion()
	if err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	answer, err := s.CorrectAnswer()
	if err != nil {
		t.Fatalf("CorrectAnswer: %v", err)
	}
	if answer != strings.TrimPrefix(flag, "as-") {
		t.Errorf("CorrectAnswer = %q for flag %q", answer, flag)
	}

	options, err := s.AnswerOptions()
	if err != nil {
		t.Fatalf("AnswerOptions: %v", err)
	}
	countries := make(map[string]bool)
	for _, id := range exampleFlags {
		countries[strings.TrimPrefix(id, "as-")] = true
	}
	for _, o := range options {
		if !countries[o] {
			t.Errorf("option %q not from catalog", o)
		}
	}
}

func TestScore_Percent(t *testing.T) {
	tests := []struct {
		score Score
		want  float64
	}{
		{Score{Correct: 0, Total: 10}, 0},
		{Score{Correct: 7, Total: 10}, 70},
		{Score{Correct: 10, Total: 10}, 100},
		{Score{}, 0},
	}
	for _, tt := range tests {
		if got := tt.score.Percent(); got != tt.want {
			t.Errorf("Percent(%+v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestPhase_String(t *testing.T) {
	if PhaseInProgress.String() != "in-progress" {
		t.Errorf("PhaseInProgress = %q", PhaseInProgress.String())
	}
	if Phase(9).String() != "phase(9)" {
		t.Errorf("Phase(9) = %q", Phase(9).String())
	}
}
