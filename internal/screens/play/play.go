package play

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/flagquiz/internal/catalog"
	"github.com/abhisek/flagquiz/internal/quiz"
	"github.com/abhisek/flagquiz/internal/router"
	"github.com/abhisek/flagquiz/internal/screen"
	"github.com/abhisek/flagquiz/internal/screens/summary"
	"github.com/abhisek/flagquiz/internal/store"
	"github.com/abhisek/flagquiz/internal/ui/components"
	"github.com/abhisek/flagquiz/internal/ui/layout"
)

// DefaultFeedbackDelay is how long Correct!/Wrong! stays up before the next flag.
const DefaultFeedbackDelay = time.Second

// snapshotsKept bounds the snapshots table.
const snapshotsKept = 5

// Deps are the collaborators of a quiz run.
type Deps struct {
	Catalog       *catalog.Catalog
	EventRepo     store.EventRepo
	SnapRepo      store.SnapshotRepo
	Rand          quiz.Rand
	FeedbackDelay time.Duration
	Player        string
	Log           *zap.Logger
}

// PlayScreen implements screen.Screen for an active quiz session.
type PlayScreen struct {
	deps    Deps
	session *quiz.Session
	resume  *store.Snapshot

	choice        components.MultiChoice
	flag          string
	lastResult    *quiz.Result
	results       []bool
	showFeedback  bool
	questionStart time.Time
	startTime     time.Time
	errMsg        string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)

// New creates a PlayScreen. A non-nil resume snapshot continues a suspended
// session; otherwise a fresh session is drawn from the catalog.
func New(deps Deps, resume *store.Snapshot) *PlayScreen {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.FeedbackDelay <= 0 {
		deps.FeedbackDelay = DefaultFeedbackDelay
	}

	var opts []quiz.Option
	if deps.Rand != nil {
		opts = append(opts, quiz.WithRand(deps.Rand))
	}

	return &PlayScreen{
		deps:    deps,
		session: quiz.New(deps.Catalog, opts...),
		resume:  resume,
	}
}

// Session exposes the running session.
func (s *PlayScreen) Session() *quiz.Session {
	return s.session
}

func (s *PlayScreen) Init() tea.Cmd {
	s.startTime = time.Now()

	if s.resume != nil {
		if err := s.session.Restore(s.resume.Data.Session); err != nil {
			s.deps.Log.Warn("discarding unusable snapshot", zap.Error(err))
			s.errMsg = err.Error()
			return s.clearSnapshot()
		}
		s.deps.Log.Info("session resumed",
			zap.String("session_id", s.session.ID()),
			zap.Int("question", s.session.QuestionNumber()))

		if s.session.QuestionNumber() > 0 && !s.session.Answered() {
			return s.loadCurrent()
		}
		if s.session.IsComplete() {
			return s.finish()
		}
		return s.loadNext()
	}

	if err := s.session.Reset(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.deps.Log.Info("session started",
		zap.String("session_id", s.session.ID()),
		zap.String("region", s.deps.Catalog.Region()),
		zap.Int("catalog_size", s.deps.Catalog.Len()))

	return tea.Batch(
		s.recordSession(store.ActionStart),
		s.clearSnapshot(),
		s.loadNext(),
	)
}

func (s *PlayScreen) Title() string {
	return "Quiz"
}

func (s *PlayScreen) Status() string {
	score := s.session.Score()
	return scoreLine(score)
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Home"}}
	}
	if s.showFeedback {
		return []layout.KeyHint{{Key: "Esc", Description: "Save & quit"}}
	}
	return []layout.KeyHint{
		{Key: "1-3", Description: "Answer"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Save & quit"},
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionLoadedMsg:
		return s.handleQuestionLoaded(msg)

	case feedbackDoneMsg:
		return s.handleFeedbackDone(msg)

	case persistedMsg:
		if msg.Err != nil {
			s.deps.Log.Warn("store write failed", zap.String("op", msg.Op), zap.Error(msg.Err))
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	// Error state: any key goes home.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}

	if msg.String() == "esc" {
		return s, s.suspend()
	}

	if s.showFeedback || s.flag == "" {
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if guess, ok := s.choice.Chosen(); ok {
		return s.submit(guess)
	}
	return s, cmd
}

// loadNext serves the next flag. It runs synchronously in Update: the
// session is owned by the update loop.
func (s *PlayScreen) loadNext() tea.Cmd {
	flag, err := s.session.NextQuestion()
	if err != nil {
		return func() tea.Msg { return questionLoadedMsg{Err: err} }
	}
	return s.optionsFor(flag)
}

// loadCurrent re-serves the question that was on screen when the session
// was suspended.
func (s *PlayScreen) loadCurrent() tea.Cmd {
	flag, _ := s.session.CurrentFlag()
	return s.optionsFor(flag)
}

func (s *PlayScreen) optionsFor(flag string) tea.Cmd {
	options, err := s.session.AnswerOptions()
	msg := questionLoadedMsg{Flag: flag, Options: options, Err: err}
	return func() tea.Msg { return msg }
}

func (s *PlayScreen) handleQuestionLoaded(msg questionLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		s.deps.Log.Error("cannot serve question", zap.Error(msg.Err))
		return s, nil
	}

	s.flag = msg.Flag
	s.choice = components.NewMultiChoice("", msg.Options)
	s.showFeedback = false
	s.lastResult = nil
	s.questionStart = time.Now()
	return s, nil
}

func (s *PlayScreen) submit(guess string) (screen.Screen, tea.Cmd) {
	res, err := s.session.SubmitAnswer(guess)
	if err != nil {
		if errors.Is(err, quiz.ErrAlreadyAnswered) {
			return s, nil
		}
		s.errMsg = err.Error()
		return s, nil
	}

	for i, opt := range s.choice.Options {
		if opt == res.Answer {
			s.choice.Reveal(i)
		}
	}
	s.lastResult = &res
	s.results = append(s.results, res.Correct)
	s.showFeedback = true

	answered := answeredMsg{
		Result:   res,
		Question: s.session.QuestionNumber(),
		Flag:     s.flag,
		TimeMs:   time.Since(s.questionStart).Milliseconds(),
	}
	cmds := []tea.Cmd{s.recordAnswer(answered)}

	if s.session.IsComplete() {
		cmds = append(cmds, s.finish())
		return s, tea.Batch(cmds...)
	}

	cmds = append(cmds, s.saveSnapshot(), feedbackCmd(s.deps.FeedbackDelay, answered.Question))
	return s, tea.Batch(cmds...)
}

func (s *PlayScreen) handleFeedbackDone(msg feedbackDoneMsg) (screen.Screen, tea.Cmd) {
	if !s.showFeedback || msg.Question != s.session.QuestionNumber() {
		return s, nil
	}
	return s, s.loadNext()
}

// finish records the end of the session and shows the final score.
func (s *PlayScreen) finish() tea.Cmd {
	score := s.session.Score()
	s.deps.Log.Info("session complete",
		zap.String("session_id", s.session.ID()),
		zap.Int("correct", score.Correct))

	deps := s.deps
	restart := func() screen.Screen { return New(deps, nil) }
	sum := summary.New(summary.Result{
		Score:    score,
		Last:     s.lastResult,
		Duration: time.Since(s.startTime),
		Player:   s.deps.Player,
	}, restart)

	return tea.Batch(
		s.recordSession(store.ActionEnd),
		s.clearSnapshot(),
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} },
	)
}

// Suspend saves an in-progress session before the program quits.
func (s *PlayScreen) Suspend() tea.Cmd {
	if s.session.Phase() != quiz.PhaseInProgress {
		return nil
	}
	return s.suspend()
}

// suspend saves the session and returns home. Both writes complete before
// the home screen reloads so it sees the fresh snapshot.
func (s *PlayScreen) suspend() tea.Cmd {
	if s.session.Phase() != quiz.PhaseInProgress {
		return func() tea.Msg { return router.PopToRootMsg{} }
	}
	s.deps.Log.Info("session suspended",
		zap.String("session_id", s.session.ID()),
		zap.Int("question", s.session.QuestionNumber()))

	record := s.recordSession(store.ActionSuspend)
	save := s.saveSnapshot()
	log := s.deps.Log
	return func() tea.Msg {
		for _, cmd := range []tea.Cmd{record, save} {
			if cmd == nil {
				continue
			}
			if msg, ok := cmd().(persistedMsg); ok && msg.Err != nil {
				log.Warn("store write failed", zap.String("op", msg.Op), zap.Error(msg.Err))
			}
		}
		return router.PopToRootMsg{}
	}
}

func (s *PlayScreen) recordSession(action string) tea.Cmd {
	repo := s.deps.EventRepo
	if repo == nil {
		return nil
	}
	score := s.session.Score()
	data := store.SessionEventData{
		SessionID:       s.session.ID(),
		Player:          s.deps.Player,
		Region:          s.deps.Catalog.Region(),
		Action:          action,
		QuestionsServed: s.session.QuestionNumber(),
		CorrectAnswers:  score.Correct,
		DurationSecs:    int(time.Since(s.startTime).Seconds()),
	}
	return func() tea.Msg {
		err := repo.AppendSessionEvent(context.Background(), data)
		return persistedMsg{Op: "session " + action, Err: err}
	}
}

func (s *PlayScreen) recordAnswer(a answeredMsg) tea.Cmd {
	repo := s.deps.EventRepo
	if repo == nil {
		return nil
	}
	data := store.AnswerEventData{
		SessionID:      s.session.ID(),
		QuestionNumber: a.Question,
		FlagID:         a.Flag,
		Country:        a.Result.Answer,
		Guess:          a.Result.Guess,
		Correct:        a.Result.Correct,
		TimeMs:         a.TimeMs,
	}
	return func() tea.Msg {
		err := repo.AppendAnswerEvent(context.Background(), data)
		return persistedMsg{Op: "answer", Err: err}
	}
}

func (s *PlayScreen) saveSnapshot() tea.Cmd {
	repo := s.deps.SnapRepo
	if repo == nil {
		return nil
	}
	snap := &store.Snapshot{
		Timestamp: time.Now(),
		Data: store.SnapshotData{
			Version: store.SnapshotVersion,
			Player:  s.deps.Player,
			Region:  s.deps.Catalog.Region(),
			Session: s.session.Snapshot(),
		},
	}
	return func() tea.Msg {
		ctx := context.Background()
		if err := repo.Save(ctx, snap); err != nil {
			return persistedMsg{Op: "snapshot", Err: err}
		}
		return persistedMsg{Op: "snapshot", Err: repo.Prune(ctx, snapshotsKept)}
	}
}

func (s *PlayScreen) clearSnapshot() tea.Cmd {
	repo := s.deps.SnapRepo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		return persistedMsg{Op: "clear snapshot", Err: repo.Clear(context.Background())}
	}
}

// feedbackCmd fires once the feedback delay for question has passed.
func feedbackCmd(delay time.Duration, question int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{Question: question}
	})
}
