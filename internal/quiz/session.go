package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/flagquiz/internal/catalog"
)

// QuestionsPerSession is the number of flags asked in one session.
const QuestionsPerSession = 10

// OptionsPerQuestion is the number of candidate country names shown per flag.
const OptionsPerQuestion = 3

var (
	// ErrEmptyQuestionQueue is returned by NextQuestion when no questions remain.
	ErrEmptyQuestionQueue = errors.New("no questions remaining in session")

	// ErrNoCurrentQuestion is returned when an operation needs a question on screen.
	ErrNoCurrentQuestion = errors.New("no current question")

	// ErrInsufficientCatalog is returned by Reset when the catalog cannot fill a session.
	ErrInsufficientCatalog = errors.New("catalog has too few flags for a session")

	// ErrInsufficientDistractors is returned by AnswerOptions when fewer than
	// two incorrect country names are available.
	ErrInsufficientDistractors = errors.New("catalog has too few countries for answer options")

	// ErrAlreadyAnswered is returned when the current question was already scored.
	ErrAlreadyAnswered = errors.New("current question already answered")
)

// Rand is the random source used for sampling and shuffling.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Phase is the lifecycle phase of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota // Reset never called
	PhaseInProgress              // Questions remain to be served or scored
	PhaseComplete                // All questions served
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseInProgress:
		return "in-progress"
	case PhaseComplete:
		return "complete"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Score is the running result of a session.
type Score struct {
	Correct int
	Total   int
}

// Percent returns the share of correct answers in the range 0-100.
func (s Score) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total) * 100
}

// Result is the outcome of a submitted answer.
type Result struct {
	Guess   string
	Answer  string
	Correct bool
}

// Session holds the state of one flag quiz run: the question queue, the flag
// currently on screen and the score so far. It is not safe for concurrent use.
type Session struct {
	catalog *catalog.Catalog
	rng     Rand
	newID   func() string

	id             string
	correctAnswers int
	questionNumber int
	queue          []string
	currentFlag    string
	answered       bool
}

// Option configures a Session.
type Option func(*Session)

// WithRand injects the random source. Use a seeded source for deterministic runs.
func WithRand(r Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithIDFunc overrides the session ID generator.
func WithIDFunc(f func() string) Option {
	return func(s *Session) { s.newID = f }
}

// NewRand returns a PCG source seeded with seed, or with the clock when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// New creates a session bound to cat. Call Reset before serving questions.
func New(cat *catalog.Catalog, opts ...Option) *Session {
	s := &Session{
		catalog: cat,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRand(0)
	}
	return s
}

// Reset starts a new run: the score and question counter go back to zero, the
// current flag is cleared and ten distinct flags are drawn from the catalog.
// On error the session is left unchanged.
func (s *Session) Reset() error {
	ids := s.catalog.IDs()
	if len(ids) < QuestionsPerSession {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientCatalog, len(ids), QuestionsPerSession)
	}

	sampleInPlace(s.rng, ids, QuestionsPerSession)
	queue := make([]string, QuestionsPerSession)
	copy(queue, ids[:QuestionsPerSession])

	s.id = s.newID()
	s.correctAnswers = 0
	s.questionNumber = 0
	s.queue = queue
	s.currentFlag = ""
	s.answered = false
	return nil
}

// NextQuestion serves the next flag and makes it the current question.
func (s *Session) NextQuestion() (string, error) {
	if len(s.queue) == 0 {
		return "", ErrEmptyQuestionQueue
	}

	flag := s.queue[0]
	s.queue = s.queue[1:]
	s.currentFlag = flag
	s.answered = false
	s.questionNumber++
	return flag, nil
}

// CorrectAnswer returns the country name of the current flag.
func (s *Session) CorrectAnswer() (string, error) {
	if s.currentFlag == "" {
		return "", ErrNoCurrentQuestion
	}
	return catalog.CountryName(s.currentFlag), nil
}

// AnswerOptions returns the correct country name and two distinct incorrect
// ones in random order. Incorrect names never match the correct answer or each
// other, ignoring case.
func (s *Session) AnswerOptions() ([]string, error) {
	answer, err := s.CorrectAnswer()
	if err != nil {
		return nil, err
	}

	var pool []string
	for _, name := range s.catalog.Countries() {
		if !catalog.SameCountry(name, answer) {
			pool = append(pool, name)
		}
	}
	need := OptionsPerQuestion - 1
	if len(pool) < need {
		return nil, fmt.Errorf("%w: have %d other countries, need %d", ErrInsufficientDistractors, len(pool), need)
	}

	sampleInPlace(s.rng, pool, need)
	options := make([]string, 0, OptionsPerQuestion)
	options = append(options, answer)
	options = append(options, pool[:need]...)
	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options, nil
}

// SubmitAnswer scores guess against the current flag. The comparison is exact
// and case-sensitive. It does not advance to the next question.
func (s *Session) SubmitAnswer(guess string) (Result, error) {
	answer, err := s.CorrectAnswer()
	if err != nil {
		return Result{}, err
	}
	if s.answered {
		return Result{}, ErrAlreadyAnswered
	}

	s.answered = true
	res := Result{Guess: guess, Answer: answer, Correct: guess == answer}
	if res.Correct {
		s.correctAnswers++
	}
	return res, nil
}

// IsComplete reports whether all questions of the session have been served.
func (s *Session) IsComplete() bool {
	return s.questionNumber == QuestionsPerSession
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase {
	switch {
	case s.id == "":
		return PhaseNotStarted
	case s.IsComplete():
		return PhaseComplete
	default:
		return PhaseInProgress
	}
}

// Score returns the current score out of QuestionsPerSession.
func (s *Session) Score() Score {
	return Score{Correct: s.correctAnswers, Total: QuestionsPerSession}
}

// ID returns the identifier of the current run; empty before the first Reset.
func (s *Session) ID() string {
	return s.id
}

// QuestionNumber returns how many questions have been served, 0-10.
func (s *Session) QuestionNumber() int {
	return s.questionNumber
}

// CorrectAnswers returns the number of correct answers so far.
func (s *Session) CorrectAnswers() int {
	return s.correctAnswers
}

// CurrentFlag returns the identifier on screen, if any.
func (s *Session) CurrentFlag() (string, bool) {
	return s.currentFlag, s.currentFlag != ""
}

// Answered reports whether the current question has been scored.
func (s *Session) Answered() bool {
	return s.answered
}

// Remaining returns a copy of the flags still queued.
func (s *Session) Remaining() []string {
	out := make([]string, len(s.queue))
	copy(out, s.queue)
	return out
}

// Catalog returns the catalog the session draws from.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// sampleInPlace moves k uniformly chosen elements of items to its front
// (partial Fisher-Yates).
func sampleInPlace(rng Rand, items []string, k int) {
	for i := 0; i < k && i < len(items)-1; i++ {
		j := i + rng.IntN(len(items)-i)
		items[i], items[j] = items[j], items[i]
	}
}
