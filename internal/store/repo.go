package store

import (
	"context"
	"time"

	"github.com/abhisek/flagquiz/internal/quiz"
)

// Session event actions.
const (
	ActionStart   = "start"
	ActionEnd     = "end"
	ActionSuspend = "suspend"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Player string    // exact player name ("" = any)
}

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID       string
	Player          string
	Region          string
	Action          string
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// AnswerEventData captures a single scored answer.
type AnswerEventData struct {
	SessionID      string
	QuestionNumber int
	FlagID         string
	Country        string
	Guess          string
	Correct        bool
	TimeMs         int64
}

// SessionSummaryRecord is a completed session as shown in history.
type SessionSummaryRecord struct {
	SessionID       string
	Player          string
	Region          string
	Timestamp       time.Time
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// CountryStat aggregates every answer recorded for one country.
type CountryStat struct {
	Country  string
	Attempts int
	Correct  int
}

// Accuracy returns the share of correct answers in the range 0-1.
func (c CountryStat) Accuracy() float64 {
	if c.Attempts == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Attempts)
}

// SessionStats aggregates completed sessions.
type SessionStats struct {
	Sessions     int
	BestScore    int
	AverageScore float64
}

// EventRepo provides append and query access to quiz events.
type EventRepo interface {
	// AppendSessionEvent records a session start, end or suspend.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records one scored answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessionSummaries returns completed sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// CountryAccuracy returns per-country answer stats ordered by country.
	CountryAccuracy(ctx context.Context) ([]CountryStat, error)

	// Stats aggregates completed sessions.
	Stats(ctx context.Context) (SessionStats, error)

	// BestScore returns the highest score of any completed session, 0 if none.
	BestScore(ctx context.Context) (int, error)
}

// SnapshotData is the payload stored for a suspended session.
type SnapshotData struct {
	Version int           `json:"version"`
	Player  string        `json:"player,omitempty"`
	Region  string        `json:"region"`
	Session quiz.Snapshot `json:"session"`
}

// SnapshotVersion is the current SnapshotData layout.
const SnapshotVersion = 1

// Snapshot represents a point-in-time capture of a suspended session.
type Snapshot struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages suspended session snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. A zero Sequence is assigned from the
	// global counter and a zero Timestamp defaults to now.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error

	// Clear deletes every snapshot.
	Clear(ctx context.Context) error
}
