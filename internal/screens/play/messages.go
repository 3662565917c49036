package play

import (
	"github.com/abhisek/flagquiz/internal/quiz"
)

// questionLoadedMsg carries the flag and options served by the session.
type questionLoadedMsg struct {
	Flag    string
	Options []string
	Err     error
}

// feedbackDoneMsg is sent when the feedback delay after an answer ends.
// Question identifies the answered question so stale ticks are ignored.
type feedbackDoneMsg struct {
	Question int
}

// persistedMsg reports the outcome of a background store write.
type persistedMsg struct {
	Op  string
	Err error
}

// answeredMsg is the immutable record of a scored question handed to the
// persistence command.
type answeredMsg struct {
	Result   quiz.Result
	Question int
	Flag     string
	TimeMs   int64
}
