package quiz

import (
	"errors"
	"fmt"
)

// ErrInvalidSnapshot is returned by Restore when a snapshot breaks a session invariant.
var ErrInvalidSnapshot = errors.New("invalid session snapshot")

// Snapshot is the resumable state of a session, captured on suspend.
type Snapshot struct {
	SessionID      string   `json:"session_id"`
	QuestionNumber int      `json:"question_number"`
	CorrectAnswers int      `json:"correct_answers"`
	CurrentFlag    string   `json:"current_flag,omitempty"`
	Answered       bool     `json:"answered,omitempty"`
	Remaining      []string `json:"remaining"`
}

// Snapshot captures the session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		SessionID:      s.id,
		QuestionNumber: s.questionNumber,
		CorrectAnswers: s.correctAnswers,
		CurrentFlag:    s.currentFlag,
		Answered:       s.answered,
		Remaining:      s.Remaining(),
	}
}

// Restore replaces the session state with snap after checking it against the
// session's catalog.
func (s *Session) Restore(snap Snapshot) error {
	if err := s.validate(snap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	s.id = snap.SessionID
	s.questionNumber = snap.QuestionNumber
	s.correctAnswers = snap.CorrectAnswers
	s.currentFlag = snap.CurrentFlag
	s.answered = snap.Answered
	s.queue = make([]string, len(snap.Remaining))
	copy(s.queue, snap.Remaining)
	return nil
}

func (s *Session) validate(snap Snapshot) error {
	switch {
	case snap.SessionID == "":
		return errors.New("missing session id")
	case snap.QuestionNumber < 0 || snap.QuestionNumber > QuestionsPerSession:
		return fmt.Errorf("question number %d out of range", snap.QuestionNumber)
	case snap.CorrectAnswers < 0 || snap.CorrectAnswers > snap.QuestionNumber:
		return fmt.Errorf("correct answers %d exceed question number %d", snap.CorrectAnswers, snap.QuestionNumber)
	case len(snap.Remaining) != QuestionsPerSession-snap.QuestionNumber:
		return fmt.Errorf("%d flags remaining at question %d", len(snap.Remaining), snap.QuestionNumber)
	case (snap.CurrentFlag == "") != (snap.QuestionNumber == 0):
		return errors.New("current flag does not match question number")
	case snap.Answered && snap.CurrentFlag == "":
		return errors.New("answered without a current flag")
	}

	// An unanswered current question cannot already have been counted as correct.
	if !snap.Answered && snap.CorrectAnswers > snap.QuestionNumber-1 && snap.QuestionNumber > 0 {
		return fmt.Errorf("correct answers %d exceed answered questions", snap.CorrectAnswers)
	}

	seen := make(map[string]bool, QuestionsPerSession)
	all := snap.Remaining
	if snap.CurrentFlag != "" {
		all = append([]string{snap.CurrentFlag}, snap.Remaining...)
	}
	for _, id := range all {
		if !s.catalog.Contains(id) {
			return fmt.Errorf("flag %q not in catalog", id)
		}
		if seen[id] {
			return fmt.Errorf("flag %q repeated", id)
		}
		seen[id] = true
	}
	return nil
}
