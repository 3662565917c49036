package store

import (
	"context"

	"go.uber.org/zap"
)

// LoggingEventRepo is a decorator that logs failed event writes. Callers keep
// receiving the error; a game in progress never depends on it.
type LoggingEventRepo struct {
	EventRepo
	log *zap.Logger
}

// WithLogging wraps repo so write failures are logged to log.
func WithLogging(repo EventRepo, log *zap.Logger) EventRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingEventRepo{EventRepo: repo, log: log}
}

func (l *LoggingEventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := l.EventRepo.AppendSessionEvent(ctx, data)
	if err != nil {
		l.log.Warn("failed to record session event",
			zap.String("session_id", data.SessionID),
			zap.String("action", data.Action),
			zap.Error(err))
	}
	return err
}

func (l *LoggingEventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := l.EventRepo.AppendAnswerEvent(ctx, data)
	if err != nil {
		l.log.Warn("failed to record answer event",
			zap.String("session_id", data.SessionID),
			zap.Int("question", data.QuestionNumber),
			zap.String("flag", data.FlagID),
			zap.Error(err))
	}
	return err
}
