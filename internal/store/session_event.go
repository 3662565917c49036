package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo backed by SQLite and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequence
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableSessionEvents).
		Columns("sequence", "timestamp", "session_id", "player", "region", "action",
			"questions_served", "correct_answers", "duration_secs").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.Player, data.Region, data.Action,
			data.QuestionsServed, data.CorrectAnswers, data.DurationSecs).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableAnswerEvents).
		Columns("sequence", "timestamp", "session_id", "question_number", "flag_id",
			"country", "guess", "correct", "time_ms").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.QuestionNumber, data.FlagID,
			data.Country, data.Guess, data.Correct, data.TimeMs).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := builder().
		Select("session_id", "player", "region", "timestamp", "questions_served", "correct_answers", "duration_secs").
		From(entsql.Table(tableSessionEvents)).
		Where(entsql.EQ("action", ActionEnd)).
		OrderBy(entsql.Desc("sequence"))

	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if opts.Player != "" {
		sel.Where(entsql.EQ("player", opts.Player))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var (
			rec SessionSummaryRecord
			ts  int64
		)
		if err := rows.Scan(&rec.SessionID, &rec.Player, &rec.Region, &ts,
			&rec.QuestionsServed, &rec.CorrectAnswers, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	return records, nil
}

func (r *eventRepo) CountryAccuracy(ctx context.Context) ([]CountryStat, error) {
	query, args := builder().
		Select("country", entsql.As(entsql.Count("*"), "attempts"), entsql.As(entsql.Sum("correct"), "hits")).
		From(entsql.Table(tableAnswerEvents)).
		GroupBy("country").
		OrderBy("country").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query country accuracy: %w", err)
	}
	defer rows.Close()

	var stats []CountryStat
	for rows.Next() {
		var s CountryStat
		if err := rows.Scan(&s.Country, &s.Attempts, &s.Correct); err != nil {
			return nil, fmt.Errorf("scan country accuracy: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query country accuracy: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) Stats(ctx context.Context) (SessionStats, error) {
	query, args := builder().
		Select(entsql.Count("*"), entsql.Max("correct_answers"), entsql.Avg("correct_answers")).
		From(entsql.Table(tableSessionEvents)).
		Where(entsql.EQ("action", ActionEnd)).
		Query()

	var (
		stats SessionStats
		best  sql.NullInt64
		avg   sql.NullFloat64
	)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&stats.Sessions, &best, &avg); err != nil {
		return SessionStats{}, fmt.Errorf("query session stats: %w", err)
	}
	stats.BestScore = int(best.Int64)
	stats.AverageScore = avg.Float64
	return stats, nil
}

func (r *eventRepo) BestScore(ctx context.Context) (int, error) {
	stats, err := r.Stats(ctx)
	if err != nil {
		return 0, err
	}
	return stats.BestScore, nil
}
