package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

const tableSequence = "global_sequence"

// sequence stamps every event and snapshot row with one store-wide
// increasing number, so rows from different tables merge in write order.
// The single row in global_sequence holds the next value to hand out.
type sequence struct {
	mu sync.Mutex
	db *sql.DB
}

func openSequence(ctx context.Context, db *sql.DB) (*sequence, error) {
	ddl := `CREATE TABLE IF NOT EXISTS ` + tableSequence + ` (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	query, args := builder().Insert(tableSequence).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.DoNothing()).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequence{db: db}, nil
}

// Next returns the next number and advances the counter in one transaction.
func (s *sequence) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin sequence tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args := builder().Select("next_val").
		From(entsql.Table(tableSequence)).
		Where(entsql.EQ("id", 1)).
		Query()
	var next int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("read sequence: %w", err)
	}

	query, args = builder().Update(tableSequence).
		Set("next_val", next+1).
		Where(entsql.EQ("id", 1)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("advance sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sequence: %w", err)
	}
	return next, nil
}
