package history

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"geoquiz/internal/logger"
)

// PGStore keeps outcomes in a Postgres table.
type PGStore struct {
	db *sql.DB
}

// OpenPostgres opens dsn, bootstraps the schema and returns the store.
func OpenPostgres(ctx context.Context, dsn string) (*PGStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres schema: %w", err)
	}
	return &PGStore{db: db}, nil
}

// EnsureSchema creates the outcome table and index if missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quiz_outcomes (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			region_id TEXT NOT NULL,
			region_name TEXT NOT NULL,
			correct BOOLEAN NOT NULL,
			hint TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quiz_outcomes_user_created ON quiz_outcomes(user_id, created_at DESC)`,
	}
	for i, s := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (s *PGStore) Append(ctx context.Context, o Outcome) error {
	var created any
	if !o.CreatedAt.IsZero() {
		created = o.CreatedAt
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_outcomes(user_id, region_id, region_name, correct, hint, created_at)
		 VALUES($1, $2, $3, $4, $5, COALESCE($6, now()))`,
		o.UserID, o.RegionID, o.RegionName, o.Correct, o.Hint, created)
	return err
}

func (s *PGStore) List(ctx context.Context, userID string, limit int) ([]Outcome, error) {
	q := `SELECT user_id, region_id, region_name, correct, hint, created_at
		FROM quiz_outcomes WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Outcome
	for rows.Next() {
		var o Outcome
		if err := rows.Scan(&o.UserID, &o.RegionID, &o.RegionName, &o.Correct, &o.Hint, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *PGStore) Close() error { return s.db.Close() }
