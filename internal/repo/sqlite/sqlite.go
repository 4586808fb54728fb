package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hamed0406/endpointwatch/internal/domain"
	"github.com/hamed0406/endpointwatch/internal/repo"
)

var _ repo.Store = (*Store)(nil)

// Store keeps runs in a local SQLite file.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)
	s := &Store{db: db}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		success INTEGER NOT NULL,
		failures INTEGER NOT NULL,
		body TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at
		ON runs(started_at DESC);

	CREATE TABLE IF NOT EXISTS run_state (
		id INTEGER PRIMARY KEY,
		last_failed INTEGER NOT NULL,
		summary TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) SaveRun(ctx context.Context, r *domain.Run) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	failures := 0
	if r.Results != nil {
		failures = len(r.Results.Failure)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (id, started_at, success, failures, body) VALUES (?, ?, ?, ?, ?)`,
		string(r.ID), r.StartedAt.UTC().UnixNano(), r.Summary.Success, failures, string(body))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *Store) LatestRun(ctx context.Context) (*domain.Run, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM runs ORDER BY started_at DESC, id DESC LIMIT 1`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	var r domain.Run
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	return &r, nil
}

func (s *Store) LastFailed(ctx context.Context) (bool, error) {
	var failed bool
	err := s.db.QueryRowContext(ctx, `SELECT last_failed FROM run_state WHERE id = 1`).Scan(&failed)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read state: %w", err)
	}
	return failed, nil
}

func (s *Store) SetState(ctx context.Context, sum domain.Summary) error {
	content := ""
	if !sum.Success {
		b, err := domain.MarshalPretty(sum)
		if err != nil {
			return fmt.Errorf("encode state: %w", err)
		}
		content = string(b)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO run_state (id, last_failed, summary, updated_at) VALUES (1, ?, ?, ?)`,
		!sum.Success, content, time.Now().UTC().UnixNano())
	if err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
