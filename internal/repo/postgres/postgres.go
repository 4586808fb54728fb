package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hamed0406/endpointwatch/internal/domain"
	"github.com/hamed0406/endpointwatch/internal/repo"
)

var _ repo.Store = (*Store)(nil)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
  id          TEXT PRIMARY KEY,
  started_at  TIMESTAMPTZ NOT NULL,
  success     BOOLEAN NOT NULL,
  failures    INTEGER NOT NULL,
  body        JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs (started_at DESC);

CREATE TABLE IF NOT EXISTS run_state (
  id          INTEGER PRIMARY KEY,
  last_failed BOOLEAN NOT NULL,
  summary     TEXT NOT NULL,
  updated_at  TIMESTAMPTZ NOT NULL
);
`

type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{pool: pool, log: log}, nil
}

// Migrate creates the tables when missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// ---- RunStore ----

func (s *Store) SaveRun(ctx context.Context, r *domain.Run) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	failures := 0
	if r.Results != nil {
		failures = len(r.Results.Failure)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO runs (id, started_at, success, failures, body)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE
		   SET started_at=EXCLUDED.started_at, success=EXCLUDED.success,
		       failures=EXCLUDED.failures, body=EXCLUDED.body`,
		string(r.ID), r.StartedAt, r.Summary.Success, failures, string(body),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	s.log.Debug("pg_run_saved", zap.String("run_id", string(r.ID)), zap.Int("failures", failures))
	return nil
}

func (s *Store) LatestRun(ctx context.Context) (*domain.Run, error) {
	var body []byte
	err := s.pool.QueryRow(ctx,
		`SELECT body FROM runs ORDER BY started_at DESC, id DESC LIMIT 1`).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest run: %w", err)
	}
	var r domain.Run
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	return &r, nil
}

// ---- StateStore ----

func (s *Store) LastFailed(ctx context.Context) (bool, error) {
	var failed bool
	err := s.pool.QueryRow(ctx, `SELECT last_failed FROM run_state WHERE id=1`).Scan(&failed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
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
	_, err := s.pool.Exec(ctx, `
		INSERT INTO run_state (id, last_failed, summary, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET last_failed=EXCLUDED.last_failed, summary=EXCLUDED.summary, updated_at=EXCLUDED.updated_at
	`, !sum.Success, content, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
