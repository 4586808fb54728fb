package memory

import (
	"context"
	"sync"

	"github.com/hamed0406/endpointwatch/internal/domain"
	"github.com/hamed0406/endpointwatch/internal/repo"
)

var _ repo.Store = (*Store)(nil)

type Store struct {
	mu         sync.RWMutex
	runs       []*domain.Run
	lastFailed bool
}

func New() *Store {
	return &Store{runs: make([]*domain.Run, 0, 16)}
}

func (m *Store) SaveRun(ctx context.Context, r *domain.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, r)
	return nil
}

func (m *Store) LatestRun(ctx context.Context) (*domain.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *domain.Run
	for _, r := range m.runs {
		if latest == nil || !r.StartedAt.Before(latest.StartedAt) {
			latest = r
		}
	}
	return latest, nil
}

// Runs returns the number of saved runs.
func (m *Store) Runs() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}

func (m *Store) LastFailed(ctx context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastFailed, nil
}

func (m *Store) SetState(ctx context.Context, s domain.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFailed = !s.Success
	return nil
}

func (m *Store) Close() error { return nil }
