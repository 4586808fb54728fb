package repo

import (
	"context"

	"github.com/hamed0406/endpointwatch/internal/domain"
)

// RunStore persists check runs.
type RunStore interface {
	SaveRun(ctx context.Context, run *domain.Run) error
	// LatestRun returns nil, nil when no run was saved yet.
	LatestRun(ctx context.Context) (*domain.Run, error)
}

// StateStore keeps the verdict of the previous run so repeated failures
// can be throttled.
type StateStore interface {
	LastFailed(ctx context.Context) (bool, error)
	SetState(ctx context.Context, s domain.Summary) error
}

// Store is implemented by every adapter.
type Store interface {
	RunStore
	StateStore
	Close() error
}
