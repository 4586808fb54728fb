package memory

import (
	"context"
	"testing"
	"time"

	"github.com/hamed0406/endpointwatch/internal/domain"
)

func TestMemoryStore_SaveAndLatest(t *testing.T) {
	ctx := context.Background()
	s := New()

	if r, err := s.LatestRun(ctx); err != nil || r != nil {
		t.Fatalf("expected no run, got %+v err=%v", r, err)
	}

	base := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	older := &domain.Run{ID: domain.NewRunID(base), StartedAt: base, Results: domain.NewResultSet()}
	newer := &domain.Run{ID: domain.NewRunID(base.Add(time.Hour)), StartedAt: base.Add(time.Hour), Results: domain.NewResultSet()}
	if err := s.SaveRun(ctx, newer); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := s.SaveRun(ctx, older); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := s.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if got.ID != newer.ID {
		t.Fatalf("want newest run %s, got %s", newer.ID, got.ID)
	}
	if s.Runs() != 2 {
		t.Fatalf("want 2 runs, got %d", s.Runs())
	}
}

func TestMemoryStore_State(t *testing.T) {
	ctx := context.Background()
	s := New()
	if failed, _ := s.LastFailed(ctx); failed {
		t.Fatalf("fresh store should not report failure")
	}
	_ = s.SetState(ctx, domain.Summary{Success: false, Subject: "x"})
	if failed, _ := s.LastFailed(ctx); !failed {
		t.Fatalf("expected failure state")
	}
	_ = s.SetState(ctx, domain.Summary{Success: true})
	if failed, _ := s.LastFailed(ctx); failed {
		t.Fatalf("expected success state")
	}
}
