package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/endpointwatch/internal/checker"
	"github.com/hamed0406/endpointwatch/internal/domain"
	"github.com/hamed0406/endpointwatch/internal/endpoint"
	"github.com/hamed0406/endpointwatch/internal/metrics"
	"github.com/hamed0406/endpointwatch/internal/probe"
	"github.com/hamed0406/endpointwatch/internal/repo"
	"github.com/hamed0406/endpointwatch/internal/summary"
)

// ErrTooFew is returned when screening leaves fewer endpoints than required.
var ErrTooFew = errors.New("too few endpoints")

// Loader returns the endpoint tree for one cycle.
type Loader func() ([]endpoint.Spec, error)

// FileLoader reads the endpoints file on every call so edits are picked
// up without a restart.
func FileLoader(file string) Loader {
	return func() ([]endpoint.Spec, error) { return endpoint.Load(file) }
}

type Runner struct {
	Logger     *zap.Logger
	Load       Loader
	Fallback   Loader // optional; used when Load fails or screens too few
	Fetcher    probe.Fetcher
	Runs       repo.RunStore
	Alerter    *Alerter
	Metrics    *metrics.Metrics
	MaxLevel   int
	MinItems   int
	CycleCheck bool
	Interval   time.Duration
	Now        func() time.Time

	mu sync.Mutex
}

func NewRunner(
	logger *zap.Logger,
	load Loader,
	fetcher probe.Fetcher,
	runs repo.RunStore,
	alerter *Alerter,
	interval time.Duration,
) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval < 0 {
		interval = 0
	}
	return &Runner{
		Logger:   logger,
		Load:     load,
		Fetcher:  fetcher,
		Runs:     runs,
		Alerter:  alerter,
		MaxLevel: 3,
		MinItems: 1,
		Interval: interval,
		Now:      time.Now,
	}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	if r.Interval == 0 {
		r.Logger.Info("runner_disabled")
		return
	}
	t := time.NewTicker(r.Interval)
	defer t.Stop()

	r.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("runner_stopped")
			return
		case <-t.C:
			r.tick(ctx)
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	if _, err := r.RunOnce(ctx); err != nil {
		r.Logger.Warn("run_skipped", zap.Error(err))
	}
}

// RunOnce performs one full cycle. Cycles never overlap.
func (r *Runner) RunOnce(ctx context.Context) (*domain.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	started := r.Now()

	valid, err := r.endpoints(ctx)
	if err != nil {
		return nil, err
	}

	chk := checker.New(r.Fetcher, r.MaxLevel,
		checker.WithLogger(r.Logger),
		checker.WithMetrics(r.Metrics),
		checker.WithCycleCheck(r.CycleCheck),
	)
	chk.Start(ctx, valid)

	run := &domain.Run{
		ID:             domain.NewRunID(started),
		StartedAt:      started.UTC(),
		Results:        chk.Results(),
		Summary:        summary.Sanitize(chk.Results(), valid, chk.ValidatedPaths()),
		ValidatedPaths: chk.ValidatedPaths(),
	}

	if err := r.Runs.SaveRun(ctx, run); err != nil {
		r.Logger.Warn("run_save_error", zap.String("run_id", string(run.ID)), zap.Error(err))
	}

	sent := false
	if r.Alerter != nil {
		sent, err = r.Alerter.Dispatch(ctx, run.Summary, started)
		if err != nil {
			r.Logger.Warn("dispatch_error", zap.String("run_id", string(run.ID)), zap.Error(err))
		}
	}

	r.Logger.Info("run_completed",
		zap.String("run_id", string(run.ID)),
		zap.Bool("success", run.Summary.Success),
		zap.Int("failures", len(run.Results.Failure)),
		zap.Bool("notified", sent),
		zap.Duration("took", time.Since(started)),
	)
	return run, nil
}

// endpoints loads and screens the endpoint tree. Each problem is alarmed;
// when the primary tree is unusable the fallback tree is tried.
func (r *Runner) endpoints(ctx context.Context) ([]endpoint.Spec, error) {
	specs, err := r.Load()
	switch {
	case err != nil:
		r.alarm(ctx, summary.SubjectLoadError, err.Error())
		err = fmt.Errorf("load endpoints: %w", err)
	default:
		valid, ok := r.screen(ctx, specs)
		if ok {
			return valid, nil
		}
		err = ErrTooFew
	}

	if r.Fallback == nil {
		return nil, err
	}
	fallback, ferr := r.Fallback()
	if ferr != nil {
		return nil, multierr.Append(err, fmt.Errorf("load fallback endpoints: %w", ferr))
	}
	valid, ok := r.screen(ctx, fallback)
	if !ok {
		return nil, ErrTooFew
	}
	r.Logger.Warn("endpoints_fallback", zap.Int("count", len(valid)), zap.NamedError("cause", err))
	return valid, nil
}

func (r *Runner) screen(ctx context.Context, specs []endpoint.Spec) ([]endpoint.Spec, bool) {
	valid, problems, enough := endpoint.Screen(specs, r.MinItems)
	if len(problems) > 0 {
		r.alarm(ctx, summary.SubjectFailure, strings.Join(problems, "\n"))
	}
	if !enough {
		r.alarm(ctx, summary.SubjectTooFew, summary.NotEnoughEndpoints)
		return nil, false
	}
	return valid, true
}

func (r *Runner) alarm(ctx context.Context, subject, text string) {
	if r.Alerter != nil {
		r.Alerter.Alarm(ctx, subject, text)
	}
}
