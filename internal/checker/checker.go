package checker

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/hamed0406/endpointwatch/internal/domain"
	"github.com/hamed0406/endpointwatch/internal/endpoint"
	"github.com/hamed0406/endpointwatch/internal/metrics"
	"github.com/hamed0406/endpointwatch/internal/probe"
)

// Checker walks an endpoint tree depth-first and records one CheckRecord
// per visited node. Use one Checker per run; it is not safe for
// concurrent use.
type Checker struct {
	fetcher    probe.Fetcher
	maxLevel   int
	logger     *zap.Logger
	metrics    *metrics.Metrics
	cycleCheck bool

	results   *domain.ResultSet
	validated []domain.ValidatedPath
}

type Option func(*Checker)

func WithLogger(l *zap.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Checker) { c.metrics = m }
}

// WithCycleCheck makes a node whose path repeats one of its ancestors'
// fail instead of being descended again.
func WithCycleCheck(on bool) Option {
	return func(c *Checker) { c.cycleCheck = on }
}

// New returns a Checker that descends at most maxLevel levels below the
// top-level nodes. Negative values are treated as 0.
func New(fetcher probe.Fetcher, maxLevel int, opts ...Option) *Checker {
	if maxLevel < 0 {
		maxLevel = 0
	}
	c := &Checker{
		fetcher:   fetcher,
		maxLevel:  maxLevel,
		logger:    zap.NewNop(),
		results:   domain.NewResultSet(),
		validated: make([]domain.ValidatedPath, 0),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Start resets the accumulated results and checks every top-level spec.
// Endpoint failures never surface as errors; read them from Results.
func (c *Checker) Start(ctx context.Context, specs []endpoint.Spec) {
	c.results = domain.NewResultSet()
	c.validated = make([]domain.ValidatedPath, 0)
	for _, s := range specs {
		c.check(ctx, s, 0, "", nil)
	}
	c.metrics.Run(len(c.results.Success), len(c.results.Failure))
	c.logger.Info("check_completed",
		zap.Int("success", len(c.results.Success)),
		zap.Int("failure", len(c.results.Failure)),
		zap.Int("validated", len(c.validated)),
	)
}

func (c *Checker) Results() *domain.ResultSet { return c.results }

// ValidatedPaths lists the nodes that passed URL validation and returned
// a body, whatever their content verdict.
func (c *Checker) ValidatedPaths() []domain.ValidatedPath { return c.validated }

func (c *Checker) check(ctx context.Context, s endpoint.Spec, level int, base string, ancestors []string) {
	if level > c.maxLevel {
		return
	}
	path := effectivePath(base, sanitize(s.Path))
	log := c.logger.With(
		zap.String("name", s.Name),
		zap.String("path", path),
		zap.Int("level", level),
	)

	if !ValidURL(path) {
		// base is an empty marker on structural failures, nested or not
		noBase := ""
		c.record(log, metrics.OutcomeInvalidURL, domain.CheckRecord{
			Err:  fmt.Sprintf(errInvalidURL, s.Path),
			Base: &noBase,
			Name: s.Name,
			Path: path,
		})
		return
	}
	if c.cycleCheck && slices.Contains(ancestors, path) {
		c.record(log, metrics.OutcomeCycle, domain.CheckRecord{
			Err:  fmt.Sprintf(errCycle, path),
			Name: s.Name,
			Path: path,
		})
		return
	}

	out := c.fetcher.Fetch(ctx, path)
	c.metrics.Fetch(out.LatencyMS)
	if out.Empty() {
		log.Debug("check_fetch_empty", zap.Int("status", out.StatusCode), zap.String("reason", out.Message))
		c.record(log, metrics.OutcomeNoData, domain.CheckRecord{
			Err:  fmt.Sprintf(errNoData, path),
			Name: s.Name,
			Path: path,
		})
		return
	}
	if out.Truncated {
		log.Debug("check_body_truncated", zap.Int("bytes", len(out.Body)), zap.String("reason", out.Message))
	}
	c.validated = append(c.validated, domain.ValidatedPath{Name: s.Name, Path: path})

	rec := domain.CheckRecord{Name: s.Name, Path: path}
	outcome := metrics.OutcomeSuccess
	if msg := Validate(out.Body, s.Rule, path); msg != "" {
		rec.Err = msg
		outcome = metrics.OutcomeMismatch
	}
	log.Debug("check_fetched", zap.Int("status", out.StatusCode), zap.Float64("latency_ms", out.LatencyMS))
	c.record(log, outcome, rec)

	// A content mismatch does not stop the descent.
	if len(s.More) == 0 || level >= c.maxLevel {
		return
	}
	branch := append(slices.Clip(ancestors), path)
	for _, child := range s.More {
		c.check(ctx, child, level+1, path, branch)
	}
}

func (c *Checker) record(log *zap.Logger, outcome string, rec domain.CheckRecord) {
	c.results.Add(rec)
	c.metrics.Check(outcome)
	if rec.OK() {
		log.Debug("check_node", zap.String("outcome", outcome))
		return
	}
	log.Info("check_node", zap.String("outcome", outcome), zap.String("error", rec.Err))
}
