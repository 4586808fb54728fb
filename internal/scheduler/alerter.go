package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/endpointwatch/internal/domain"
	"github.com/hamed0406/endpointwatch/internal/notify"
	"github.com/hamed0406/endpointwatch/internal/repo"
	"github.com/hamed0406/endpointwatch/internal/summary"
)

// Alerter records the verdict of every run and decides whether the
// failure alarm goes out.
type Alerter struct {
	Logger   *zap.Logger
	State    repo.StateStore
	Notifier notify.Notifier
	Gate     *notify.Gate // nil never skips
}

func NewAlerter(logger *zap.Logger, state repo.StateStore, n notify.Notifier, gate *notify.Gate) *Alerter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Alerter{Logger: logger, State: state, Notifier: n, Gate: gate}
}

// Alarm sends unconditionally. Delivery errors are logged, not returned.
func (a *Alerter) Alarm(ctx context.Context, subject, text string) {
	if a.Notifier == nil {
		return
	}
	if err := a.Notifier.Send(ctx, subject, text); err != nil {
		a.Logger.Warn("alarm_send_error", zap.String("subject", subject), zap.Error(err))
		return
	}
	a.Logger.Info("alarm_sent", zap.String("subject", subject))
}

// Dispatch stores sum as the new state and alarms on failure unless the
// gate holds it back. The gate sees the state of the previous run.
func (a *Alerter) Dispatch(ctx context.Context, sum domain.Summary, now time.Time) (sent bool, err error) {
	skip := false
	if !sum.Success && a.Gate != nil {
		skip, err = a.Gate.Skip(ctx, now)
		if err != nil {
			// unknown history, deliver
			a.Logger.Warn("state_read_error", zap.Error(err))
			skip = false
		}
	}

	if err := a.State.SetState(ctx, sum); err != nil {
		return false, fmt.Errorf("set state: %w", err)
	}

	if sum.Success {
		return false, nil
	}
	if skip {
		a.Logger.Info("notification_skipped",
			zap.String("reason", fmt.Sprintf(summary.SkipMessageTemplate, now.Format(time.RFC3339))),
			zap.String("subject", sum.Subject),
		)
		return false, nil
	}
	a.Alarm(ctx, sum.Subject, sum.Message)
	return true, nil
}
