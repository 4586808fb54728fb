package notify

import (
	"context"

	"go.uber.org/multierr"
)

// Notifier delivers an alarm with a subject line and a body.
type Notifier interface {
	Send(ctx context.Context, subject, text string) error
}

// Multi fans out to every notifier and reports all delivery errors.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, subject, text string) error {
	var err error
	for _, n := range m {
		if n == nil {
			continue
		}
		err = multierr.Append(err, n.Send(ctx, subject, text))
	}
	return err
}

// Log is a Notifier that only writes alarms to a callback; used when no
// webhook is configured.
type Log func(subject, text string)

func (l Log) Send(_ context.Context, subject, text string) error {
	l(subject, text)
	return nil
}
