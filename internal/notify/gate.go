package notify

import (
	"context"
	"time"

	"github.com/hamed0406/endpointwatch/internal/calendar"
)

// StateReader tells whether the previous run failed.
type StateReader interface {
	LastFailed(ctx context.Context) (bool, error)
}

// Gate holds back repeated failure alarms outside working hours. A first
// failure is always delivered.
type Gate struct {
	Calendar *calendar.Calendar
	Location *time.Location
	State    StateReader
}

// Skip reports whether a failure alarm at now should be suppressed.
func (g *Gate) Skip(ctx context.Context, now time.Time) (bool, error) {
	lastFailed, err := g.State.LastFailed(ctx)
	if err != nil {
		return false, err
	}
	if !lastFailed {
		return false, nil
	}
	loc := g.Location
	if loc == nil {
		loc = time.UTC
	}
	return OffHours(g.Calendar, now.In(loc)), nil
}

// OffHours: on non-workdays only every 8th hour is on, on workdays
// outside working hours every 4th hour.
func OffHours(cal *calendar.Calendar, t time.Time) bool {
	if cal == nil {
		cal = calendar.New()
	}
	hour := t.Hour()
	if !cal.IsWorkday(t) {
		return hour%8 != 0
	}
	if !calendar.IsWorkhour(hour) {
		return hour%4 != 0
	}
	return false
}
