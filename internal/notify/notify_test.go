package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/multierr"

	"github.com/hamed0406/endpointwatch/internal/calendar"
)

type countingNotifier struct {
	n   int
	err error
}

func (c *countingNotifier) Send(ctx context.Context, subject, text string) error {
	c.n++
	return c.err
}

func TestMulti_SendsToAllAndCombinesErrors(t *testing.T) {
	a := &countingNotifier{err: errors.New("a down")}
	b := &countingNotifier{}
	c := &countingNotifier{err: errors.New("c down")}

	err := Multi{a, nil, b, c}.Send(context.Background(), "s", "t")
	if a.n != 1 || b.n != 1 || c.n != 1 {
		t.Fatalf("every notifier should be called: %d %d %d", a.n, b.n, c.n)
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Fatalf("want 2 combined errors, got %d (%v)", got, err)
	}
}

func TestLog_CallsBack(t *testing.T) {
	var subject string
	_ = Log(func(s, _ string) { subject = s }).Send(context.Background(), "subj", "")
	if subject != "subj" {
		t.Fatalf("callback not invoked")
	}
}

type fixedState bool

func (f fixedState) LastFailed(context.Context) (bool, error) { return bool(f), nil }

func TestGate_Skip(t *testing.T) {
	cal, _ := calendar.Parse("2018-12-25")
	cases := []struct {
		name       string
		lastFailed bool
		now        time.Time
		want       bool
	}{
		{"first failure always sent", false, time.Date(2019, 10, 27, 15, 0, 0, 0, time.UTC), false},
		{"holiday bad hour", true, time.Date(2018, 12, 25, 9, 0, 0, 0, time.UTC), true},
		{"holiday good hour", true, time.Date(2018, 12, 25, 8, 0, 0, 0, time.UTC), false},
		{"holiday midnight", true, time.Date(2018, 12, 25, 0, 0, 0, 0, time.UTC), false},
		{"thanksgiving bad hour", true, time.Date(2019, 11, 28, 9, 0, 0, 0, time.UTC), true},
		{"mlk day work hour", true, time.Date(2019, 1, 21, 9, 0, 0, 0, time.UTC), false},
		{"weekend bad hour", true, time.Date(2019, 10, 27, 15, 0, 0, 0, time.UTC), true},
		{"weekend good hour", true, time.Date(2019, 10, 27, 16, 0, 0, 0, time.UTC), false},
		{"workday work hour", true, time.Date(2019, 10, 28, 15, 0, 0, 0, time.UTC), false},
		{"workday evening bad hour", true, time.Date(2019, 10, 28, 19, 0, 0, 0, time.UTC), true},
		{"workday evening good hour", true, time.Date(2019, 10, 28, 20, 0, 0, 0, time.UTC), false},
	}
	for _, c := range cases {
		g := &Gate{Calendar: cal, Location: time.UTC, State: fixedState(c.lastFailed)}
		got, err := g.Skip(context.Background(), c.now)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("%s: skip=%v want %v", c.name, got, c.want)
		}
	}
}
