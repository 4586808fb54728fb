package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

const dateLayout = "2006-01-02"

// Calendar is the company calendar: US federal holidays except MLK Day and
// Veterans Day, plus the day after Thanksgiving, Christmas Eve and the
// Dec 26-31 slowdown. Rules recur every year.
type Calendar struct {
	bc *cal.BusinessCalendar
}

type Option func(*cal.BusinessCalendar)

// WithGoodFriday marks Good Friday as a day off.
func WithGoodFriday() Option {
	return func(bc *cal.BusinessCalendar) { bc.AddHoliday(goodFriday) }
}

// WithDayBeforeChristmasEve marks the working day before Christmas Eve as
// a day off.
func WithDayBeforeChristmasEve() Option {
	return func(bc *cal.BusinessCalendar) { bc.AddHoliday(dayBeforeChristmasEve) }
}

var (
	goodFriday = &cal.Holiday{
		Name:   "Good Friday",
		Offset: -2,
		Func:   cal.CalcEasterOffset,
	}
	dayAfterThanksgiving = &cal.Holiday{
		Name: "Day After Thanksgiving",
		Func: func(h *cal.Holiday, year int) time.Time {
			return cal.CalcWeekdayOffset(us.ThanksgivingDay, year).AddDate(0, 0, 1)
		},
	}
	christmasEve = &cal.Holiday{
		Name:  "Christmas Eve",
		Month: time.December,
		Day:   24,
		Func:  cal.CalcDayOfMonth,
	}
	// a Sunday Christmas Eve pushes it back to Friday
	dayBeforeChristmasEve = &cal.Holiday{
		Name: "Day Before Christmas Eve",
		Func: func(h *cal.Holiday, year int) time.Time {
			eve := time.Date(year, time.December, 24, 0, 0, 0, 0, time.UTC)
			if eve.Weekday() == time.Sunday {
				return eve.AddDate(0, 0, -2)
			}
			return eve.AddDate(0, 0, -1)
		},
	}
)

func slowdown() []*cal.Holiday {
	hs := make([]*cal.Holiday, 0, 6)
	for d := 26; d <= 31; d++ {
		hs = append(hs, &cal.Holiday{
			Name:  "Holiday Slowdown",
			Month: time.December,
			Day:   d,
			Func:  cal.CalcDayOfMonth,
		})
	}
	return hs
}

func New(opts ...Option) *Calendar {
	bc := cal.NewBusinessCalendar()
	for _, h := range us.Holidays {
		if h == us.MlkDay || h == us.VeteransDay {
			continue
		}
		bc.AddHoliday(h)
	}
	bc.AddHoliday(dayAfterThanksgiving, christmasEve)
	bc.AddHoliday(slowdown()...)
	for _, o := range opts {
		o(bc)
	}
	return &Calendar{bc: bc}
}

// Parse builds a Calendar and adds a comma separated list of YYYY-MM-DD
// dates as one-off holidays.
func Parse(list string, opts ...Option) (*Calendar, error) {
	c := New(opts...)
	for _, f := range strings.Split(list, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		d, err := time.Parse(dateLayout, f)
		if err != nil {
			return nil, fmt.Errorf("holiday %q: %w", f, err)
		}
		c.Add(d, "Holiday")
	}
	return c, nil
}

// Add marks the calendar day of d, in that year only.
func (c *Calendar) Add(d time.Time, name string) {
	c.bc.AddHoliday(&cal.Holiday{
		Name:      name,
		Month:     d.Month(),
		Day:       d.Day(),
		StartYear: d.Year(),
		EndYear:   d.Year(),
		Func:      cal.CalcDayOfMonth,
	})
}

// Holiday returns the holiday name for the calendar day of t, observed
// dates included.
func (c *Calendar) Holiday(t time.Time) (string, bool) {
	actual, observed, h := c.bc.IsHoliday(t)
	if (!actual && !observed) || h == nil {
		return "", false
	}
	return h.Name, true
}

// IsWorkday is false on weekends and holidays. t is read in its own location.
func (c *Calendar) IsWorkday(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := c.Holiday(t)
	return !holiday
}

// IsWorkhour is true from 06:00 up to 18:00.
func IsWorkhour(hour int) bool {
	return 6 <= hour && hour < 18
}
