package calendar

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestIsWorkday_CompanyHolidays(t *testing.T) {
	c := New()
	cases := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"plain monday", day(2019, time.October, 28), true},
		{"sunday", day(2019, time.October, 27), false},
		{"independence day", day(2019, time.July, 4), false},
		{"independence day observed", day(2021, time.July, 5), false},
		{"memorial day", day(2019, time.May, 27), false},
		{"thanksgiving", day(2019, time.November, 28), false},
		{"day after thanksgiving", day(2019, time.November, 29), false},
		{"day after thanksgiving, month starting friday", day(2024, time.November, 29), false},
		{"christmas eve", day(2020, time.December, 24), false},
		{"slowdown", day(2020, time.December, 29), false},
		{"slowdown far future", day(2031, time.December, 30), false},
		{"mlk day is worked", day(2019, time.January, 21), true},
		{"veterans day is worked", day(2019, time.November, 11), true},
		{"good friday is worked by default", day(2019, time.April, 19), true},
		{"day before christmas eve is worked by default", day(2019, time.December, 23), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.IsWorkday(tc.day); got != tc.want {
				t.Fatalf("IsWorkday(%s)=%v want %v", tc.day.Format(dateLayout), got, tc.want)
			}
		})
	}
}

func TestOptionalHolidays(t *testing.T) {
	c := New(WithGoodFriday(), WithDayBeforeChristmasEve())

	if name, ok := c.Holiday(day(2019, time.April, 19)); !ok || name != "Good Friday" {
		t.Fatalf("good friday: %q %v", name, ok)
	}
	if c.IsWorkday(day(2019, time.December, 23)) {
		t.Fatalf("monday before a tuesday christmas eve should be off")
	}
	// 2017-12-24 is a Sunday, so the day off is Friday the 22nd
	if name, ok := c.Holiday(day(2017, time.December, 22)); !ok || name != "Day Before Christmas Eve" {
		t.Fatalf("day before a sunday christmas eve: %q %v", name, ok)
	}
}

func TestParse_AddsOneOffDates(t *testing.T) {
	c, err := Parse("2019-10-28, ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if name, ok := c.Holiday(day(2019, time.October, 28)); !ok || name != "Holiday" {
		t.Fatalf("configured date missing: %q %v", name, ok)
	}
	if !c.IsWorkday(day(2020, time.October, 28)) {
		t.Fatalf("a configured date must not recur")
	}
}

func TestParse_RejectsBadDate(t *testing.T) {
	if _, err := Parse("2019-13-01"); err == nil {
		t.Fatalf("want error")
	}
	c, err := Parse("")
	if err != nil || c == nil {
		t.Fatalf("empty list should parse: %v", err)
	}
}

func TestIsWorkhour(t *testing.T) {
	for h, want := range map[int]bool{5: false, 6: true, 12: true, 17: true, 18: false, 0: false} {
		if got := IsWorkhour(h); got != want {
			t.Fatalf("IsWorkhour(%d)=%v", h, got)
		}
	}
}
