package date

import (
	"fmt"
	"time"
)

// ISOFormat is the layout used on the wire and in config files.
const ISOFormat = "2006-01-02"

// Date is a calendar day with no time-of-day or zone, stored as UTC midnight.
type Date struct {
	t time.Time
}

func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime takes the calendar day of t in t's own location.
func FromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

func Parse(s string) (Date, error) {
	t, err := time.Parse(ISOFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// TodayForTest pins Today when non-zero.
var TodayForTest Date

func Today() Date {
	if !TodayForTest.IsZero() {
		return TodayForTest
	}
	return FromTime(time.Now())
}

func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns the day as UTC midnight.
func (d Date) Time() time.Time { return d.t }

func (d Date) Year() int { return d.t.Year() }

func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }

func (d Date) AddDays(n int) Date {
	return Date{d.t.AddDate(0, 0, n)}
}

// AddMonths normalizes overflow the way time.AddDate does (Mar 31 - 1 month = Mar 3).
func (d Date) AddMonths(n int) Date {
	return Date{d.t.AddDate(0, n, 0)}
}

// String renders YYYY-MM-DD with zero-padded month and day.
func (d Date) String() string {
	year, month, day := d.t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
