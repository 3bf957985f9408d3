package snowfall

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// monthDayLayout matches how the dashboard prints historical dates ("November 10").
const monthDayLayout = "January 02"

// referenceYear is the non-leap year used to turn day-of-year and month-day
// values back into printable dates.
const referenceYear = 2023

// Date is a calendar date. It carries no time-of-day and no zone, so two
// dates compare equal whenever they name the same day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the normalized date for y-m-d (e.g. Nov 31 becomes Dec 1).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

func (d Date) After(o Date) bool {
	return d.Compare(o) > 0
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// DaysUntil returns the signed number of days from d to o. Both ends are UTC
// midnights, so the Unix difference is a whole number of days.
func (d Date) DaysUntil(o Date) int {
	return int((o.Time().Unix() - d.Time().Unix()) / secondsPerDay)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// YearDay returns the ordinal day within the date's own year (1-366).
func (d Date) YearDay() int {
	return d.Time().YearDay()
}

func (d Date) MonthDay() MonthDay {
	return MonthDay{Month: d.Month, Day: d.Day}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MonthDay is a year-independent position in the calendar.
type MonthDay struct {
	Month time.Month
	Day   int
}

// ParseMonthDay parses an MM-DD string such as "07-01".
func ParseMonthDay(s string) (MonthDay, error) {
	t, err := time.Parse("01-02", s)
	if err != nil {
		return MonthDay{}, fmt.Errorf("invalid month-day %q: %w", s, err)
	}
	return MonthDay{Month: t.Month(), Day: t.Day()}, nil
}

// MonthDayFromYearDay maps an ordinal day (1-365) onto the non-leap
// reference year. Values outside the range are clamped.
func MonthDayFromYearDay(n int) MonthDay {
	if n < 1 {
		n = 1
	}
	if n > 365 {
		n = 365
	}
	t := time.Date(referenceYear, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n-1)
	return MonthDay{Month: t.Month(), Day: t.Day()}
}

// In returns the date this month-day falls on in the given year. Feb 29 in a
// non-leap year rolls over to Mar 1.
func (md MonthDay) In(year int) Date {
	return NewDate(year, md.Month, md.Day)
}

// Compare orders month-days in plain calendar order.
func (md MonthDay) Compare(o MonthDay) int {
	if md.Month != o.Month {
		return cmpInt(int(md.Month), int(o.Month))
	}
	return cmpInt(md.Day, o.Day)
}

func (md MonthDay) String() string {
	// Feb 29 has no place in the reference year; print it by hand.
	if md.Month == time.February && md.Day == 29 {
		return "February 29"
	}
	return time.Date(referenceYear, md.Month, md.Day, 0, 0, 0, 0, time.UTC).Format(monthDayLayout)
}

func (md MonthDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(md.String())
}

func (md *MonthDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(monthDayLayout, s)
	if err != nil {
		return fmt.Errorf("invalid month-day %q: %w", s, err)
	}
	*md = MonthDay{Month: t.Month(), Day: t.Day()}
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
