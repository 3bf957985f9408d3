package snowfall

import (
	"fmt"
	"time"
)

// SeasonWindow is the inclusive part of the calendar that counts as "the
// season". When End sorts before Start the window wraps past New Year's.
type SeasonWindow struct {
	Start MonthDay `json:"start"`
	End   MonthDay `json:"end"`
}

// DefaultSeason is the post-summer window, July 1 through December 31.
func DefaultSeason() SeasonWindow {
	return SeasonWindow{
		Start: MonthDay{Month: time.July, Day: 1},
		End:   MonthDay{Month: time.December, Day: 31},
	}
}

// NewSeasonWindow builds a window from two MM-DD strings.
func NewSeasonWindow(start, end string) (SeasonWindow, error) {
	s, err := ParseMonthDay(start)
	if err != nil {
		return SeasonWindow{}, fmt.Errorf("season start: %w", err)
	}
	e, err := ParseMonthDay(end)
	if err != nil {
		return SeasonWindow{}, fmt.Errorf("season end: %w", err)
	}
	return SeasonWindow{Start: s, End: e}, nil
}

// Wraps reports whether the window crosses the year boundary.
func (w SeasonWindow) Wraps() bool {
	return w.End.Compare(w.Start) < 0
}

// Contains reports whether d falls inside the window of its own year.
func (w SeasonWindow) Contains(d Date) bool {
	md := d.MonthDay()
	if w.Wraps() {
		return md.Compare(w.Start) >= 0 || md.Compare(w.End) <= 0
	}
	return md.Compare(w.Start) >= 0 && md.Compare(w.End) <= 0
}

// Bounds returns the first and last date of the season that starts in year.
func (w SeasonWindow) Bounds(year int) (Date, Date) {
	endYear := year
	if w.Wraps() {
		endYear++
	}
	return w.Start.In(year), w.End.In(endYear)
}

// compareInSeason orders month-days on a calendar rotated to begin at the
// season start, so with the default window July sorts first and June last.
func (w SeasonWindow) compareInSeason(a, b MonthDay) int {
	ra, rb := w.rotation(a), w.rotation(b)
	if ra != rb {
		return cmpInt(ra, rb)
	}
	return a.Compare(b)
}

func (w SeasonWindow) rotation(md MonthDay) int {
	if md.Compare(w.Start) >= 0 {
		return 0
	}
	return 1
}

// SeasonDay is one entry of the season calendar.
type SeasonDay struct {
	Date Date `json:"date"`
	Past bool `json:"past"`
}

// SeasonDays lists every date of the season starting in year, flagging the
// ones strictly before today.
func SeasonDays(w SeasonWindow, year int, today Date) []SeasonDay {
	first, last := w.Bounds(year)
	var days []SeasonDay
	for d := first; !d.After(last); d = d.AddDays(1) {
		days = append(days, SeasonDay{Date: d, Past: d.Before(today)})
	}
	return days
}

// CurrentSeasonYear returns the year in which the season containing (or
// next following) today starts.
func CurrentSeasonYear(w SeasonWindow, today Date) int {
	if w.Wraps() && today.MonthDay().Compare(w.End) <= 0 {
		return today.Year - 1
	}
	return today.Year
}
