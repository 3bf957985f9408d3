package snowfall

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrEmptyDataset is returned when statistics are requested over zero records.
	ErrEmptyDataset = errors.New("no first-snowfall records to summarize")

	// ErrNoGuesses is returned when there is nothing to resolve against.
	ErrNoGuesses = errors.New("no guesses configured")

	errDuplicateDate  = errors.New("duplicate sample date")
	errInvalidAmount  = errors.New("snowfall amount must be a non-negative number")
	errDuplicateGuess = errors.New("duplicate player")
	errEmptyPlayer    = errors.New("player name is empty")
)

// MalformedGuessError reports a single guess entry that could not be used.
type MalformedGuessError struct {
	Player string
	Value  string
	Err    error
}

func (e *MalformedGuessError) Error() string {
	return fmt.Sprintf("malformed guess for %q (%q): %v", e.Player, e.Value, e.Err)
}

func (e *MalformedGuessError) Unwrap() error {
	return e.Err
}

// Location is the place the game is played for.
type Location struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f:%.4f", l.Latitude, l.Longitude)
}

// Sample is one day's snowfall amount. Units depend on the source; only
// amount > 0 carries meaning.
type Sample struct {
	Date   Date    `json:"date"`
	Amount float64 `json:"amount"`
}

// Series is an immutable run of samples, strictly increasing by date.
type Series struct {
	samples []Sample
}

// NewSeries validates and orders samples. Duplicate dates and negative or
// NaN amounts are rejected.
func NewSeries(samples []Sample) (Series, error) {
	sorted := make([]Sample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	for i, s := range sorted {
		if math.IsNaN(s.Amount) || math.IsInf(s.Amount, 0) || s.Amount < 0 {
			return Series{}, fmt.Errorf("%w: %v on %s", errInvalidAmount, s.Amount, s.Date)
		}
		if i > 0 && sorted[i-1].Date == s.Date {
			return Series{}, fmt.Errorf("%w: %s", errDuplicateDate, s.Date)
		}
	}
	return Series{samples: sorted}, nil
}

// AccumulateDaily sums sub-daily samples (e.g. 3-hourly forecast steps) into
// one sample per calendar date.
func AccumulateDaily(samples []Sample) (Series, error) {
	totals := make(map[Date]float64, len(samples))
	order := make([]Date, 0, len(samples))
	for _, s := range samples {
		if _, seen := totals[s.Date]; !seen {
			order = append(order, s.Date)
		}
		totals[s.Date] += s.Amount
	}

	daily := make([]Sample, 0, len(order))
	for _, d := range order {
		daily = append(daily, Sample{Date: d, Amount: totals[d]})
	}
	return NewSeries(daily)
}

func (s Series) Len() int {
	return len(s.samples)
}

func (s Series) At(i int) Sample {
	return s.samples[i]
}

// Samples returns a copy of the underlying samples.
func (s Series) Samples() []Sample {
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// FirstSnowfallRecord is the first in-season snowfall date of one season-year.
type FirstSnowfallRecord struct {
	Year int  `json:"year"`
	Date Date `json:"date"`
}

// HistoricalStatistics summarizes a set of records, year-independently.
type HistoricalStatistics struct {
	Earliest MonthDay `json:"earliest"`
	Latest   MonthDay `json:"latest"`
	Average  MonthDay `json:"average"`

	// AverageDayOfYear is the unrounded mean ordinal behind Average.
	AverageDayOfYear float64 `json:"averageDayOfYear"`
	Count            int     `json:"count"`
}

// Guess is one player's predicted first-snowfall date.
type Guess struct {
	Player string `json:"player"`
	Date   Date   `json:"date"`
}

// GuessResolution lists every player at the minimum distance to Target.
type GuessResolution struct {
	Target       Date     `json:"targetDate"`
	Winners      []string `json:"winners"`
	DistanceDays int      `json:"distanceDays"`
}

// RawGuess is a guess as it appears in configuration, before date parsing.
type RawGuess struct {
	Player string
	Value  string
}

// ParseGuesses converts raw entries into guesses, keeping input order.
// Entries that cannot be used are returned separately so callers can report
// them and continue with the rest.
func ParseGuesses(raw []RawGuess) ([]Guess, []*MalformedGuessError) {
	var (
		guesses []Guess
		bad     []*MalformedGuessError
		seen    = make(map[string]bool, len(raw))
	)

	for _, r := range raw {
		if r.Player == "" {
			bad = append(bad, &MalformedGuessError{Player: r.Player, Value: r.Value, Err: errEmptyPlayer})
			continue
		}
		if seen[r.Player] {
			bad = append(bad, &MalformedGuessError{Player: r.Player, Value: r.Value, Err: errDuplicateGuess})
			continue
		}
		d, err := ParseDate(r.Value)
		if err != nil {
			bad = append(bad, &MalformedGuessError{Player: r.Player, Value: r.Value, Err: err})
			continue
		}
		seen[r.Player] = true
		guesses = append(guesses, Guess{Player: r.Player, Date: d})
	}

	return guesses, bad
}
