package snowfall

import (
	"errors"
	"sort"
)

// PredictionStatus distinguishes "no snow in the forecast" from "no forecast".
type PredictionStatus string

const (
	PredictionPredicted   PredictionStatus = "predicted"
	PredictionNone        PredictionStatus = "none"
	PredictionUnavailable PredictionStatus = "unavailable"
)

// Prediction is one provider's forecasted first-snowfall date, if any.
type Prediction struct {
	Status PredictionStatus `json:"status"`
	Date   *Date            `json:"date,omitempty"`
}

// SkippedGuess is a configuration entry left out of the evaluation.
type SkippedGuess struct {
	Player string `json:"player"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// ReportInput is everything one evaluation needs. A nil forecast series
// means the provider could not be reached.
type ReportInput struct {
	Today    Date
	Season   SeasonWindow
	Location Location
	Guesses  []Guess
	Skipped  []*MalformedGuessError

	Forecasts        map[string]*Series
	Historical       map[int]Series
	UnavailableYears []int
}

// Report is the structured outcome of one evaluation.
type Report struct {
	Today    Date         `json:"today"`
	Season   SeasonWindow `json:"season"`
	Location Location     `json:"location"`

	ClosestToToday    GuessResolution             `json:"closestToToday"`
	ClosestToForecast map[string]*GuessResolution `json:"closestToForecast"`
	Predictions       map[string]Prediction       `json:"predictions"`

	HistoricalStats     *HistoricalStatistics `json:"historicalStats"`
	HistoricalRecords   []FirstSnowfallRecord `json:"historicalRecords"`
	HistoricalFrequency []FrequencyBucket     `json:"historicalFrequency"`
	UnavailableYears    []int                 `json:"unavailableYears"`

	Guesses        []Guess        `json:"guesses"`
	SkippedGuesses []SkippedGuess `json:"skippedGuesses"`
}

// BuildReport runs prediction, aggregation and resolution over in. Missing
// forecasts and an empty history become explicit absent markers; only an
// empty guess list fails.
func BuildReport(in ReportInput) (Report, error) {
	today, err := ResolveClosest(in.Guesses, in.Today)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Today:             in.Today,
		Season:            in.Season,
		Location:          in.Location,
		ClosestToToday:    today,
		ClosestToForecast: make(map[string]*GuessResolution, len(in.Forecasts)),
		Predictions:       make(map[string]Prediction, len(in.Forecasts)),
		Guesses:           append([]Guess(nil), in.Guesses...),
		SkippedGuesses:    make([]SkippedGuess, 0, len(in.Skipped)),
	}

	for provider, series := range in.Forecasts {
		if series == nil {
			report.Predictions[provider] = Prediction{Status: PredictionUnavailable}
			report.ClosestToForecast[provider] = nil
			continue
		}

		date, ok := PredictFirstSnowfall(*series, in.Season)
		if !ok {
			report.Predictions[provider] = Prediction{Status: PredictionNone}
			report.ClosestToForecast[provider] = nil
			continue
		}

		d := date
		report.Predictions[provider] = Prediction{Status: PredictionPredicted, Date: &d}

		res, err := ResolveClosest(in.Guesses, date)
		if err != nil {
			return Report{}, err
		}
		report.ClosestToForecast[provider] = &res
	}

	report.HistoricalRecords = BuildFirstSnowfallRecords(in.Historical, in.Season)
	report.HistoricalFrequency = SnowfallFrequency(report.HistoricalRecords, in.Season)

	stats, err := ComputeStatistics(report.HistoricalRecords, in.Season)
	switch {
	case err == nil:
		report.HistoricalStats = &stats
	case !errors.Is(err, ErrEmptyDataset):
		return Report{}, err
	}

	report.UnavailableYears = append([]int{}, in.UnavailableYears...)
	sort.Ints(report.UnavailableYears)

	for _, bad := range in.Skipped {
		reason := "unknown"
		if bad.Err != nil {
			reason = bad.Err.Error()
		}
		report.SkippedGuesses = append(report.SkippedGuesses, SkippedGuess{
			Player: bad.Player,
			Value:  bad.Value,
			Reason: reason,
		})
	}

	return report, nil
}
