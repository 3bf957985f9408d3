package snowfall

import (
	"context"
	"time"
)

// ForecastProvider abstracts an upstream forecast (e.g. OpenWeatherMap, Open-Meteo).
// Implementations return one sample per local calendar day.
type ForecastProvider interface {
	Name() string
	FetchForecast(ctx context.Context, loc Location) (Series, error)
}

// HistoryProvider returns the observed daily snowfall of one season.
type HistoryProvider interface {
	FetchSeason(ctx context.Context, loc Location, year int, season SeasonWindow) (Series, error)
}

// Snapshot is a stored report together with the refresh that produced it.
type Snapshot struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"` // always UTC
	Report      Report    `json:"report"`
}

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	SaveSnapshot(loc Location, snapshot Snapshot)
	GetLatest(loc Location) (Snapshot, error)
	GetRange(loc Location, from, to time.Time) ([]Snapshot, error)
}
