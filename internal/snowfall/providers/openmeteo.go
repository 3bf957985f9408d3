package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/i474232898/first-snowfall/internal/snowfall"
)

// openMeteoDaily is the daily block shared by the forecast and archive APIs.
type openMeteoDaily struct {
	Daily struct {
		Time        []string   `json:"time"`
		SnowfallSum []*float64 `json:"snowfall_sum"`
	} `json:"daily"`
}

// OpenMeteoProvider implements snowfall.ForecastProvider for the Open-Meteo
// daily forecast (up to 16 days, 14 by default).
type OpenMeteoProvider struct {
	name    string
	baseURL string
	days    int
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, days int) *OpenMeteoProvider {
	if days <= 0 {
		days = 14
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		days:    days,
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, loc snowfall.Location) (snowfall.Series, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(loc.Latitude))
	values.Set("longitude", formatCoord(loc.Longitude))
	values.Set("daily", "snowfall_sum")
	values.Set("timezone", "auto")
	values.Set("forecast_days", strconv.Itoa(p.days))

	var payload openMeteoDaily
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL, values, &payload); err != nil {
		return snowfall.Series{}, err
	}

	return dailySeries(payload.Daily.Time, payload.Daily.SnowfallSum)
}

// OpenMeteoArchive implements snowfall.HistoryProvider using the Open-Meteo
// historical weather API.
type OpenMeteoArchive struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoArchive(client *http.Client) *OpenMeteoArchive {
	return &OpenMeteoArchive{
		baseURL: "https://archive-api.open-meteo.com/v1/archive",
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("openmeteo-archive"),
	}
}

func (a *OpenMeteoArchive) FetchSeason(ctx context.Context, loc snowfall.Location, year int, season snowfall.SeasonWindow) (snowfall.Series, error) {
	start, end := season.Bounds(year)

	values := url.Values{}
	values.Set("latitude", formatCoord(loc.Latitude))
	values.Set("longitude", formatCoord(loc.Longitude))
	values.Set("start_date", start.String())
	values.Set("end_date", end.String())
	values.Set("daily", "snowfall_sum")
	values.Set("timezone", "auto")

	var payload openMeteoDaily
	if err := getJSON(ctx, a.httpCfg, a.circuit, a.baseURL, values, &payload); err != nil {
		return snowfall.Series{}, fmt.Errorf("archive %d: %w", year, err)
	}

	return dailySeries(payload.Daily.Time, payload.Daily.SnowfallSum)
}
