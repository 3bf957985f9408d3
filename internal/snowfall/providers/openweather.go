package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/first-snowfall/internal/snowfall"
)

// OpenWeatherProvider implements snowfall.ForecastProvider for the
// OpenWeatherMap 5 day / 3 hour forecast.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/forecast",
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, loc snowfall.Location) (snowfall.Series, error) {
	if p.apiKey == "" {
		return snowfall.Series{}, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	values.Set("lat", formatCoord(loc.Latitude))
	values.Set("lon", formatCoord(loc.Longitude))

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Snow struct {
				ThreeH float64 `json:"3h"`
			} `json:"snow"`
		} `json:"list"`
		City struct {
			// Timezone is the shift in seconds from UTC.
			Timezone int `json:"timezone"`
		} `json:"city"`
	}

	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL, values, &payload); err != nil {
		return snowfall.Series{}, err
	}

	// Steps are bucketed by the local calendar day of the forecast city.
	zone := time.FixedZone("", payload.City.Timezone)

	steps := make([]snowfall.Sample, 0, len(payload.List))
	for _, item := range payload.List {
		steps = append(steps, snowfall.Sample{
			Date:   snowfall.DateOf(time.Unix(item.Dt, 0).In(zone)),
			Amount: item.Snow.ThreeH,
		})
	}

	return snowfall.AccumulateDaily(steps)
}
