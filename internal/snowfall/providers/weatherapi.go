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

// WeatherAPIProvider implements snowfall.ForecastProvider for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	days    int
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string, days int) *WeatherAPIProvider {
	if days <= 0 {
		days = 3
	}
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		days:    days,
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, loc snowfall.Location) (snowfall.Series, error) {
	if p.apiKey == "" {
		return snowfall.Series{}, fmt.Errorf("weatherapi api key is not configured")
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	// WeatherAPI uses "q" for location; it accepts "lat,lon".
	values.Set("q", fmt.Sprintf("%f,%f", loc.Latitude, loc.Longitude))
	values.Set("days", strconv.Itoa(p.days))

	var payload struct {
		Forecast struct {
			ForecastDay []struct {
				Date string `json:"date"`
				Day  struct {
					TotalSnowCm float64 `json:"totalsnow_cm"`
				} `json:"day"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}

	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL, values, &payload); err != nil {
		return snowfall.Series{}, err
	}

	samples := make([]snowfall.Sample, 0, len(payload.Forecast.ForecastDay))
	for _, fd := range payload.Forecast.ForecastDay {
		d, err := snowfall.ParseDate(fd.Date)
		if err != nil {
			return snowfall.Series{}, fmt.Errorf("%w: %v", errMalformed, err)
		}
		samples = append(samples, snowfall.Sample{Date: d, Amount: fd.Day.TotalSnowCm})
	}

	return snowfall.NewSeries(samples)
}
