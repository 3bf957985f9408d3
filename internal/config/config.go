package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/i474232898/first-snowfall/internal/snowfall"
)

var validate = validator.New()

type AppConfig struct {
	OpenWeatherAPIKey string `envconfig:"OPENWEATHER_API_KEY"`
	WeatherAPIKey     string `envconfig:"WEATHERAPI_API_KEY"`
	GeocoderAPIKey    string `envconfig:"GEOCODER_API_KEY"`

	// Files describing the game: where it is played and who guessed what.
	LocationFile string `envconfig:"LOCATION_FILE" default:"config/location.json" validate:"required"`
	GuessesFile  string `envconfig:"GUESSES_FILE" default:"config/guesses.json" validate:"required"`

	// Season window as MM-DD.
	SeasonStart string `envconfig:"SEASON_START" default:"07-01" validate:"required,datetime=01-02"`
	SeasonEnd   string `envconfig:"SEASON_END" default:"12-31" validate:"required,datetime=01-02"`

	// HistoryYears is how many completed seasons feed the historical statistics.
	HistoryYears int `envconfig:"HISTORY_YEARS" default:"20" validate:"gte=0,lte=80"`
	ForecastDays int `envconfig:"FORECAST_DAYS" default:"14" validate:"gte=1,lte=16"`

	// RefreshInterval controls how often the report is rebuilt.
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"15m" validate:"gte=1m"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`

	// In-memory store retention; 0 means unlimited.
	StoreMaxHistory int           `envconfig:"STORE_MAX_HISTORY" default:"96"`
	StoreMaxAge     time.Duration `envconfig:"STORE_MAX_AGE" default:"24h"`

	Port string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
}

// Load reads configuration from the environment (and .env, if present) with
// sensible defaults, then validates it.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Season returns the configured season window.
func (c *AppConfig) Season() (snowfall.SeasonWindow, error) {
	return snowfall.NewSeasonWindow(c.SeasonStart, c.SeasonEnd)
}
