package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/first-snowfall/internal/api/http"
	"github.com/i474232898/first-snowfall/internal/config"
	"github.com/i474232898/first-snowfall/internal/geocode"
	"github.com/i474232898/first-snowfall/internal/scheduler"
	"github.com/i474232898/first-snowfall/internal/snowfall"
	"github.com/i474232898/first-snowfall/internal/snowfall/providers"
	"github.com/i474232898/first-snowfall/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	season, err := cfg.Season()
	if err != nil {
		log.Fatalf("invalid season window: %v", err)
	}

	loc, err := config.LoadLocation(cfg.LocationFile, geocode.NewGoogleGeocoder(cfg.GeocoderAPIKey))
	if err != nil {
		log.Fatalf("failed to load location: %v", err)
	}

	rawGuesses, err := config.LoadGuesses(cfg.GuessesFile)
	if err != nil {
		log.Fatalf("failed to load guesses: %v", err)
	}
	guesses, skipped := snowfall.ParseGuesses(rawGuesses)
	for _, bad := range skipped {
		log.Printf("WARN: skipping guess: %v", bad)
	}
	if len(guesses) == 0 {
		log.Fatalf("no usable guesses in %s: %v", cfg.GuessesFile, snowfall.ErrNoGuesses)
	}
	log.Printf("INFO: %d guesses loaded for %s (%.4f, %.4f)", len(guesses), loc.Name, loc.Latitude, loc.Longitude)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Forecast providers with resilience (backoff + circuit breaker). Keyed
	// providers are only added when a key is configured.
	var forecasters []snowfall.ForecastProvider
	if cfg.OpenWeatherAPIKey != "" {
		forecasters = append(forecasters, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey))
	}
	forecasters = append(forecasters, providers.NewOpenMeteoProvider(httpClient, cfg.ForecastDays))
	if cfg.WeatherAPIKey != "" {
		forecasters = append(forecasters, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey, 3))
	}

	service := snowfall.NewService(memStore, forecasters, providers.NewOpenMeteoArchive(httpClient), snowfall.Game{
		Location:     loc,
		Season:       season,
		Guesses:      guesses,
		Skipped:      skipped,
		HistoryYears: cfg.HistoryYears,
	})

	// Scheduler that periodically rebuilds the report.
	sched := scheduler.New(cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "first-snowfall",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          2 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(compress.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "first-snowfall",
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
