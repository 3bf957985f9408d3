package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/first-snowfall/internal/snowfall"
	"github.com/i474232898/first-snowfall/internal/store"
)

var validate = validator.New()

// refreshTimeout bounds an on-demand refresh triggered through the API.
const refreshTimeout = 90 * time.Second

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *snowfall.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/report", func(c *fiber.Ctx) error {
		var q reportQuery
		if err := c.QueryParser(&q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if q.Refresh {
			ctx, cancel := context.WithTimeout(c.UserContext(), refreshTimeout)
			defer cancel()

			snapshot, err := service.Refresh(ctx)
			if err != nil {
				return reportError(err)
			}
			return c.JSON(snapshot)
		}

		snapshot, err := service.GetLatest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no report has been built yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load report")
		}

		return c.JSON(snapshot)
	})

	v1.Get("/report/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshots, err := service.GetRange(req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no reports for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load report history")
		}

		return c.JSON(fiber.Map{
			"from":      req.From,
			"to":        req.To,
			"snapshots": snapshots,
		})
	})

	v1.Get("/guesses/closest", func(c *fiber.Ctx) error {
		q := closestQuery{Date: c.Query("date")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be given as YYYY-MM-DD")
		}

		target, err := snowfall.ParseDate(q.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, err := service.ClosestTo(target)
		if err != nil {
			return reportError(err)
		}
		return c.JSON(res)
	})

	v1.Get("/season/days", func(c *fiber.Ctx) error {
		game := service.Game()
		return c.JSON(fiber.Map{
			"season": game.Season,
			"today":  service.Today(),
			"days":   service.CurrentSeasonDays(),
		})
	})
}

// reportError maps engine failures onto HTTP errors.
func reportError(err error) error {
	switch {
	case errors.Is(err, snowfall.ErrNoGuesses):
		return fiber.NewError(fiber.StatusUnprocessableEntity, "no valid guesses are configured")
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusGatewayTimeout, "refreshing the report timed out")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build report")
	}
}

type reportQuery struct {
	Refresh bool `query:"refresh"`
}

type closestQuery struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
