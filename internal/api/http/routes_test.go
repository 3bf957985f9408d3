package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/first-snowfall/internal/snowfall"
	"github.com/i474232898/first-snowfall/internal/store"
)

var testNow = time.Date(2024, 11, 12, 18, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, guesses []snowfall.Guess) *fiber.App {
	t.Helper()

	app := fiber.New()
	memStore := store.NewMemoryStore(10, 0)
	svc := snowfall.NewService(memStore, nil, nil, snowfall.Game{
		Location: snowfall.Location{Name: "Test", Latitude: 45, Longitude: -93},
		Season:   snowfall.DefaultSeason(),
		Guesses:  guesses,
	})
	svc.SetClock(func() time.Time { return testNow })
	RegisterRoutes(app, svc)
	return app
}

func defaultGuesses() []snowfall.Guess {
	return []snowfall.Guess{
		{Player: "Alice", Date: snowfall.NewDate(2024, time.November, 10)},
		{Player: "Bob", Date: snowfall.NewDate(2024, time.November, 20)},
	}
}

func get(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, body)
	}
}

// TestClosestDateValidation verifies that the closest-guess endpoint only
// accepts YYYY-MM-DD dates.
func TestClosestDateValidation(t *testing.T) {
	app := newTestApp(t, defaultGuesses())

	expectStatus(t, get(t, app, "/api/v1/guesses/closest"), http.StatusBadRequest)
	expectStatus(t, get(t, app, "/api/v1/guesses/closest?date=11/15/2024"), http.StatusBadRequest)

	resp := get(t, app, "/api/v1/guesses/closest?date=2024-11-15")
	expectStatus(t, resp, http.StatusOK)

	var res snowfall.GuessResolution
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Winners) != 2 || res.DistanceDays != 5 {
		t.Fatalf("expected a two-way tie at 5 days, got %+v", res)
	}
}

func TestReportLifecycle(t *testing.T) {
	app := newTestApp(t, defaultGuesses())

	expectStatus(t, get(t, app, "/api/v1/report"), http.StatusNotFound)
	expectStatus(t, get(t, app, "/api/v1/report?refresh=true"), http.StatusOK)

	resp := get(t, app, "/api/v1/report")
	expectStatus(t, resp, http.StatusOK)

	var snap snowfall.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.ID == "" {
		t.Fatal("expected a snapshot id")
	}
	if got := snap.Report.ClosestToToday.Winners; len(got) != 1 || got[0] != "Alice" {
		t.Fatalf("expected Alice closest to today, got %v", got)
	}
	if snap.Report.HistoricalStats != nil {
		t.Fatal("expected no historical statistics without an archive")
	}
}

func TestReportRefreshWithoutGuesses(t *testing.T) {
	app := newTestApp(t, nil)
	expectStatus(t, get(t, app, "/api/v1/report?refresh=true"), http.StatusUnprocessableEntity)
}

func TestReportHistoryValidation(t *testing.T) {
	app := newTestApp(t, defaultGuesses())

	expectStatus(t, get(t, app, "/api/v1/report/history"), http.StatusBadRequest)
	expectStatus(t, get(t, app, "/api/v1/report/history?from=yesterday&to=today"), http.StatusBadRequest)

	from := strconv.FormatInt(testNow.Add(-time.Hour).Unix(), 10)
	to := strconv.FormatInt(testNow.Add(time.Hour).Unix(), 10)

	// to before from
	expectStatus(t, get(t, app, "/api/v1/report/history?from="+to+"&to="+from), http.StatusBadRequest)
	expectStatus(t, get(t, app, "/api/v1/report/history?from="+from+"&to="+to), http.StatusNotFound)

	expectStatus(t, get(t, app, "/api/v1/report?refresh=true"), http.StatusOK)
	expectStatus(t, get(t, app, "/api/v1/report/history?from="+from+"&to="+to), http.StatusOK)
}

func TestSeasonDays(t *testing.T) {
	app := newTestApp(t, defaultGuesses())

	resp := get(t, app, "/api/v1/season/days")
	expectStatus(t, resp, http.StatusOK)

	var body struct {
		Today snowfall.Date        `json:"today"`
		Days  []snowfall.SeasonDay `json:"days"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Today != snowfall.NewDate(2024, time.November, 12) {
		t.Fatalf("unexpected today %v", body.Today)
	}
	if len(body.Days) != 184 {
		t.Fatalf("expected 184 days from July through December, got %d", len(body.Days))
	}
}
