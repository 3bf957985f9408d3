package snowfall

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// historyFetchConcurrency bounds parallel archive requests per refresh.
const historyFetchConcurrency = 4

// Game is the configured round: where, which window, and who guessed what.
type Game struct {
	Location     Location
	Season       SeasonWindow
	Guesses      []Guess
	Skipped      []*MalformedGuessError
	HistoryYears int
}

// Service fetches forecasts and history from providers, builds reports and
// keeps them in the store.
type Service struct {
	store       Store
	forecasters []ForecastProvider
	history     HistoryProvider
	game        Game
	tz          *time.Location
	now         func() time.Time
}

// NewService creates a new Service. history may be nil, in which case
// reports carry no historical section.
func NewService(store Store, forecasters []ForecastProvider, history HistoryProvider, game Game) *Service {
	tz := time.UTC
	if game.Location.Timezone != "" {
		loaded, err := time.LoadLocation(game.Location.Timezone)
		if err != nil {
			log.Printf("WARN: unknown timezone %q, using UTC: %v", game.Location.Timezone, err)
		} else {
			tz = loaded
		}
	}

	return &Service{
		store:       store,
		forecasters: forecasters,
		history:     history,
		game:        game,
		tz:          tz,
		now:         time.Now,
	}
}

// SetClock replaces the wall clock used to decide what "today" is.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) Game() Game {
	return s.game
}

// Today is the current calendar date at the game location.
func (s *Service) Today() Date {
	return DateOf(s.now().In(s.tz))
}

// Refresh fetches all sources, builds a report and stores it.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	today := s.Today()
	loc := s.game.Location

	log.Printf("DEBUG: Refresh called for %s with %d forecast providers", loc.Key(), len(s.forecasters))

	forecasts := s.fetchForecasts(ctx, loc)
	historical, unavailable := s.fetchHistory(ctx, loc, today)

	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	report, err := BuildReport(ReportInput{
		Today:            today,
		Season:           s.game.Season,
		Location:         loc,
		Guesses:          s.game.Guesses,
		Skipped:          s.game.Skipped,
		Forecasts:        forecasts,
		Historical:       historical,
		UnavailableYears: unavailable,
	})
	if err != nil {
		log.Printf("ERROR: building report for %s: %v", loc.Key(), err)
		return Snapshot{}, fmt.Errorf("build report: %w", err)
	}

	snapshot := Snapshot{
		ID:          uuid.New().String(),
		GeneratedAt: s.now().UTC(),
		Report:      report,
	}
	s.store.SaveSnapshot(loc, snapshot)
	return snapshot, nil
}

// fetchForecasts asks every provider concurrently. Failed providers map to
// nil so the report marks them unavailable.
func (s *Service) fetchForecasts(ctx context.Context, loc Location) map[string]*Series {
	var (
		g         errgroup.Group
		mu        sync.Mutex
		forecasts = make(map[string]*Series, len(s.forecasters))
	)

	for _, p := range s.forecasters {
		g.Go(func() error {
			series, err := p.FetchForecast(ctx, loc)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				// Log and continue; a missing forecast is a valid report state.
				log.Printf("provider %s forecast failed for %s: %v", p.Name(), loc.Key(), err)
				forecasts[p.Name()] = nil
				return nil
			}
			forecasts[p.Name()] = &series
			return nil
		})
	}

	_ = g.Wait()
	return forecasts
}

// fetchHistory loads the configured number of completed seasons before the
// current one. Years that fail to load are returned separately.
func (s *Service) fetchHistory(ctx context.Context, loc Location, today Date) (map[int]Series, []int) {
	historical := make(map[int]Series)
	if s.history == nil || s.game.HistoryYears <= 0 {
		return historical, nil
	}

	last := CurrentSeasonYear(s.game.Season, today) - 1
	first := last - s.game.HistoryYears + 1

	var (
		mu          sync.Mutex
		unavailable []int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(historyFetchConcurrency)

	for year := first; year <= last; year++ {
		g.Go(func() error {
			series, err := s.history.FetchSeason(gctx, loc, year, s.game.Season)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				log.Printf("history fetch failed for %s season %d: %v", loc.Key(), year, err)
				unavailable = append(unavailable, year)
				return nil
			}
			historical[year] = series
			return nil
		})
	}

	_ = g.Wait()
	log.Printf("INFO: loaded %d of %d historical seasons for %s", len(historical), last-first+1, loc.Key())
	return historical, unavailable
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest() (Snapshot, error) {
	return s.store.GetLatest(s.game.Location)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(from, to time.Time) ([]Snapshot, error) {
	return s.store.GetRange(s.game.Location, from, to)
}

// ClosestTo resolves the configured guesses against an arbitrary date.
func (s *Service) ClosestTo(target Date) (GuessResolution, error) {
	return ResolveClosest(s.game.Guesses, target)
}

// CurrentSeasonDays lists the days of the season in play, flagging past ones.
func (s *Service) CurrentSeasonDays() []SeasonDay {
	today := s.Today()
	return SeasonDays(s.game.Season, CurrentSeasonYear(s.game.Season, today), today)
}
