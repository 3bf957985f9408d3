package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/first-snowfall/internal/snowfall"
)

// refreshTimeout bounds one refresh; twenty archive seasons plus forecasts
// take a while on a cold upstream.
const refreshTimeout = 2 * time.Minute

// Refresher is the part of snowfall.Service the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context) (snowfall.Snapshot, error)
}

// Scheduler periodically rebuilds the game report.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, service Refresher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler. The
// first run happens immediately.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce performs a single refresh.
func (s *Scheduler) RunOnce() {
	log.Println("scheduler: running report refresh job")

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	snap, err := s.service.Refresh(ctx)
	if err != nil {
		log.Printf("scheduler: refresh failed: %v", err)
		return
	}
	log.Printf("scheduler: completed report refresh %s", snap.ID)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
