package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"marketmuse_backend/services"
)

// Seeder performs the initial fetch for symbols missing from the cache.
type Seeder interface {
	SeedMissing(ctx context.Context, symbols []string) services.SeedResult
}

// Scheduler manages the refresh loop and the periodic jobs around it
type Scheduler struct {
	cron        *gocron.Scheduler
	refresher   *Refresher
	seeder      Seeder
	seedSymbols []string
	seedEvery   time.Duration
	log         *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a new scheduler instance
func NewScheduler(refresher *Refresher, seeder Seeder, seedSymbols []string, seedEvery time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:        gocron.NewScheduler(time.UTC),
		refresher:   refresher,
		seeder:      seeder,
		seedSymbols: seedSymbols,
		seedEvery:   seedEvery,
		log:         log,
	}
}

// Start starts the refresh loop and all scheduled jobs
func (s *Scheduler) Start(parent context.Context) error {
	s.log.Info("Starting scheduler...")
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel

	// Re-seed configured symbols that were removed or never fetched
	if s.seeder != nil && len(s.seedSymbols) > 0 {
		_, err := s.cron.Every(s.seedEvery).WaitForSchedule().SingletonMode().Do(func() {
			s.seeder.SeedMissing(ctx, s.seedSymbols)
		})
		if err != nil {
			cancel()
			return err
		}
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.refresher.Run(ctx)
	}()

	s.cron.StartAsync()
	s.log.Info("Scheduler started successfully")
	return nil
}

// Stop cancels the refresh loop, waits for it to exit and stops the jobs
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.cron.Stop()
	s.log.Info("Scheduler stopped")
}
