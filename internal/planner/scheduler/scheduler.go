package scheduler

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"planner-backend/internal/planner/usecase"
)

// SyncScheduler runs reconciliation passes on a cron schedule
type SyncScheduler struct {
	plannerUsecase usecase.PlannerUsecase
	cron           *cron.Cron
	inFlight       atomic.Bool
}

// NewSyncScheduler creates a scheduler for the given cron spec, e.g.
// "@every 15m" or "0 * * * *".
func NewSyncScheduler(plannerUsecase usecase.PlannerUsecase, spec string) (*SyncScheduler, error) {
	s := &SyncScheduler{
		plannerUsecase: plannerUsecase,
		cron:           cron.New(),
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins the scheduler loop
func (s *SyncScheduler) Start() {
	log.Println("[Scheduler] background sync started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for a running pass to finish
func (s *SyncScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("[Scheduler] background sync stopped")
}

// run executes one pass. Overlapping passes are skipped: the engine admits a
// single logical writer at a time.
func (s *SyncScheduler) run() {
	if !s.inFlight.CompareAndSwap(false, true) {
		log.Println("[Scheduler] previous sync still running, skipping")
		return
	}
	defer s.inFlight.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.plannerUsecase.Sync(ctx); err != nil {
		log.Printf("[Scheduler] sync pass failed: %v", err)
	}
}
