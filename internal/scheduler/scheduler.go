// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-booking/internal/service"
)

// AvailabilityChecker is the part of service.AvailabilityChecker the
// scheduler depends on.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, repair bool) (service.AvailabilityReport, error)
}

// Scheduler wraps a gocron scheduler running the availability check.
type Scheduler struct {
	s   gocron.Scheduler
	log *zap.Logger
}

// New registers the availability check to run every interval.  Runs do
// not overlap; a slow run delays the next one.
func New(checker AvailabilityChecker, interval time.Duration, repair bool, log *zap.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(runCheck, checker, repair, log),
		gocron.WithName("availability-check"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}
	return &Scheduler{s: s, log: log}, nil
}

// Start begins running jobs in the background.
func (sc *Scheduler) Start() {
	sc.s.Start()
	sc.log.Info("scheduler started")
}

// Shutdown stops the scheduler and waits for running jobs.
func (sc *Scheduler) Shutdown() error {
	return sc.s.Shutdown()
}

func runCheck(checker AvailabilityChecker, repair bool, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	rep, err := checker.CheckAvailability(ctx, repair)
	if err != nil {
		log.Error("availability check failed", zap.Error(err))
		return
	}
	log.Debug("availability check done",
		zap.Int("orphaned_booked", len(rep.OrphanedBooked)),
		zap.Int("unflagged_booked", len(rep.UnflaggedBooked)),
		zap.Int("repaired", rep.Repaired))
}
