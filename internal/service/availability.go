package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// AvailabilityReport lists rooms whose availability flag disagrees with
// the booking table.
type AvailabilityReport struct {
	OrphanedBooked  []uint64 `json:"orphaned_booked"`
	UnflaggedBooked []uint64 `json:"unflagged_booked"`
	Repaired        int      `json:"repaired"`
}

// Consistent reports whether no mismatches were found.
func (r AvailabilityReport) Consistent() bool {
	return len(r.OrphanedBooked) == 0 && len(r.UnflaggedBooked) == 0
}

// AvailabilityChecker detects and optionally repairs rooms whose flag
// drifted from the booking table, e.g. after manual edits.
type AvailabilityChecker struct {
	db   *sql.DB
	repo *repository.AvailabilityRepo
	log  *zap.Logger
}

func NewAvailabilityChecker(db *sql.DB, log *zap.Logger) *AvailabilityChecker {
	return &AvailabilityChecker{db: db, repo: repository.NewAvailabilityRepo(db), log: log}
}

// CheckAvailability finds both kinds of mismatch.  With repair set the
// rooms are corrected in one transaction.
func (c *AvailabilityChecker) CheckAvailability(ctx context.Context, repair bool) (AvailabilityReport, error) {
	var rep AvailabilityReport
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return rep, persistence("could not start transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if rep.OrphanedBooked, err = c.repo.Orphaned(ctx, tx); err != nil {
		return rep, persistence("could not scan rooms", err)
	}
	if rep.UnflaggedBooked, err = c.repo.Unflagged(ctx, tx); err != nil {
		return rep, persistence("could not scan rooms", err)
	}
	if repair && !rep.Consistent() {
		n, err := c.repo.SetAvailabilityTx(ctx, tx, rep.OrphanedBooked, model.RoomAvailable)
		if err != nil {
			return rep, persistence("could not release rooms", err)
		}
		m, err := c.repo.SetAvailabilityTx(ctx, tx, rep.UnflaggedBooked, model.RoomBooked)
		if err != nil {
			return rep, persistence("could not flag rooms", err)
		}
		rep.Repaired = n + m
	}
	if err := tx.Commit(); err != nil {
		return rep, persistence("could not commit repair", err)
	}
	committed = true

	if !rep.Consistent() {
		c.log.Warn("room availability mismatch",
			zap.Uint64s("orphaned_booked", rep.OrphanedBooked),
			zap.Uint64s("unflagged_booked", rep.UnflaggedBooked),
			zap.Int("repaired", rep.Repaired))
	}
	return rep, nil
}
