package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// AvailabilityRepo finds rooms whose availability flag disagrees with the
// booking table and corrects them.
type AvailabilityRepo struct {
	db *sql.DB
}

func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

// Orphaned returns rooms flagged booked that no booking references.
func (r *AvailabilityRepo) Orphaned(ctx context.Context, tx *sql.Tx) ([]uint64, error) {
	const q = `SELECT r.room_id FROM rooms r
               WHERE r.availability = ?
                 AND NOT EXISTS (SELECT 1 FROM booking b WHERE b.room_id = r.room_id)
               ORDER BY r.room_id`
	return r.ids(ctx, r.pick(tx), q, model.RoomBooked)
}

// Unflagged returns rooms flagged available that a booking references.
func (r *AvailabilityRepo) Unflagged(ctx context.Context, tx *sql.Tx) ([]uint64, error) {
	const q = `SELECT r.room_id FROM rooms r
               WHERE r.availability = ?
                 AND EXISTS (SELECT 1 FROM booking b WHERE b.room_id = r.room_id)
               ORDER BY r.room_id`
	return r.ids(ctx, r.pick(tx), q, model.RoomAvailable)
}

// SetAvailabilityTx sets the availability of each listed room.
func (r *AvailabilityRepo) SetAvailabilityTx(ctx context.Context, tx *sql.Tx, roomIDs []uint64, availability string) (int, error) {
	total := 0
	for _, id := range roomIDs {
		res, err := tx.ExecContext(ctx, `UPDATE rooms SET availability = ? WHERE room_id = ?`, availability, id)
		if err != nil {
			return total, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, err
		}
		total += int(n)
	}
	return total, nil
}

func (r *AvailabilityRepo) pick(tx *sql.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *AvailabilityRepo) ids(ctx context.Context, q querier, query string, args ...any) ([]uint64, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := []uint64{}
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
