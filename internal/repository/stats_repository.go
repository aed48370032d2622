package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// StatsRepo computes the raw aggregates behind the admin dashboard.
type StatsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// Counts holds the aggregates read from the database.  Occupancy is
// derived by the service from BookedRooms and TotalRooms.
type Counts struct {
	TotalBookings int
	TotalRevenue  float64
	TotalUsers    int
	BookedRooms   int
	TotalRooms    int
}

// Counts reads all dashboard aggregates.
func (r *StatsRepo) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM booking`).Scan(&c.TotalBookings); err != nil {
		return c, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payment`).Scan(&c.TotalRevenue); err != nil {
		return c, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = ?`, model.RoleUser).Scan(&c.TotalUsers); err != nil {
		return c, err
	}
	const rooms = `SELECT COUNT(*), COALESCE(SUM(CASE WHEN availability = ? THEN 1 ELSE 0 END), 0) FROM rooms`
	if err := r.db.QueryRowContext(ctx, rooms, model.RoomBooked).Scan(&c.TotalRooms, &c.BookedRooms); err != nil {
		return c, err
	}
	return c, nil
}
