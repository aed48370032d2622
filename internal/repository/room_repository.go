package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// RoomRepo provides read access to rooms and the availability transitions
// used by the booking workflow.  The transition methods take an explicit
// transaction; the caller must commit or rollback.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomSelect = `SELECT r.room_id, r.room_number, r.hotel_id, r.room_type_id, r.price, r.availability,
       h.hotel_name, rt.room_type
FROM rooms r
JOIN hotels h ON h.hotel_id = r.hotel_id
JOIN room_types rt ON rt.room_type_id = r.room_type_id`

func scanRooms(rows *sql.Rows) ([]model.Room, error) {
	defer rows.Close()
	rooms := []model.Room{}
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.Number, &rm.HotelID, &rm.RoomTypeID, &rm.Price,
			&rm.Availability, &rm.HotelName, &rm.RoomType); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

// List returns all rooms with their hotel name and room type.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, roomSelect+" ORDER BY r.room_id")
	if err != nil {
		return nil, err
	}
	return scanRooms(rows)
}

// ListByHotel returns the rooms of one hotel.  An unknown hotel yields an
// empty list.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, roomSelect+" WHERE r.hotel_id = ? ORDER BY r.room_number", hotelID)
	if err != nil {
		return nil, err
	}
	return scanRooms(rows)
}

// GetByID fetches a room by id or returns ErrNotFound.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	var rm model.Room
	err := r.db.QueryRowContext(ctx, roomSelect+" WHERE r.room_id = ?", id).Scan(
		&rm.ID, &rm.Number, &rm.HotelID, &rm.RoomTypeID, &rm.Price,
		&rm.Availability, &rm.HotelName, &rm.RoomType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// MarkBookedTx flips a room from available to booked inside tx.  The
// conditional update serialises concurrent bookings of one room: the
// database row lock lets exactly one transaction observe 'available'.
// When no row changes, the room is looked up to tell ErrNotFound apart
// from ErrRoomUnavailable.
func (r *RoomRepo) MarkBookedTx(ctx context.Context, tx *sql.Tx, roomID uint64) error {
	const q = `UPDATE rooms SET availability = ? WHERE room_id = ? AND availability = ?`
	res, err := tx.ExecContext(ctx, q, model.RoomBooked, roomID, model.RoomAvailable)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	var availability string
	err = tx.QueryRowContext(ctx, `SELECT availability FROM rooms WHERE room_id = ?`, roomID).Scan(&availability)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrRoomUnavailable
}

// MarkAvailableTx sets a room back to available inside tx.
func (r *RoomRepo) MarkAvailableTx(ctx context.Context, tx *sql.Tx, roomID uint64) error {
	_, err := tx.ExecContext(ctx, `UPDATE rooms SET availability = ? WHERE room_id = ?`, model.RoomAvailable, roomID)
	return err
}
