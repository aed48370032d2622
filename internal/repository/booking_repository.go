package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// BookingRepo provides CRUD operations for bookings.  Mutations take an
// explicit transaction so the service can pair them with room and payment
// updates; the caller must commit or rollback.  Dates are stored as DATE
// columns and travel as model.Date.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// CreateTx inserts a new booking within the scope of an existing
// transaction and populates the generated ID on b.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO booking (user_id, room_id, check_in_date, check_out_date, payment_status) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.UserID, b.RoomID, b.CheckIn, b.CheckOut, b.PaymentStatus)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// RoomIDTx returns the room held by a booking, or ErrNotFound.
func (r *BookingRepo) RoomIDTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (uint64, error) {
	var roomID uint64
	err := tx.QueryRowContext(ctx, `SELECT room_id FROM booking WHERE booking_id = ?`, bookingID).Scan(&roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return roomID, err
}

// OwnerOf returns the user_id of a booking, or ErrNotFound.
func (r *BookingRepo) OwnerOf(ctx context.Context, bookingID uint64) (uint64, error) {
	var userID uint64
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM booking WHERE booking_id = ?`, bookingID).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return userID, err
}

// DeleteTx hard-deletes a booking.  Payments must be removed first.
func (r *BookingRepo) DeleteTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM booking WHERE booking_id = ?`, bookingID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetWithPriceTx loads a booking together with the nightly price of its
// room.  It is the input of payment status synchronisation.
func (r *BookingRepo) GetWithPriceTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (model.Booking, float64, error) {
	const q = `SELECT b.booking_id, b.user_id, b.room_id, b.check_in_date, b.check_out_date, b.payment_status, r.price
               FROM booking b
               JOIN rooms r ON r.room_id = b.room_id
               WHERE b.booking_id = ?`
	var (
		b     model.Booking
		price float64
	)
	err := tx.QueryRowContext(ctx, q, bookingID).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.CheckIn, &b.CheckOut, &b.PaymentStatus, &price)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, 0, ErrNotFound
	}
	return b, price, err
}

// LockTx takes the write lock on a booking row so payments against it
// apply one at a time.  It must be the first statement of tx: under
// REPEATABLE READ a later read then sees every payment committed before the
// lock was granted.  A missing booking is not reported here.
func (r *BookingRepo) LockTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error {
	_, err := tx.ExecContext(ctx, `UPDATE booking SET payment_status = payment_status WHERE booking_id = ?`, bookingID)
	return err
}

// SetPaymentStatusTx writes the payment status column of a booking.
func (r *BookingRepo) SetPaymentStatusTx(ctx context.Context, tx *sql.Tx, bookingID uint64, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE booking SET payment_status = ? WHERE booking_id = ?`, status, bookingID)
	return err
}

// List returns every booking joined with its room number, hotel name and
// the name of the guest.
func (r *BookingRepo) List(ctx context.Context) ([]model.BookingSummary, error) {
	const q = `SELECT b.booking_id, b.user_id, b.room_id, b.check_in_date, b.check_out_date, b.payment_status,
                      r.room_number, h.hotel_name, u.name
               FROM booking b
               JOIN rooms r ON r.room_id = b.room_id
               JOIN hotels h ON h.hotel_id = r.hotel_id
               JOIN users u ON u.user_id = b.user_id
               ORDER BY b.booking_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.BookingSummary{}
	for rows.Next() {
		var s model.BookingSummary
		if err := rows.Scan(&s.ID, &s.UserID, &s.RoomID, &s.CheckIn, &s.CheckOut, &s.PaymentStatus,
			&s.RoomNumber, &s.HotelName, &s.UserName); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListByUser returns the bookings made by one user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.UserBooking, error) {
	const q = `SELECT b.booking_id, b.room_id, b.check_in_date, b.check_out_date, b.payment_status,
                      r.room_number, h.hotel_name, rt.room_type
               FROM booking b
               JOIN rooms r ON r.room_id = b.room_id
               JOIN hotels h ON h.hotel_id = r.hotel_id
               JOIN room_types rt ON rt.room_type_id = r.room_type_id
               WHERE b.user_id = ?
               ORDER BY b.booking_id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.UserBooking{}
	for rows.Next() {
		var ub model.UserBooking
		if err := rows.Scan(&ub.ID, &ub.RoomID, &ub.CheckIn, &ub.CheckOut, &ub.PaymentStatus,
			&ub.RoomNumber, &ub.HotelName, &ub.RoomType); err != nil {
			return nil, err
		}
		out = append(out, ub)
	}
	return out, rows.Err()
}

// ListAdmin returns the detailed booking view used by the admin
// dashboard: guest email, room price and type, the amount paid so far and
// the stay length in days.
func (r *BookingRepo) ListAdmin(ctx context.Context) ([]model.AdminBooking, error) {
	const q = `SELECT b.booking_id, b.user_id, b.room_id, b.check_in_date, b.check_out_date, b.payment_status,
                      r.room_number, r.price, h.hotel_name, rt.room_type, u.name, u.email,
                      COALESCE(p.total, 0)
               FROM booking b
               JOIN rooms r ON r.room_id = b.room_id
               JOIN hotels h ON h.hotel_id = r.hotel_id
               JOIN room_types rt ON rt.room_type_id = r.room_type_id
               JOIN users u ON u.user_id = b.user_id
               LEFT JOIN (SELECT booking_id, SUM(amount) AS total FROM payment GROUP BY booking_id) p
                      ON p.booking_id = b.booking_id
               ORDER BY b.booking_id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.AdminBooking{}
	for rows.Next() {
		var ab model.AdminBooking
		if err := rows.Scan(&ab.ID, &ab.UserID, &ab.RoomID, &ab.CheckIn, &ab.CheckOut, &ab.PaymentStatus,
			&ab.RoomNumber, &ab.Price, &ab.HotelName, &ab.RoomType, &ab.UserName, &ab.UserEmail,
			&ab.AmountPaid); err != nil {
			return nil, err
		}
		ab.DurationDays = ab.CheckIn.DaysUntil(ab.CheckOut)
		out = append(out, ab)
	}
	return out, rows.Err()
}
