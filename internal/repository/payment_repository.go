package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// PaymentRepo persists payments recorded against bookings.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// CreateTx inserts a payment and populates its ID.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO payment (booking_id, amount, payment_date) VALUES (?, ?, ?)`,
		p.BookingID, p.Amount, p.Date)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// SumByBookingTx returns the total paid against a booking, 0 when none.
func (r *PaymentRepo) SumByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (float64, error) {
	var total float64
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payment WHERE booking_id = ?`, bookingID).Scan(&total)
	return total, err
}

// DeleteByBookingTx removes every payment of a booking.
func (r *PaymentRepo) DeleteByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM payment WHERE booking_id = ?`, bookingID)
	return err
}
