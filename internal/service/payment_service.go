package service

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// PaymentService records payments and keeps each booking's payment_status
// in line with what has been paid.
type PaymentService struct {
	db       *sql.DB
	bookings *repository.BookingRepo
	payments *repository.PaymentRepo
	events   EventPublisher
	log      *zap.Logger
}

// NewPaymentService wires a PaymentService.  events may be nil.
func NewPaymentService(db *sql.DB, events EventPublisher, log *zap.Logger) *PaymentService {
	if db == nil || log == nil {
		panic("nil dependency passed to NewPaymentService")
	}
	return &PaymentService{
		db:       db,
		bookings: repository.NewBookingRepo(db),
		payments: repository.NewPaymentRepo(db),
		events:   events,
		log:      log,
	}
}

// PaymentInput is a payment against a booking.
type PaymentInput struct {
	BookingID   uint64
	Amount      float64
	PaymentDate string
}

// ProcessPayment stores a payment and re-derives the booking's payment
// status in the same transaction.  It returns the resulting status.
func (s *PaymentService) ProcessPayment(ctx context.Context, in PaymentInput) (string, error) {
	if in.BookingID == 0 || in.PaymentDate == "" || in.Amount == 0 {
		return "", validationError("Missing required fields")
	}
	if in.Amount < 0 {
		return "", validationError("amount must be greater than zero")
	}
	if c := in.Amount * 100; math.Abs(c-math.Round(c)) > 1e-6 {
		return "", validationError("amount must be in whole cents")
	}
	if model.ToCents(in.Amount) > model.MaxPaymentCents {
		return "", validationError("amount exceeds the largest storable payment")
	}
	date, err := model.ParseDate(in.PaymentDate)
	if err != nil {
		return "", validationError("payment_date must be a date in YYYY-MM-DD format")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", persistence("could not start transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.bookings.LockTx(ctx, tx, in.BookingID); err != nil {
		return "", persistence("could not lock booking", err)
	}
	// existence check before the insert so a missing booking is a 404
	// rather than a foreign key failure
	if _, _, err := s.bookings.GetWithPriceTx(ctx, tx, in.BookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", notFound("Booking not found")
		}
		return "", persistence("could not load booking", err)
	}
	p := &model.Payment{BookingID: in.BookingID, Amount: in.Amount, Date: date}
	if err := s.payments.CreateTx(ctx, tx, p); err != nil {
		return "", persistence("could not record payment", err)
	}
	b, status, err := s.syncTx(ctx, tx, in.BookingID)
	if err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", persistence("could not commit payment", err)
	}
	committed = true

	s.log.Info("payment recorded",
		zap.Uint64("booking_id", in.BookingID),
		zap.Float64("amount", in.Amount),
		zap.String("payment_status", status))
	publishEvent(ctx, s.events, s.log, queue.Event{
		Type:          queue.PaymentRecorded,
		BookingID:     in.BookingID,
		UserID:        b.UserID,
		RoomID:        b.RoomID,
		Amount:        in.Amount,
		PaymentStatus: status,
	})
	return status, nil
}

// SyncPaymentStatus recomputes and stores the payment status of a booking
// and returns it.  Calling it repeatedly without new payments yields the
// same status and no further writes.
func (s *PaymentService) SyncPaymentStatus(ctx context.Context, bookingID uint64) (string, error) {
	if bookingID == 0 {
		return "", validationError("invalid booking id")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", persistence("could not start transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := s.bookings.LockTx(ctx, tx, bookingID); err != nil {
		return "", persistence("could not lock booking", err)
	}
	_, status, err := s.syncTx(ctx, tx, bookingID)
	if err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", persistence("could not commit payment status", err)
	}
	committed = true
	return status, nil
}

// GetPaymentStatus reports the payment status of a booking.  The stored
// column is never trusted; the status is re-derived first.
func (s *PaymentService) GetPaymentStatus(ctx context.Context, bookingID uint64) (string, error) {
	return s.SyncPaymentStatus(ctx, bookingID)
}

// syncTx expects the booking row to be locked already by LockTx.
func (s *PaymentService) syncTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (model.Booking, string, error) {
	b, price, err := s.bookings.GetWithPriceTx(ctx, tx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return b, "", notFound("Booking not found")
	}
	if err != nil {
		return b, "", persistence("could not load booking", err)
	}
	paid, err := s.payments.SumByBookingTx(ctx, tx, bookingID)
	if err != nil {
		return b, "", persistence("could not sum payments", err)
	}
	status := PaymentStatusFor(price, b.Nights(), paid)
	if status != b.PaymentStatus {
		if err := s.bookings.SetPaymentStatusTx(ctx, tx, bookingID, status); err != nil {
			return b, "", persistence("could not update payment status", err)
		}
		b.PaymentStatus = status
	}
	return b, status, nil
}

// BookingOwner returns the user a booking belongs to.
func (s *PaymentService) BookingOwner(ctx context.Context, bookingID uint64) (uint64, error) {
	return bookingOwner(ctx, s.bookings, bookingID)
}

func bookingOwner(ctx context.Context, bookings *repository.BookingRepo, bookingID uint64) (uint64, error) {
	owner, err := bookings.OwnerOf(ctx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, notFound("Booking not found")
	}
	if err != nil {
		return 0, persistence("could not load booking", err)
	}
	return owner, nil
}

// PaymentStatusFor is paid when the payments cover the nightly price times
// the number of nights.  Amounts are compared in cents.
func PaymentStatusFor(price float64, nights int, paid float64) string {
	if nights < 1 {
		nights = 1
	}
	due := model.ToCents(price) * int64(nights)
	if model.ToCents(paid) >= due {
		return model.PaymentPaid
	}
	return model.PaymentUnpaid
}
