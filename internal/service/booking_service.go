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

// BookingService owns the booking lifecycle.  Creating a booking flips its
// room to booked and cancelling it flips the room back; both happen in the
// same transaction as the booking row so the room flag always matches the
// booking table.
type BookingService struct {
	db       *sql.DB
	rooms    *repository.RoomRepo
	bookings *repository.BookingRepo
	payments *repository.PaymentRepo
	users    *repository.UserRepo
	stats    *repository.StatsRepo
	events   EventPublisher
	log      *zap.Logger
}

// NewBookingService wires a BookingService.  events may be nil.
func NewBookingService(db *sql.DB, events EventPublisher, log *zap.Logger) *BookingService {
	if db == nil || log == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{
		db:       db,
		rooms:    repository.NewRoomRepo(db),
		bookings: repository.NewBookingRepo(db),
		payments: repository.NewPaymentRepo(db),
		users:    repository.NewUserRepo(db),
		stats:    repository.NewStatsRepo(db),
		events:   events,
		log:      log,
	}
}

// CreateBookingInput is the request to book a room.  Dates are
// "YYYY-MM-DD" strings.
type CreateBookingInput struct {
	UserID       uint64
	RoomID       uint64
	CheckInDate  string
	CheckOutDate string
}

// CreateBooking reserves a room for a user.  The room must exist and be
// available; of several concurrent requests for one room exactly one
// succeeds and the rest get a conflict.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	if in.UserID == 0 || in.RoomID == 0 || in.CheckInDate == "" || in.CheckOutDate == "" {
		return nil, validationError("Missing required fields")
	}
	checkIn, err := model.ParseDate(in.CheckInDate)
	if err != nil {
		return nil, validationError("check_in_date must be a date in YYYY-MM-DD format")
	}
	checkOut, err := model.ParseDate(in.CheckOutDate)
	if err != nil {
		return nil, validationError("check_out_date must be a date in YYYY-MM-DD format")
	}
	if checkOut.Before(checkIn.Time) {
		return nil, validationError("check_out_date must not be before check_in_date")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, persistence("could not start transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	exists, err := s.users.ExistsTx(ctx, tx, in.UserID)
	if err != nil {
		return nil, persistence("could not load user", err)
	}
	if !exists {
		return nil, notFound("User not found")
	}

	if err := s.rooms.MarkBookedTx(ctx, tx, in.RoomID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("Room not found")
		case errors.Is(err, repository.ErrRoomUnavailable):
			return nil, conflict("Room is already booked")
		}
		return nil, persistence("could not reserve room", err)
	}

	b := &model.Booking{
		UserID:        in.UserID,
		RoomID:        in.RoomID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		PaymentStatus: model.PaymentUnpaid,
	}
	if err := s.bookings.CreateTx(ctx, tx, b); err != nil {
		return nil, persistence("could not create booking", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, persistence("could not commit booking", err)
	}
	committed = true

	s.log.Info("booking created",
		zap.Uint64("booking_id", b.ID),
		zap.Uint64("user_id", b.UserID),
		zap.Uint64("room_id", b.RoomID))
	publishEvent(ctx, s.events, s.log, queue.Event{
		Type:          queue.BookingCreated,
		BookingID:     b.ID,
		UserID:        b.UserID,
		RoomID:        b.RoomID,
		PaymentStatus: b.PaymentStatus,
	})
	return b, nil
}

// BookingOwner returns the user a booking belongs to.
func (s *BookingService) BookingOwner(ctx context.Context, bookingID uint64) (uint64, error) {
	return bookingOwner(ctx, s.bookings, bookingID)
}

// CancelBooking deletes a booking together with its payments and releases
// its room.  A missing booking leaves every table untouched.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uint64) error {
	if bookingID == 0 {
		return validationError("invalid booking id")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistence("could not start transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	roomID, err := s.bookings.RoomIDTx(ctx, tx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("Booking not found")
	}
	if err != nil {
		return persistence("could not load booking", err)
	}
	if err := s.payments.DeleteByBookingTx(ctx, tx, bookingID); err != nil {
		return persistence("could not delete payments", err)
	}
	if err := s.bookings.DeleteTx(ctx, tx, bookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("Booking not found")
		}
		return persistence("could not delete booking", err)
	}
	if err := s.rooms.MarkAvailableTx(ctx, tx, roomID); err != nil {
		return persistence("could not release room", err)
	}
	if err := tx.Commit(); err != nil {
		return persistence("could not commit cancellation", err)
	}
	committed = true

	s.log.Info("booking cancelled", zap.Uint64("booking_id", bookingID), zap.Uint64("room_id", roomID))
	publishEvent(ctx, s.events, s.log, queue.Event{
		Type:      queue.BookingCancelled,
		BookingID: bookingID,
		RoomID:    roomID,
	})
	return nil
}

// ListBookings returns every booking with room, hotel and guest names.
func (s *BookingService) ListBookings(ctx context.Context) ([]model.BookingSummary, error) {
	out, err := s.bookings.List(ctx)
	if err != nil {
		return nil, persistence("could not list bookings", err)
	}
	return out, nil
}

// ListBookingsByUser returns the bookings of one user.
func (s *BookingService) ListBookingsByUser(ctx context.Context, userID uint64) ([]model.UserBooking, error) {
	out, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, persistence("could not list bookings", err)
	}
	return out, nil
}

// ListBookingsAdmin returns the detailed admin view of all bookings.
func (s *BookingService) ListBookingsAdmin(ctx context.Context) ([]model.AdminBooking, error) {
	out, err := s.bookings.ListAdmin(ctx)
	if err != nil {
		return nil, persistence("could not list bookings", err)
	}
	return out, nil
}

// DashboardStats aggregates bookings, revenue, users and occupancy.
func (s *BookingService) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	c, err := s.stats.Counts(ctx)
	if err != nil {
		return model.DashboardStats{}, persistence("could not load statistics", err)
	}
	return model.DashboardStats{
		TotalBookings: c.TotalBookings,
		TotalRevenue:  float64(model.ToCents(c.TotalRevenue)) / 100,
		TotalUsers:    c.TotalUsers,
		OccupancyRate: OccupancyRate(c.BookedRooms, c.TotalRooms),
	}, nil
}

// OccupancyRate is the rounded percentage of booked rooms, 0 when there
// are no rooms.
func OccupancyRate(booked, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(booked) / float64(total)))
}
