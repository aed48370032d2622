package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/service"
)

// BookingHandler exposes the booking workflow.  All methods assume the
// session middleware already ran; admin-only routes are additionally
// gated by RequireAdmin.
type BookingHandler struct {
	Bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	if bookings == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings}
}

type createBookingReq struct {
	UserID       uint64 `json:"user_id"`
	RoomID       uint64 `json:"room_id" validate:"required"`
	CheckInDate  string `json:"check_in_date" validate:"required,ymd"`
	CheckOutDate string `json:"check_out_date" validate:"required,ymd"`
}

// List handles GET /api/bookings.  Admins see every booking; other users
// see their own.
func (h *BookingHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if !isAdmin(c) {
		userID, err := getUserID(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
		}
		out, err := h.Bookings.ListBookingsByUser(ctx, userID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
	out, err := h.Bookings.ListBookings(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListByUser handles GET /api/bookings/user/:id.  Users may only list
// their own bookings.
func (h *BookingHandler) ListByUser(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	if self, _ := getUserID(c); !isAdmin(c) && self != id {
		return forbidden(c)
	}
	out, err := h.Bookings.ListBookingsByUser(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListAdmin handles GET /api/bookings/admin.
func (h *BookingHandler) ListAdmin(c echo.Context) error {
	out, err := h.Bookings.ListBookingsAdmin(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Stats handles GET /api/bookings/stats.
func (h *BookingHandler) Stats(c echo.Context) error {
	stats, err := h.Bookings.DashboardStats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Create handles POST /api/bookings.  user_id defaults to the session
// user; only admins may book on behalf of someone else.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if msg, ok := bindValid(c, &req); !ok {
		return badRequest(c, msg)
	}
	self, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	if req.UserID == 0 {
		req.UserID = self
	}
	if req.UserID != self && !isAdmin(c) {
		return forbidden(c)
	}
	b, err := h.Bookings.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		UserID:       req.UserID,
		RoomID:       req.RoomID,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// Cancel handles DELETE /api/bookings/:id.  Only the guest who holds the
// booking or an admin may cancel it.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid booking id")
	}
	ctx := c.Request().Context()
	owner, err := h.Bookings.BookingOwner(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if !mayActFor(c, owner) {
		return forbidden(c)
	}
	if err := h.Bookings.CancelBooking(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Booking cancelled successfully"})
}
