package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/service"
)

// PaymentHandler exposes payment recording and status lookup.
type PaymentHandler struct {
	Payments *service.PaymentService
}

func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	if payments == nil {
		panic("nil service passed to NewPaymentHandler")
	}
	return &PaymentHandler{Payments: payments}
}

type paymentReq struct {
	BookingID   uint64  `json:"booking_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,min=0.01,max=99999999.99"`
	PaymentDate string  `json:"payment_date" validate:"required,ymd"`
}

// Process handles POST /api/payments.  Guests pay for their own bookings;
// admins may record a payment against any booking.
func (h *PaymentHandler) Process(c echo.Context) error {
	var req paymentReq
	if msg, ok := bindValid(c, &req); !ok {
		return badRequest(c, msg)
	}
	ctx := c.Request().Context()
	owner, err := h.Payments.BookingOwner(ctx, req.BookingID)
	if err != nil {
		return writeError(c, err)
	}
	if !mayActFor(c, owner) {
		return forbidden(c)
	}
	status, err := h.Payments.ProcessPayment(ctx, service.PaymentInput{
		BookingID:   req.BookingID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "Payment processed successfully",
		"payment_status": status,
	})
}

// Status handles GET /api/payments/booking/:id for the booking's guest or
// an admin.
func (h *PaymentHandler) Status(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid booking id")
	}
	ctx := c.Request().Context()
	owner, err := h.Payments.BookingOwner(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if !mayActFor(c, owner) {
		return forbidden(c)
	}
	status, err := h.Payments.GetPaymentStatus(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"payment_status": status})
}
