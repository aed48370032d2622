package model

import "math"

// Payment is an amount paid against a booking.
type Payment struct {
	ID        uint64  `json:"payment_id"`   // payment.payment_id
	BookingID uint64  `json:"booking_id"`   // payment.booking_id
	Amount    float64 `json:"amount"`       // payment.amount
	Date      Date    `json:"payment_date"` // payment.payment_date
}

// MaxPaymentCents is the largest amount payment.amount DECIMAL(10,2) holds.
const MaxPaymentCents int64 = 9_999_999_999

// ToCents converts a decimal currency amount to integer cents.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
