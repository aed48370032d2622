// Package queue defines message payloads exchanged over the message broker
// together with the publisher and the audit-log consumer.
package queue

import "time"

// QueueName is the durable queue carrying booking lifecycle events.
const QueueName = "hotel.bookings"

// Event types.
const (
	BookingCreated   = "booking.created"
	BookingCancelled = "booking.cancelled"
	PaymentRecorded  = "payment.recorded"
)

// Event is published after a booking or payment transaction commits.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.  Amount is only set for
// payment.recorded.
type Event struct {
	Type          string    `json:"type"`
	BookingID     uint64    `json:"booking_id"`
	UserID        uint64    `json:"user_id,omitempty"`
	RoomID        uint64    `json:"room_id,omitempty"`
	Amount        float64   `json:"amount,omitempty"`
	PaymentStatus string    `json:"payment_status,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
