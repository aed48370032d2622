package model

// Payment status values stored on bookings.
const (
	PaymentPaid   = "paid"
	PaymentUnpaid = "unpaid"
)

// Booking records a user's stay in a room.  A booking is created unpaid and
// is hard-deleted on cancellation together with its payments.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – user who made the booking.
//  RoomID        – room being booked.
//  CheckIn       – first night of the stay.
//  CheckOut      – departure day.
//  PaymentStatus – paid or unpaid, derived from the booking's payments.
type Booking struct {
	ID            uint64 `json:"booking_id"`     // booking.booking_id
	UserID        uint64 `json:"user_id"`        // booking.user_id
	RoomID        uint64 `json:"room_id"`        // booking.room_id
	CheckIn       Date   `json:"check_in_date"`  // booking.check_in_date
	CheckOut      Date   `json:"check_out_date"` // booking.check_out_date
	PaymentStatus string `json:"payment_status"` // booking.payment_status
}

// Nights is the number of billable nights.  A same-day stay bills one night.
func (b Booking) Nights() int {
	n := b.CheckIn.DaysUntil(b.CheckOut)
	if n < 1 {
		return 1
	}
	return n
}

// BookingSummary is a booking joined with its room, hotel and guest name.
type BookingSummary struct {
	Booking
	RoomNumber int    `json:"room_number"`
	HotelName  string `json:"hotel_name"`
	UserName   string `json:"user_name"`
}

// UserBooking is the shape returned when a user lists their own bookings.
type UserBooking struct {
	ID            uint64 `json:"booking_id"`
	RoomID        uint64 `json:"room_id"`
	CheckIn       Date   `json:"check_in_date"`
	CheckOut      Date   `json:"check_out_date"`
	PaymentStatus string `json:"payment_status"`
	RoomNumber    int    `json:"room_number"`
	HotelName     string `json:"hotel_name"`
	RoomType      string `json:"room_type"`
}

// AdminBooking is the detailed booking view for the admin dashboard.
type AdminBooking struct {
	Booking
	RoomNumber   int     `json:"room_number"`
	Price        float64 `json:"price"`
	HotelName    string  `json:"hotel_name"`
	RoomType     string  `json:"room_type"`
	UserName     string  `json:"user_name"`
	UserEmail    string  `json:"user_email"`
	AmountPaid   float64 `json:"amount_paid"`
	DurationDays int     `json:"duration_days"`
}

// DashboardStats aggregates headline numbers for the admin dashboard.
type DashboardStats struct {
	TotalBookings int     `json:"total_bookings"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalUsers    int     `json:"total_users"`
	OccupancyRate int     `json:"occupancy_rate"`
}
