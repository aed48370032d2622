package model

// Room availability values.  A room is booked exactly when a booking row
// references it.
const (
	RoomAvailable = "available"
	RoomBooked    = "booked"
)

// Room is a bookable unit inside a hotel.  HotelName and RoomType are
// filled by listing queries that join hotels and room_types; they are
// omitted from JSON when the query did not load them.
type Room struct {
	ID           uint64  `json:"room_id"`                // rooms.room_id
	Number       int     `json:"room_number"`            // rooms.room_number
	HotelID      uint64  `json:"hotel_id"`               // rooms.hotel_id
	RoomTypeID   uint64  `json:"room_type_id"`           // rooms.room_type_id
	Price        float64 `json:"price"`                  // rooms.price (per night)
	Availability string  `json:"availability"`           // rooms.availability
	HotelName    string  `json:"hotel_name,omitempty"`   // hotels.hotel_name (joined)
	RoomType     string  `json:"room_type,omitempty"`    // room_types.room_type (joined)
}
