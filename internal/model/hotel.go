package model

// Hotel represents a property that contains rooms.  This struct
// corresponds to a row in the `hotels` table and is read-only for the
// booking service.
//
// Fields:
//  ID       – primary key identifier.
//  Name     – display name of the hotel.
//  Location – free-form address or city.
//  Rating   – star rating (0–5, one decimal).
type Hotel struct {
	ID       uint64  `json:"hotel_id"`   // hotels.hotel_id
	Name     string  `json:"hotel_name"` // hotels.hotel_name
	Location string  `json:"location"`   // hotels.location
	Rating   float64 `json:"rating"`     // hotels.rating
}

// Amenity is a feature offered by a room type (Wi-Fi, minibar, ...).
type Amenity struct {
	ID   uint64 `json:"amenity_id"`   // amenities.amenity_id
	Name string `json:"amenity_name"` // amenities.amenity_name
}

// RoomType groups rooms that share a category and a set of amenities.
// Amenities are joined through the room_type_amenities bridge table and
// are never nil so that clients always receive an array.
type RoomType struct {
	ID        uint64    `json:"room_type_id"` // room_types.room_type_id
	Name      string    `json:"room_type"`    // room_types.room_type
	Amenities []Amenity `json:"amenities"`
}
