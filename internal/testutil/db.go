// Package testutil provides a throwaway SQLite database with the booking
// schema and seed helpers for package tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/iliyamo/hotel-booking/internal/utils"
)

// schema mirrors database/schema.sql in SQLite syntax.
const schema = `
CREATE TABLE users (
    user_id  INTEGER PRIMARY KEY AUTOINCREMENT,
    name     TEXT NOT NULL,
    email    TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    role     TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin','user'))
);
CREATE TABLE hotels (
    hotel_id   INTEGER PRIMARY KEY AUTOINCREMENT,
    hotel_name TEXT NOT NULL,
    location   TEXT NOT NULL,
    rating     REAL NOT NULL DEFAULT 0
);
CREATE TABLE room_types (
    room_type_id INTEGER PRIMARY KEY AUTOINCREMENT,
    room_type    TEXT NOT NULL
);
CREATE TABLE amenities (
    amenity_id   INTEGER PRIMARY KEY AUTOINCREMENT,
    amenity_name TEXT NOT NULL
);
CREATE TABLE room_type_amenities (
    room_type_id INTEGER NOT NULL REFERENCES room_types(room_type_id) ON DELETE CASCADE,
    amenity_id   INTEGER NOT NULL REFERENCES amenities(amenity_id) ON DELETE CASCADE,
    PRIMARY KEY (room_type_id, amenity_id)
);
CREATE TABLE rooms (
    room_id      INTEGER PRIMARY KEY AUTOINCREMENT,
    room_number  INTEGER NOT NULL,
    hotel_id     INTEGER NOT NULL REFERENCES hotels(hotel_id),
    room_type_id INTEGER NOT NULL REFERENCES room_types(room_type_id),
    price        REAL NOT NULL,
    availability TEXT NOT NULL DEFAULT 'available' CHECK (availability IN ('available','booked'))
);
CREATE TABLE booking (
    booking_id     INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id        INTEGER NOT NULL REFERENCES users(user_id),
    room_id        INTEGER NOT NULL REFERENCES rooms(room_id),
    check_in_date  DATE NOT NULL,
    check_out_date DATE NOT NULL,
    payment_status TEXT NOT NULL DEFAULT 'unpaid' CHECK (payment_status IN ('paid','unpaid'))
);
CREATE TABLE payment (
    payment_id   INTEGER PRIMARY KEY AUTOINCREMENT,
    booking_id   INTEGER NOT NULL REFERENCES booking(booking_id),
    amount       REAL NOT NULL,
    payment_date DATE NOT NULL
);`

// NewDB opens a SQLite database in a temp directory with the schema
// applied.  The pool is limited to one connection so concurrent callers
// queue on it the way they would on a row lock.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hotel.db")
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

func insert(t *testing.T, db *sql.DB, query string, args ...any) uint64 {
	t.Helper()
	res, err := db.Exec(query, args...)
	if err != nil {
		t.Fatalf("seed %q: %v", query, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("seed last insert id: %v", err)
	}
	return uint64(id)
}

// SeedUser inserts a user whose password is hashed with the minimum
// bcrypt cost.
func SeedUser(t *testing.T, db *sql.DB, name, email, password, role string) uint64 {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return insert(t, db, `INSERT INTO users (name, email, password, role) VALUES (?, ?, ?, ?)`, name, email, hash, role)
}

func SeedHotel(t *testing.T, db *sql.DB, name, location string, rating float64) uint64 {
	t.Helper()
	return insert(t, db, `INSERT INTO hotels (hotel_name, location, rating) VALUES (?, ?, ?)`, name, location, rating)
}

func SeedRoomType(t *testing.T, db *sql.DB, name string, amenities ...string) uint64 {
	t.Helper()
	id := insert(t, db, `INSERT INTO room_types (room_type) VALUES (?)`, name)
	for _, a := range amenities {
		aid := insert(t, db, `INSERT INTO amenities (amenity_name) VALUES (?)`, a)
		insert(t, db, `INSERT INTO room_type_amenities (room_type_id, amenity_id) VALUES (?, ?)`, id, aid)
	}
	return id
}

func SeedRoom(t *testing.T, db *sql.DB, hotelID, roomTypeID uint64, number int, price float64) uint64 {
	t.Helper()
	return insert(t, db, `INSERT INTO rooms (room_number, hotel_id, room_type_id, price) VALUES (?, ?, ?, ?)`,
		number, hotelID, roomTypeID, price)
}

// SeedBooking inserts a booking row directly, without touching the room
// flag.  Use it to build inconsistent states.
func SeedBooking(t *testing.T, db *sql.DB, userID, roomID uint64, checkIn, checkOut string) uint64 {
	t.Helper()
	return insert(t, db, `INSERT INTO booking (user_id, room_id, check_in_date, check_out_date, payment_status) VALUES (?, ?, ?, ?, 'unpaid')`,
		userID, roomID, checkIn, checkOut)
}

// Fixture is a small catalog: one hotel, one room type, two rooms and a
// regular user plus an admin.
type Fixture struct {
	HotelID    uint64
	RoomTypeID uint64
	RoomID     uint64
	Room2ID    uint64
	UserID     uint64
	AdminID    uint64
}

// Seed builds the default Fixture.  Passwords are "secret123".
func Seed(t *testing.T, db *sql.DB) Fixture {
	t.Helper()
	var f Fixture
	f.HotelID = SeedHotel(t, db, "Grand Plaza", "Lisbon", 4.5)
	f.RoomTypeID = SeedRoomType(t, db, "Deluxe", "Wi-Fi", "Minibar")
	f.RoomID = SeedRoom(t, db, f.HotelID, f.RoomTypeID, 101, 100)
	f.Room2ID = SeedRoom(t, db, f.HotelID, f.RoomTypeID, 102, 80)
	f.UserID = SeedUser(t, db, "Alice", "alice@example.com", "secret123", "user")
	f.AdminID = SeedUser(t, db, "Root", "admin@example.com", "secret123", "admin")
	return f
}

// Availability returns the availability flag of a room.
func Availability(t *testing.T, db *sql.DB, roomID uint64) string {
	t.Helper()
	var s string
	if err := db.QueryRow(`SELECT availability FROM rooms WHERE room_id = ?`, roomID).Scan(&s); err != nil {
		t.Fatalf("read availability: %v", err)
	}
	return s
}

// Count returns SELECT COUNT(*) for a table with an optional where clause.
func Count(t *testing.T, db *sql.DB, table, where string, args ...any) int {
	t.Helper()
	q := "SELECT COUNT(*) FROM " + table
	if where != "" {
		q += " WHERE " + where
	}
	var n int
	if err := db.QueryRow(q, args...).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
