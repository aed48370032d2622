// Package repository contains data access logic separated from HTTP handlers.
// This file defines the hotel repository. Hotels are read-only for the
// service: rows are seeded by operators and only listed or fetched here.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// HotelRepo encapsulates all database queries related to hotels.  It
// depends on a sql.DB connection which should be configured elsewhere.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the provided DB handle.
func NewHotelRepo(db *sql.DB) *HotelRepo {
	return &HotelRepo{db: db}
}

// List returns every hotel ordered by id.  An empty table yields an empty,
// non-nil slice so that handlers render [] rather than null.
func (r *HotelRepo) List(ctx context.Context) ([]model.Hotel, error) {
	const q = "SELECT hotel_id, hotel_name, location, rating FROM hotels ORDER BY hotel_id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	hotels := []model.Hotel{}
	for rows.Next() {
		var h model.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Location, &h.Rating); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

// GetByID fetches a hotel by its ID.  It returns ErrNotFound if no row is
// found.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	const q = "SELECT hotel_id, hotel_name, location, rating FROM hotels WHERE hotel_id = ?"
	var h model.Hotel
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.Name, &h.Location, &h.Rating); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}
