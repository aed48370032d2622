package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// RoomTypeRepo reads room types together with their amenities.  Amenities
// are stored in a bridge table and grouped per room type here so callers
// never see the flattened join rows.
type RoomTypeRepo struct {
	db *sql.DB
}

// NewRoomTypeRepo returns a new RoomTypeRepo bound to the given database.
func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo { return &RoomTypeRepo{db: db} }

const roomTypeSelect = `SELECT rt.room_type_id, rt.room_type, a.amenity_id, a.amenity_name
FROM room_types rt
LEFT JOIN room_type_amenities rta ON rta.room_type_id = rt.room_type_id
LEFT JOIN amenities a ON a.amenity_id = rta.amenity_id`

// List returns every room type with its amenities.
func (r *RoomTypeRepo) List(ctx context.Context) ([]model.RoomType, error) {
	rows, err := r.db.QueryContext(ctx, roomTypeSelect+" ORDER BY rt.room_type_id, a.amenity_id")
	if err != nil {
		return nil, err
	}
	return groupRoomTypes(rows)
}

// GetByID returns one room type with its amenities or ErrNotFound.
func (r *RoomTypeRepo) GetByID(ctx context.Context, id uint64) (*model.RoomType, error) {
	rows, err := r.db.QueryContext(ctx, roomTypeSelect+" WHERE rt.room_type_id = ? ORDER BY a.amenity_id", id)
	if err != nil {
		return nil, err
	}
	types, err := groupRoomTypes(rows)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, ErrNotFound
	}
	return &types[0], nil
}

// groupRoomTypes folds join rows (one per amenity, or one with NULL
// amenity columns) into room types.  Rows must be ordered by room type.
func groupRoomTypes(rows *sql.Rows) ([]model.RoomType, error) {
	defer rows.Close()
	types := []model.RoomType{}
	for rows.Next() {
		var (
			id          uint64
			name        string
			amenityID   sql.NullInt64
			amenityName sql.NullString
		)
		if err := rows.Scan(&id, &name, &amenityID, &amenityName); err != nil {
			return nil, err
		}
		if n := len(types); n == 0 || types[n-1].ID != id {
			types = append(types, model.RoomType{ID: id, Name: name, Amenities: []model.Amenity{}})
		}
		if amenityID.Valid {
			cur := &types[len(types)-1]
			cur.Amenities = append(cur.Amenities, model.Amenity{ID: uint64(amenityID.Int64), Name: amenityName.String})
		}
	}
	return types, rows.Err()
}
