package service

import (
	"context"
	"errors"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// CatalogService serves the read-only hotel, room and room type queries.
type CatalogService struct {
	hotels    *repository.HotelRepo
	rooms     *repository.RoomRepo
	roomTypes *repository.RoomTypeRepo
}

func NewCatalogService(hotels *repository.HotelRepo, rooms *repository.RoomRepo, roomTypes *repository.RoomTypeRepo) *CatalogService {
	return &CatalogService{hotels: hotels, rooms: rooms, roomTypes: roomTypes}
}

func (s *CatalogService) ListHotels(ctx context.Context) ([]model.Hotel, error) {
	out, err := s.hotels.List(ctx)
	if err != nil {
		return nil, persistence("could not list hotels", err)
	}
	return out, nil
}

func (s *CatalogService) GetHotel(ctx context.Context, id uint64) (*model.Hotel, error) {
	h, err := s.hotels.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Hotel not found")
	}
	if err != nil {
		return nil, persistence("could not load hotel", err)
	}
	return h, nil
}

func (s *CatalogService) ListRooms(ctx context.Context) ([]model.Room, error) {
	out, err := s.rooms.List(ctx)
	if err != nil {
		return nil, persistence("could not list rooms", err)
	}
	return out, nil
}

// ListRoomsByHotel returns the rooms of a hotel; an unknown hotel has none.
func (s *CatalogService) ListRoomsByHotel(ctx context.Context, hotelID uint64) ([]model.Room, error) {
	out, err := s.rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, persistence("could not list rooms", err)
	}
	return out, nil
}

func (s *CatalogService) GetRoom(ctx context.Context, id uint64) (*model.Room, error) {
	r, err := s.rooms.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Room not found")
	}
	if err != nil {
		return nil, persistence("could not load room", err)
	}
	return r, nil
}

func (s *CatalogService) ListRoomTypes(ctx context.Context) ([]model.RoomType, error) {
	out, err := s.roomTypes.List(ctx)
	if err != nil {
		return nil, persistence("could not list room types", err)
	}
	return out, nil
}

func (s *CatalogService) GetRoomType(ctx context.Context, id uint64) (*model.RoomType, error) {
	rt, err := s.roomTypes.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Room type not found")
	}
	if err != nil {
		return nil, persistence("could not load room type", err)
	}
	return rt, nil
}
