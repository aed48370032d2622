// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines the public catalog: hotels, rooms and room types.
// None of these routes require a session.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/service"
)

// CatalogHandler serves read-only hotel, room and room type listings.
type CatalogHandler struct {
	Catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	if catalog == nil {
		panic("nil service passed to NewCatalogHandler")
	}
	return &CatalogHandler{Catalog: catalog}
}

// ListHotels handles GET /api/hotels.
func (h *CatalogHandler) ListHotels(c echo.Context) error {
	hotels, err := h.Catalog.ListHotels(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, hotels)
}

// GetHotel handles GET /api/hotels/:id.
func (h *CatalogHandler) GetHotel(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid hotel id")
	}
	hotel, err := h.Catalog.GetHotel(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, hotel)
}

// ListHotelRooms handles GET /api/hotels/:id/rooms and
// GET /api/rooms/hotel/:id.
func (h *CatalogHandler) ListHotelRooms(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid hotel id")
	}
	rooms, err := h.Catalog.ListRoomsByHotel(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// ListRooms handles GET /api/rooms.
func (h *CatalogHandler) ListRooms(c echo.Context) error {
	rooms, err := h.Catalog.ListRooms(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// GetRoom handles GET /api/rooms/:id.
func (h *CatalogHandler) GetRoom(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid room id")
	}
	room, err := h.Catalog.GetRoom(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// ListRoomTypes handles GET /api/room-types.
func (h *CatalogHandler) ListRoomTypes(c echo.Context) error {
	types, err := h.Catalog.ListRoomTypes(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, types)
}

// GetRoomType handles GET /api/room-types/:id.
func (h *CatalogHandler) GetRoomType(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid room type id")
	}
	rt, err := h.Catalog.GetRoomType(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rt)
}
