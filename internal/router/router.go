package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/middleware"
)

// Session carries what the protected groups need to authenticate requests.
// Roles, when set, is consulted on admin routes instead of the token role.
type Session struct {
	Secret     string
	CookieName string
	Roles      middleware.RoleLookup
}

func (s Session) middleware() echo.MiddlewareFunc {
	return middleware.SessionAuth(s.Secret, s.CookieName)
}

func (s Session) admin() echo.MiddlewareFunc {
	if s.Roles == nil {
		return middleware.RequireAdmin()
	}
	return middleware.RequireCurrentAdmin(s.Roles)
}

// RegisterRoutes registers routes outside /api.  Currently it exposes only
// a health check.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers authentication and user management routes.
// Register, login and logout need no session; /me needs one and the
// admin user CRUD additionally needs role admin.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, s Session) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/admin/login", a.AdminLogin)
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, s.middleware())

	admin := g.Group("/admin/users", s.middleware(), s.admin())
	admin.GET("", a.ListUsers)
	admin.POST("", a.CreateUser)
	admin.PUT("/:id", a.UpdateUser)
	admin.DELETE("/:id", a.DeleteUser)
}

// RegisterCatalog registers the public hotel, room and room type routes.
// cache wraps hotel and room type reads only; room listings carry the
// availability flag and are always served fresh.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/api")
	g.GET("/hotels", h.ListHotels, cache)
	g.GET("/hotels/:id", h.GetHotel, cache)
	g.GET("/hotels/:id/rooms", h.ListHotelRooms)

	g.GET("/rooms", h.ListRooms)
	g.GET("/rooms/hotel/:id", h.ListHotelRooms)
	g.GET("/rooms/:id", h.GetRoom)

	g.GET("/room-types", h.ListRoomTypes, cache)
	g.GET("/room-types/:id", h.GetRoomType, cache)
}
