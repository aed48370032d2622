package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/handler"
)

// RegisterBookings registers booking and payment routes.  Every route
// requires a session; the admin listing and dashboard statistics also
// require role admin.  Static segments (admin, stats, user) are matched
// before the :id parameter by echo's router.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, p *handler.PaymentHandler, s Session) {
	g := e.Group("/api/bookings", s.middleware())
	g.GET("", b.List)
	g.GET("/user/:id", b.ListByUser)
	g.GET("/admin", b.ListAdmin, s.admin())
	g.GET("/stats", b.Stats, s.admin())
	g.POST("", b.Create)
	g.DELETE("/:id", b.Cancel)

	pg := e.Group("/api/payments", s.middleware())
	pg.POST("", p.Process)
	pg.GET("/booking/:id", p.Status)
}
