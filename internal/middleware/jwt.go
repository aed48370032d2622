package middleware // middleware holds the echo middleware shared by all route groups

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/utils"
)

// Context keys set by SessionAuth.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// SessionAuth returns an Echo middleware that validates the session token
// and injects its subject and role into the request context.  The token is
// read from the cookieName cookie first and from an "Authorization: Bearer"
// header otherwise.  Handlers read the values via c.Get("user_id") (uint64)
// and c.Get("role") (string).
func SessionAuth(secret, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c, cookieName)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
			}
			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context, cookieName string) string {
	if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
