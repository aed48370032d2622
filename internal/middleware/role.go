package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// RequireRole returns a middleware that aborts with 403 unless the role
// stored by SessionAuth is one of roles.
func RequireRole(message string, roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": message})
			}
			return next(c)
		}
	}
}

// RequireAdmin gates admin-only routes.
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole("Unauthorized: Admin access only", model.RoleAdmin)
}

// RoleLookup reports the role a user holds right now.  An unknown user
// yields an empty role and no error.
type RoleLookup interface {
	CurrentRole(ctx context.Context, userID uint64) (string, error)
}

// RequireCurrentAdmin gates admin-only routes on the role stored for the
// session user rather than the one baked into the token, so a demoted or
// deleted admin loses access before the token expires.
func RequireCurrentAdmin(roles RoleLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(CtxUserID).(uint64)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
			}
			role, err := roles.CurrentRole(c.Request().Context(), userID)
			if err != nil {
				c.Logger().Error(err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
			}
			if role != model.RoleAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Unauthorized: Admin access only"})
			}
			c.Set(CtxRole, role)
			return next(c)
		}
	}
}
