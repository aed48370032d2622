package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/service"
)

// getUserID extracts the user_id set by the session middleware.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get(middleware.CtxUserID).(type) {
	case uint64:
		return t, nil
	case int64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

func getRole(c echo.Context) string {
	role, _ := c.Get(middleware.CtxRole).(string)
	return role
}

func isAdmin(c echo.Context) bool { return getRole(c) == model.RoleAdmin }

// mayActFor reports whether the session user may act on something owned
// by owner.  Admins may act for anyone.
func mayActFor(c echo.Context, owner uint64) bool {
	if isAdmin(c) {
		return true
	}
	self, err := getUserID(c)
	return err == nil && self == owner
}

func forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, echo.Map{"error": "Forbidden"})
}

// idParam parses a positive numeric path parameter.
func idParam(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// bindValid binds the request body into dst and runs the registered
// validator.  On failure it returns the message to send with a 400.
func bindValid(c echo.Context, dst any) (string, bool) {
	if err := c.Bind(dst); err != nil {
		return "Invalid request body", false
	}
	if err := c.Validate(dst); err != nil {
		return err.Error(), false
	}
	return "", true
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// statusFor maps a service error kind to its HTTP status.
func statusFor(k service.Kind) int {
	switch k {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	case service.KindInvalidCredentials, service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// writeError renders err as {error} or {error, details}.
func writeError(c echo.Context, err error) error {
	var se *service.Error
	if !errors.As(err, &se) {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	status := statusFor(se.Kind)
	if status >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	body := echo.Map{"error": se.Message}
	if se.Details != "" {
		body["details"] = se.Details
	}
	return c.JSON(status, body)
}
