package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/service"
)

type userReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

// ListUsers handles GET /api/auth/admin/users.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.Auth.ListUsers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser handles POST /api/auth/admin/users.
func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req userReq
	if msg, ok := bindValid(c, &req); !ok {
		return badRequest(c, msg)
	}
	u, err := h.Auth.CreateUser(c.Request().Context(), service.UserInput{
		Name: req.Name, Email: req.Email, Password: req.Password, Role: req.Role,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "User created successfully", "user": u})
}

// UpdateUser handles PUT /api/auth/admin/users/:id.  An empty password
// keeps the current one.
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	var req userReq
	if msg, ok := bindValid(c, &req); !ok {
		return badRequest(c, msg)
	}
	u, err := h.Auth.UpdateUser(c.Request().Context(), id, service.UserInput{
		Name: req.Name, Email: req.Email, Password: req.Password, Role: req.Role,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User updated successfully", "user": u})
}

// DeleteUser handles DELETE /api/auth/admin/users/:id.
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	if self, _ := getUserID(c); self == id {
		return badRequest(c, "cannot delete your own account")
	}
	if err := h.Auth.DeleteUser(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}
