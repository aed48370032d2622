package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/service"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg  config.Config
	Auth *service.AuthService
}

func NewAuthHandler(cfg config.Config, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Auth: auth}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, false)
}

// AdminLogin handles POST /api/auth/admin/login.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, true)
}

func (h *AuthHandler) login(c echo.Context, admin bool) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	ctx := c.Request().Context()
	var (
		sess *service.Session
		err  error
	)
	if admin {
		sess, err = h.Auth.AdminLogin(ctx, req.Email, req.Password)
	} else {
		sess, err = h.Auth.Login(ctx, req.Email, req.Password)
	}
	if err != nil {
		return writeError(c, err)
	}
	h.setSessionCookie(c, sess.Token.Token, sess.Token.Exp)
	msg := "Login successful"
	if admin {
		msg = "Admin login successful"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    msg,
		"user":       sess.User,
		"token":      sess.Token.Token,
		"expires_at": sess.Token.Exp,
	})
}

// Register handles POST /api/auth/register.  Registration does not log
// the user in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	u, err := h.Auth.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user_id": u.ID,
		"name":    u.Name,
		"email":   u.Email,
		"role":    u.Role,
	})
}

// Logout handles POST /api/auth/logout by expiring the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.setSessionCookie(c, "", time.Unix(0, 0))
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /api/auth/me and returns the session's user.
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	u, err := h.Auth.GetUser(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, value string, exp time.Time) {
	ck := &http.Cookie{
		Name:     h.Cfg.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   h.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		ck.MaxAge = -1
	}
	c.SetCookie(ck)
}
