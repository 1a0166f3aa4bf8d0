package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techstore/techstore/internal/logging"
	"github.com/techstore/techstore/internal/session"
)

type AuthHTTP struct {
	Sessions *session.Service
	Guard    *Guard
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *AuthHTTP) SignUp(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Sessions.SignUp(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return httpError(err)
	}

	cookie, err := h.Guard.issueCookie(user)
	if err != nil {
		l.Error("signup_failed", "status", 500, "reason", "cannot sign session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot sign session")
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req session.Credentials
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	cookie, err := h.Guard.issueCookie(user)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot sign session")
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, echo.Map{
		"user":     user,
		"is_admin": session.IsAdmin(user),
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.Sessions.Logout(ctx); err != nil {
		return httpError(err)
	}
	c.SetCookie(deleteCookie())

	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.Sessions.Current(ctx)
	if err != nil {
		return httpError(err)
	}
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}
	return c.JSON(http.StatusOK, user)
}
