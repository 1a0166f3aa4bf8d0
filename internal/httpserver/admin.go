package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techstore/techstore/internal/admin"
	"github.com/techstore/techstore/internal/logging"
)

type AdminHTTP struct {
	Admin *admin.Service
}

func (h *AdminHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.Admin.ListUsers(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_user")

	var req admin.NewUser
	if err := c.Bind(&req); err != nil {
		l.Warn("create_user_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Admin.CreateUser(ctx, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *AdminHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.Admin.DeleteUser(ctx, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	summaries, err := h.Admin.OrderSummaries(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, summaries)
}
