package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techstore/techstore/internal/checkout"
	"github.com/techstore/techstore/internal/logging"
	"github.com/techstore/techstore/internal/session"
)

type CheckoutHTTP struct {
	Checkout *checkout.Service
	Sessions *session.Service
}

func (h *CheckoutHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.submit")

	var form checkout.Form
	if err := c.Bind(&form); err != nil {
		l.Warn("checkout_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Checkout.Submit(ctx, form)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, order)
}

// MyOrders lists the current user's own orders.
func (h *CheckoutHTTP) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.Sessions.Current(ctx)
	if err != nil {
		return httpError(err)
	}
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}

	orders, err := h.Checkout.OrdersFor(ctx, user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}
