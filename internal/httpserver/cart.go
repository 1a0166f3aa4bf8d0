package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techstore/techstore/internal/cart"
	"github.com/techstore/techstore/internal/logging"
)

type CartHTTP struct {
	Cart *cart.Service
}

func (h *CartHTTP) respond(c echo.Context, code int, items any) error {
	ctx := c.Request().Context()
	total, err := h.Cart.Total(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(code, echo.Map{"items": items, "total": total})
}

// GetCart returns the cart with its priced total. An empty cart is an empty
// list, not an error.
func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.Cart.Items(ctx)
	if err != nil {
		return httpError(err)
	}
	return h.respond(c, http.StatusOK, items)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req struct {
		ProductID string `json:"productId"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	items, err := h.Cart.Add(ctx, req.ProductID)
	if err != nil {
		return httpError(err)
	}
	return h.respond(c, http.StatusOK, items)
}

func (h *CartHTTP) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.set_quantity")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("set_quantity_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	items, err := h.Cart.SetQuantity(ctx, c.Param("productID"), req.Quantity)
	if err != nil {
		return httpError(err)
	}
	return h.respond(c, http.StatusOK, items)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.Cart.Remove(ctx, c.Param("productID"))
	if err != nil {
		return httpError(err)
	}
	return h.respond(c, http.StatusOK, items)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.Cart.Clear(ctx); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
