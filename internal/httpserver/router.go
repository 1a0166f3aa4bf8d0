package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	Guard           *Guard
	AuthHandler     *AuthHTTP
	CatalogHandler  *CatalogHTTP
	CartHandler     *CartHTTP
	CheckoutHandler *CheckoutHTTP
	AdminHandler    *AdminHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/signup", d.AuthHandler.SignUp)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)
	v1.GET("/me", d.AuthHandler.Me)

	products := v1.Group("/products")
	products.GET("", d.CatalogHandler.ListProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	cart := v1.Group("/cart", d.Guard.RequireLogin)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PATCH("/:productID", d.CartHandler.SetQuantity)
	cart.DELETE("/:productID", d.CartHandler.RemoveFromCart)
	cart.DELETE("", d.CartHandler.ClearCart)

	v1.POST("/checkout", d.CheckoutHandler.Submit, d.Guard.RequireLogin)
	v1.GET("/orders", d.CheckoutHandler.MyOrders, d.Guard.RequireLogin)

	admin := v1.Group("/admin", d.Guard.RequireAdmin)
	admin.POST("/products", d.CatalogHandler.CreateProduct)
	admin.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)
	admin.GET("/users", d.AdminHandler.ListUsers)
	admin.POST("/users", d.AdminHandler.CreateUser)
	admin.DELETE("/users/:id", d.AdminHandler.DeleteUser)
	admin.GET("/orders", d.AdminHandler.ListOrders)
}
