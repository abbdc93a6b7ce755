package httpserver

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	ProfileHandler *ProfileHandler
	Auth           *TokenAuth
	StaticDir      string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Static("/static", filepath.Clean(d.StaticDir))

	e.POST("/registration", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.GET("/logout", d.AuthHandler.Logout, d.Auth.RequireToken)

	e.GET("/products", d.ProductHandler.GetProducts)
	e.POST("/products", d.ProductHandler.CreateProduct, d.Auth.RequireToken)
	e.PUT("/products", d.ProductHandler.Restock, d.Auth.RequireToken)
	e.GET("/product/:id", d.ProductHandler.GetProduct)
	e.POST("/search", d.ProductHandler.Search)
	e.GET("/image/:filename", d.ProductHandler.GetImage)
	e.POST("/image", d.ProductHandler.SetImage)

	e.GET("/cart", d.CartHandler.GetCart, d.Auth.RequireToken)
	e.POST("/cart", d.CartHandler.AddToCart, d.Auth.RequireToken)

	e.POST("/order", d.OrderHandler.PlaceOrder, d.Auth.RequireToken)
	e.PUT("/order", d.OrderHandler.SetStatus, d.Auth.RequireToken)

	e.GET("/profile", d.ProfileHandler.GetProfile, d.Auth.RequireToken)
	e.POST("/profile", d.ProfileHandler.UpdateProfile, d.Auth.RequireToken)

	admin := e.Group("/admin", d.Auth.RequireAdmin)
	admin.GET("/orders", d.OrderHandler.AdminOrders)
}
