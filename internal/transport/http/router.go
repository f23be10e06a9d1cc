package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/appdotbuilder/gameva-shop/internal/handlers"
	"github.com/appdotbuilder/gameva-shop/internal/service"
)

type Deps struct {
	DB               *gorm.DB
	AuthHandler      *handlers.AuthHandler
	ProductHandler   *handlers.ProductHandler
	CategoryHandler  *handlers.CategoryHandler
	CartHandler      *handlers.CartHandler
	AddressHandler   *handlers.AddressHandler
	OrderHandler     *handlers.OrderHandler
	DashboardHandler *handlers.DashboardHandler
	SearchHandler    *handlers.SearchHandler
	ServiceHandler   *service.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.LogOut)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/featured", d.ProductHandler.GetFeaturedProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	v1.GET("/categories", d.CategoryHandler.GetCategories)
	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	authed := v1.Group("", d.ServiceHandler.AutoRefreshMiddleware)

	authed.GET("/cart", d.CartHandler.GetCart)
	authed.POST("/cart", d.CartHandler.AddToCart)
	authed.PATCH("/cart/:id", d.CartHandler.UpdateCartItem)
	authed.DELETE("/cart/:id", d.CartHandler.RemoveFromCart)
	authed.DELETE("/cart", d.CartHandler.ClearCart)

	authed.POST("/addresses", d.AddressHandler.CreateAddress)
	authed.GET("/addresses", d.AddressHandler.GetUserAddresses)

	authed.POST("/orders", d.OrderHandler.CreateOrder)
	authed.GET("/orders", d.OrderHandler.GetUserOrders)
	authed.GET("/orders/:id", d.OrderHandler.GetOrder)

	admin := v1.Group("/admin", d.ServiceHandler.AutoRefreshMiddlewareAdmin)

	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	admin.POST("/categories", d.CategoryHandler.CreateCategory)

	admin.GET("/orders", d.OrderHandler.GetOrders)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateOrderStatus)

	admin.GET("/users", d.AuthHandler.GetUsers)
	admin.GET("/dashboard", d.DashboardHandler.GetDashboardMetrics)
}
