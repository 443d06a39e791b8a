package httpserver

import (
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/labstack/echo/v4"

	"github.com/botanicglows/backend/internal/handlers"
	"github.com/botanicglows/backend/internal/middleware"
	"github.com/botanicglows/backend/internal/models"
)

type Deps struct {
	Auth             *middleware.Auth
	AuthHandler      *handlers.AuthHandler
	PublicHandler    *handlers.PublicHandler
	ProductHandler   *handlers.ProductHandler
	OrderHandler     *handlers.OrderHandler
	PaymentHandler   *handlers.PaymentHandler
	CustomerHandler  *handlers.CustomerHandler
	ContentHandler   *handlers.ContentHandler
	ShippingHandler  *handlers.ShippingHandler
	DashboardHandler *handlers.DashboardHandler
	SearchHandler    *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(200, echo.Map{"success": true, "message": "Botanic Glows API is running"})
	})

	public := e.Group("/api/public")
	public.GET("/products", d.PublicHandler.GetProducts)
	public.GET("/products/:id", d.PublicHandler.GetProduct)
	public.GET("/categories", d.PublicHandler.GetCategories)
	public.GET("/content/:type", d.PublicHandler.GetContent)
	public.GET("/blog", d.PublicHandler.GetBlog)
	public.GET("/shipping/cities", d.ShippingHandler.GetCities)
	public.GET("/shipping/rate", d.ShippingHandler.LookupRate)
	public.POST("/orders", d.PublicHandler.CreateOrder)
	if d.SearchHandler != nil {
		public.GET("/search", d.SearchHandler.Search)
	}

	pay := e.Group("/api/payments")
	pay.POST("/webhook", d.PaymentHandler.Webhook)
	pay.POST("/create-intent", d.PaymentHandler.CreateIntent)
	pay.POST("/verify", d.PaymentHandler.VerifyPayment)
	pay.POST("/cod", d.PaymentHandler.ConfirmCOD)
	pay.GET("/transactions", d.PaymentHandler.GetTransactions, d.Auth.Protect)

	loginLimiter := echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(10))
	e.POST("/api/admin/auth/login", d.AuthHandler.Login, loginLimiter)

	admin := e.Group("/api/admin", d.Auth.Protect)

	superOnly := d.Auth.Authorize(models.RoleSuperAdmin)
	managers := d.Auth.Authorize(models.RoleSuperAdmin, models.RoleAdmin)

	admin.POST("/auth/register", d.AuthHandler.Register, superOnly)
	admin.PUT("/auth/password", d.AuthHandler.ChangePassword)
	admin.GET("/auth/me", d.AuthHandler.Me)

	admin.GET("/dashboard/stats", d.DashboardHandler.GetStats)
	admin.GET("/dashboard/sales", d.DashboardHandler.GetSales)

	admin.GET("/products", d.ProductHandler.GetProducts)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.GET("/products/:id", d.ProductHandler.GetProduct)
	admin.PUT("/products/:id", d.ProductHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct, managers)

	admin.GET("/products/categories/all", d.ProductHandler.GetCategories)
	admin.POST("/products/categories/all", d.ProductHandler.CreateCategory, managers)
	admin.PUT("/products/categories/:id", d.ProductHandler.UpdateCategory, managers)
	admin.DELETE("/products/categories/:id", d.ProductHandler.DeleteCategory, superOnly)

	admin.GET("/orders", d.OrderHandler.GetOrders)
	admin.GET("/orders/:id", d.OrderHandler.GetOrder)
	admin.PUT("/orders/:id", d.OrderHandler.UpdateOrder)
	admin.GET("/orders/:id/invoice", d.OrderHandler.GetInvoice)

	admin.GET("/customers", d.CustomerHandler.GetCustomers)
	admin.GET("/customers/:id", d.CustomerHandler.GetCustomer)
	admin.PUT("/customers/:id/block", d.CustomerHandler.ToggleBlock)
	admin.DELETE("/customers/:id", d.CustomerHandler.DeleteCustomer, managers)
	admin.GET("/customers/:id/orders", d.CustomerHandler.GetCustomerOrders)

	admin.GET("/content/blog", d.ContentHandler.GetBlogs)
	admin.POST("/content/blog", d.ContentHandler.CreateBlog, managers)
	admin.GET("/content/blog/:id", d.ContentHandler.GetBlog)
	admin.PUT("/content/blog/:id", d.ContentHandler.UpdateBlog, managers)
	admin.DELETE("/content/blog/:id", d.ContentHandler.DeleteBlog, managers)
	admin.GET("/content/:type", d.ContentHandler.GetContent)
	admin.PUT("/content/:type", d.ContentHandler.UpdateContent, managers)

	admin.GET("/shipping", d.ShippingHandler.GetRates)
	admin.GET("/shipping/cities", d.ShippingHandler.GetCities)
	admin.PUT("/shipping/rate", d.ShippingHandler.SetRate)
	admin.PUT("/shipping/bulk", d.ShippingHandler.SetRatesBulk)
	admin.DELETE("/shipping/:id", d.ShippingHandler.DeleteRate)
}
