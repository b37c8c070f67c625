package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/api/handlers"
	"github.com/yangart/storefront/internal/api/middleware"
	"github.com/yangart/storefront/internal/config"
	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/internal/metrics"
	"github.com/yangart/storefront/internal/validation"
)

// Services bundles what the handlers call into
type Services struct {
	Orders   handlers.OrderWorkflow
	Products handlers.Catalog
	Offers   handlers.OfferManager
	Accounts handlers.Accounts
	Carts    handlers.CartManager
}

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	svc Services,
	tokens middleware.TokenVerifier,
	m *metrics.Registry,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	v := validation.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger, m))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	customerAuth := middleware.AuthMiddleware(tokens, domain.PrincipalCustomer, logger)
	adminAuth := middleware.AuthMiddleware(tokens, domain.PrincipalAdmin, logger)

	// Public routes
	router.POST("/users/register", handlers.HandleRegister(svc.Accounts, v, logger))
	router.POST("/users/login", handlers.HandleLogin(svc.Accounts, v, logger))
	router.POST("/users/check-phone", handlers.HandleCheckPhone(svc.Accounts, v, logger))
	router.POST("/admin/login", handlers.HandleAdminLogin(svc.Accounts, v, logger))
	router.GET("/products", handlers.HandleListProducts(svc.Products, logger))
	router.GET("/products/:id", handlers.HandleGetProduct(svc.Products, logger))

	// Customer routes
	customer := router.Group("")
	customer.Use(customerAuth)
	{
		customer.GET("/users/me", handlers.HandleMe(svc.Accounts, logger))

		customer.POST("/orders/razorpay", handlers.HandleCreateGatewayOrder(svc.Orders, v, logger))
		customer.POST("/orders/confirm", handlers.HandleConfirmPayment(svc.Orders, v, logger))
		customer.GET("/orders/my", handlers.HandleListMyOrders(svc.Orders, logger))

		customer.GET("/cart", handlers.HandleGetCart(svc.Carts))
		customer.DELETE("/cart", handlers.HandleClearCart(svc.Carts))
		customer.POST("/cart/items", handlers.HandleAddCartItem(svc.Carts, v, logger))
		customer.PUT("/cart/items", handlers.HandleUpdateCartItem(svc.Carts, v, logger))
		customer.DELETE("/cart/items", handlers.HandleRemoveCartItem(svc.Carts, v, logger))
	}

	// Admin routes
	admin := router.Group("")
	admin.Use(adminAuth)
	{
		admin.GET("/orders", handlers.HandleListOrders(svc.Orders, logger))
		admin.GET("/orders/:id", handlers.HandleGetOrder(svc.Orders, logger))
		admin.PUT("/orders/:id/status", handlers.HandleUpdateOrderStatus(svc.Orders, v, logger))
		admin.GET("/analytics/top-products", handlers.HandleTopProducts(svc.Orders, logger))

		admin.POST("/products", handlers.HandleCreateProduct(svc.Products, v, logger))
		admin.PUT("/products/:id", handlers.HandleUpdateProduct(svc.Products, v, logger))
		admin.DELETE("/products/:id", handlers.HandleDeleteProduct(svc.Products, logger))

		admin.GET("/offers", handlers.HandleListOffers(svc.Offers, logger))
		admin.POST("/offers", handlers.HandleCreateOffer(svc.Offers, v, logger))
		admin.PUT("/offers/:id", handlers.HandleUpdateOffer(svc.Offers, v, logger))
		admin.DELETE("/offers/:id", handlers.HandleDeleteOffer(svc.Offers, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests and records their latency
func loggingMiddleware(logger *zap.Logger, m *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestLatencySec.WithLabelValues(method, route, strconv.Itoa(status)).Observe(latency.Seconds())

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
		)
	}
}
