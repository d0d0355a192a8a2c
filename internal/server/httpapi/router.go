// Package httpapi exposes the storefront services over REST. Response
// shapes and status codes follow the contract the web and CLI clients
// expect: auth failures carry {"detail": ...}, cart errors carry
// {"error": ...} and registration failures come back keyed by field.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/shopkart-io/shopkart/internal/logging"
	"github.com/shopkart-io/shopkart/internal/server/services"
)

type Server struct {
	users   *services.UserService
	catalog *services.CatalogService
	orders  *services.OrderService
	secret  []byte
	logger  logging.Logger
}

func NewServer(users *services.UserService, catalog *services.CatalogService,
	orders *services.OrderService, secret []byte, logger logging.Logger) *Server {
	return &Server{users: users, catalog: catalog, orders: orders, secret: secret, logger: logger}
}

// Router builds the gin engine with all storefront routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())

	api := router.Group("/api")
	{
		api.POST("/token/", s.handleToken)
		api.POST("/token/refresh/", s.handleTokenRefresh)
		api.POST("/register/", s.handleRegister)

		api.GET("/products/", s.handleProducts)
		api.GET("/categories/", s.handleCategories)

		authed := api.Group("", s.requireAuth())
		{
			authed.GET("/cart/", s.handleCart)
			authed.POST("/cart/", s.handleAddToCart)
			authed.PATCH("/cart/item/:id/", s.handleUpdateCartItem)
			authed.DELETE("/cart/item/:id/", s.handleRemoveCartItem)
			authed.POST("/cart/clear/", s.handleClearCart)

			authed.GET("/orders/", s.handleOrders)
			authed.POST("/orders/", s.handlePlaceOrder)
		}
	}

	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}
