package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NaMinhyeok/order-practice/internal/adapters/config"
	"github.com/NaMinhyeok/order-practice/internal/adapters/http/controllers"
	"github.com/NaMinhyeok/order-practice/internal/adapters/http/handlers"
	"github.com/NaMinhyeok/order-practice/internal/adapters/http/middleware"
)

type Router struct {
	healthController  *controllers.HealthController
	orderController   *controllers.OrderController
	productController *controllers.ProductController
	rateLimiter       middleware.RateLimiter
	rateLimit         config.RateLimitConfig
	observer          middleware.HTTPObserver
	metricsHandler    http.Handler
}

// NewRouter wires the API. observer and metricsHandler may be nil.
func NewRouter(
	healthController *controllers.HealthController,
	orderController *controllers.OrderController,
	productController *controllers.ProductController,
	rateLimiter middleware.RateLimiter,
	rateLimit config.RateLimitConfig,
	observer middleware.HTTPObserver,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		healthController:  healthController,
		orderController:   orderController,
		productController: productController,
		rateLimiter:       rateLimiter,
		rateLimit:         rateLimit,
		observer:          observer,
		metricsHandler:    metricsHandler,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	handlers.RegisterValidators()

	router.Use(middleware.RequestID())
	if r.observer != nil {
		router.Use(middleware.Metrics(r.observer))
	}
	if r.metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(r.metricsHandler))
	}

	createOrderHandlers := []gin.HandlerFunc{r.orderController.CreateOrder}
	if r.rateLimiter != nil && r.rateLimit.OrderLimit > 0 {
		createOrderHandlers = append([]gin.HandlerFunc{
			middleware.RateLimit(r.rateLimiter, r.rateLimit.OrderLimit, r.rateLimit.Window),
		}, createOrderHandlers...)
	}

	apiGroup := router.Group("/api")
	v1Group := apiGroup.Group("/v1")
	{
		v1Group.Use(middleware.LogRequest("/api/v1/health"))
		v1Group.GET("/health", r.healthController.Health)

		v1Group.POST("/orders", createOrderHandlers...)
		v1Group.GET("/orders", r.orderController.GetOrdersByEmail)
		v1Group.GET("/orders/:id", r.orderController.GetOrderByID)

		v1Group.POST("/products", r.productController.CreateProduct)
		v1Group.GET("/products", r.productController.GetAll)
		v1Group.GET("/products/:id", r.productController.GetProduct)
		v1Group.PUT("/products/:id", r.productController.UpdateProduct)
		v1Group.DELETE("/products/:id", r.productController.DeleteProduct)
	}
}

func (r *Router) Engine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	r.SetupRoutes(engine)
	return engine
}

func (r *Router) ListenAndServe(ctx context.Context, config config.HTTPConfig) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", config.BindInterface, config.Port),
		Handler:           r.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
