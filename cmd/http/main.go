package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NaMinhyeok/order-practice/internal/adapters/config"
	"github.com/NaMinhyeok/order-practice/internal/adapters/http"
	"github.com/NaMinhyeok/order-practice/internal/adapters/http/controllers"
	"github.com/NaMinhyeok/order-practice/internal/adapters/metrics"
	"github.com/NaMinhyeok/order-practice/internal/adapters/outbox"
	"github.com/NaMinhyeok/order-practice/internal/adapters/postgres"
	"github.com/NaMinhyeok/order-practice/internal/adapters/postgres/repository"
	"github.com/NaMinhyeok/order-practice/internal/adapters/rabbitmq"
	"github.com/NaMinhyeok/order-practice/internal/adapters/redis"
	"github.com/NaMinhyeok/order-practice/internal/adapters/scheduler"
	"github.com/NaMinhyeok/order-practice/internal/core/domain"
	"github.com/NaMinhyeok/order-practice/internal/core/logger"
	"github.com/NaMinhyeok/order-practice/internal/core/port"
	"github.com/NaMinhyeok/order-practice/internal/core/service"
)

// @title       Order Practice API
// @version     1.0
// @description Cafe product catalogue and order management API

// @host     localhost:8080
// @BasePath /

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

func main() {
	// initialize config and logger
	cfg := config.NewConfig()
	if err := logger.Initialize(logger.Options{
		CollectorEndpoint: cfg.Logger.Endpoint,
		ServiceName:       cfg.Logger.ServiceName,
		Production:        cfg.Logger.IsProduction,
		Level:             logger.ParseLevel(cfg.Logger.Level),
	}); err != nil {
		// logger not available yet, fall back to stderr
		fmt.Fprintln(os.Stderr, "failed to initialize logger: "+err.Error())
		os.Exit(1)
	}

	// cancellable context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database pools
	router, err := postgres.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to PostgreSQL", err, nil)
	}
	defer router.Close()
	logger.Info(ctx, "Connected to PostgreSQL", map[string]any{"replica": router.HasReplica()})

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, router.Route(port.IntentCommand)); err != nil {
			logger.Fatal(ctx, "Failed to apply schema", err, nil)
		}
	}

	// initialize redis connection
	redisClient, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to Redis", err, nil)
	}
	defer redisClient.Close()
	logger.Info(ctx, "Connected to Redis", nil)

	// initialize rabbitmq connection
	broker, err := rabbitmq.NewPublisher(cfg.RabbitMQ)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to RabbitMQ", err, nil)
	}
	defer broker.Close()
	logger.Info(ctx, "Connected to RabbitMQ", nil)

	// repositories
	productRepository := repository.NewProductRepository(router)
	orderRepository := repository.NewOrderRepository(router)
	outboxRepository := repository.NewOutboxRepository(router)
	txManager := postgres.NewTransactionManager(router)

	// caches and rate limiter
	idempotencyCache := redis.NewCache[service.IdempotencyEntry[domain.Order]](redisClient, "idempotency-cache")
	rateLimiter := redis.NewRateLimiter(redisClient)

	m := metrics.New()

	// outbox handler (uses cancellable context)
	outboxHandler := outbox.NewHandler(outboxRepository, broker, cfg.Outbox).WithObserver(m)
	go outboxHandler.Start(ctx)
	logger.Info(ctx, "Outbox handler started", map[string]any{"interval": cfg.Outbox.Interval.String(), "batch_size": cfg.Outbox.BatchSize})

	// services
	productService := service.NewProductService(productRepository, txManager)
	idempotencyService := service.NewIdempotencyService(idempotencyCache, cfg.Idempotency.TTL, cfg.Idempotency.PollInterval, cfg.Idempotency.PollTimeout)
	orderService := service.NewOrderService(orderRepository, productService, outboxRepository, idempotencyService, txManager)

	// daily delivery job
	delivery, err := scheduler.NewDailyScheduler("send-orders", cfg.Scheduler, orderService.SendOrders, scheduler.WithObserver(m))
	if err != nil {
		logger.Fatal(ctx, "Invalid scheduler configuration", err, nil)
	}
	go delivery.Start(ctx)

	// controllers
	orderController := controllers.NewOrderController(orderService)
	productController := controllers.NewProductController(productService)
	healthController := controllers.NewHealthController([]controllers.HealthChecker{
		{Name: "postgres", Check: router.Ping},
		{Name: "redis", Check: redisClient.Ping},
		{Name: "rabbitmq", Check: broker.Ping},
	})

	// router
	httpRouter := http.NewRouter(healthController, orderController, productController, rateLimiter, cfg.RateLimit, m, m.Handler())

	// graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info(ctx, "Received shutdown signal", map[string]any{"signal": sig.String()})
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := logger.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintln(os.Stderr, "logger shutdown error: "+err.Error())
		}
	}()

	logger.Info(ctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port})
	if err := httpRouter.ListenAndServe(ctx, cfg.HTTP); err != nil {
		logger.Fatal(ctx, "Failed to start HTTP server", err, nil)
	}
}
