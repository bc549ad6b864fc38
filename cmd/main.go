package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nargizk/dastarkhan/internal/adapter/logger"
	"github.com/nargizk/dastarkhan/internal/adapter/postgres"
	"github.com/nargizk/dastarkhan/internal/adapter/rabbitmq"
	redisAdapter "github.com/nargizk/dastarkhan/internal/adapter/redis"
	"github.com/nargizk/dastarkhan/internal/app/cart"
	"github.com/nargizk/dastarkhan/internal/app/catalog"
	"github.com/nargizk/dastarkhan/internal/app/checkout"
	"github.com/nargizk/dastarkhan/internal/app/discount"
	"github.com/nargizk/dastarkhan/internal/app/loyalty"
	"github.com/nargizk/dastarkhan/internal/app/report"
	"github.com/nargizk/dastarkhan/internal/config"

	amqpAdapter "github.com/nargizk/dastarkhan/internal/adapter/amqp"
	httpAdapter "github.com/nargizk/dastarkhan/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "", "Service mode: api, notification-subscriber")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	prefetch := flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	lgr := logger.New(*mode)

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	switch *mode {
	case "api":
		runAPI(ctx, cfg, mqConn, lgr)

	case "notification-subscriber":
		runNotificationSubscriber(ctx, mqConn, lgr, *prefetch)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runAPI(ctx context.Context, cfg *config.Config, mqConn rabbitmq.Connection, lgr logger.Logger) {
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	redisClient, err := redisAdapter.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Repositories
	foodRepo := postgres.NewFoodRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	discountRepo := postgres.NewDiscountRepository(db)
	loyaltyRepo := postgres.NewLoyaltyRepository(db)
	cartStore := redisAdapter.NewCartStore(redisClient, time.Duration(cfg.Redis.CartTTLMins)*time.Minute)

	// Messaging
	publisher := rabbitmq.NewPublisher(mqConn)

	// Services
	catalogService := catalog.NewService(foodRepo, lgr)
	cartService := cart.NewService(cartStore, catalogService, lgr)
	loyaltyService := loyalty.NewService(loyaltyRepo, lgr)
	discountService := discount.NewService(discountRepo, loyaltyService, lgr)
	checkoutService := checkout.NewService(orderRepo, catalogService, discountService, loyaltyService, publisher, lgr, cfg.Server.TrackingURL)
	reportService := report.NewService(orderRepo, foodRepo, lgr)

	// HTTP handlers
	catalogHandler := httpAdapter.NewCatalogHandler(catalogService, lgr)
	cartHandler := httpAdapter.NewCartHandler(cartService, lgr)
	checkoutHandler := httpAdapter.NewCheckoutHandler(checkoutService, cartService, lgr)
	discountHandler := httpAdapter.NewDiscountHandler(discountService, loyaltyService, lgr)
	reportHandler := httpAdapter.NewReportHandler(reportService, lgr)

	handler := httpAdapter.NewRouter(catalogHandler, cartHandler, checkoutHandler, discountHandler, reportHandler, lgr)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("API started on port %d", cfg.Server.Port), "startup", map[string]interface{}{
		"port": cfg.Server.Port,
	})

	// Graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down API", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}

func runNotificationSubscriber(ctx context.Context, mqConn rabbitmq.Connection, lgr logger.Logger, prefetch int) {
	consumer := rabbitmq.NewConsumer(mqConn, prefetch)
	notificationHandler := amqpAdapter.NewNotificationHandler(lgr)

	lgr.Info("service_started", "Notification Subscriber started", "startup", nil)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := consumer.ConsumeOrderEvents(ctx, notificationHandler.HandleNotification); err != nil && ctx.Err() == nil {
			lgr.Error("consumer_error", "Error consuming order events", "runtime", nil, err)
		}
	}()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	lgr.Info("shutdown_initiated", "Shutting down Notification Subscriber", "shutdown", nil)
}
