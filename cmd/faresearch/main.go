package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"faresearch/cfg"
	"faresearch/internal/booking"
	"faresearch/internal/flight"
	"faresearch/internal/supplier"
	"faresearch/pkg/cache"
	"faresearch/pkg/db"
	"faresearch/pkg/flightclient"
	"faresearch/pkg/idgen"
	"faresearch/pkg/logger"
	"faresearch/pkg/telemetry"

	_ "faresearch/cmd/faresearch/docs" // swagger docs

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// @title           Fare Search API
// @version         1.0
// @description     Searches flight suppliers, then filters, sorts and books their fares.
// @BasePath        /
// @schemes         http
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// Otel
	// ============
	shutdownOtel, err := telemetry.Init(ctx, config.Observability, zlogger)
	if err != nil {
		log.Fatalf("failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(ctx); err != nil {
			zlogger.Error("failed to shutdown OpenTelemetry", logger.Field{Key: "err", Value: err})
		}
	}()

	// ============
	// Postgres + migrations
	// ============
	pgDSN := config.Postgres.DSN()
	sqlClient, err := db.NewSQLClient(ctx, "postgres", pgDSN, db.PoolOptions{
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer sqlClient.Close()

	if err := runMigrations(pgDSN); err != nil {
		log.Fatal(err)
	}

	// ============
	// Cache
	// ============
	redis, err := cache.NewRedisCache(ctx, cache.RedisOptions{
		Addr:     config.Redis.Host + ":" + config.Redis.Port,
		Password: config.Redis.Password,
	})
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// ID generator
	// ============
	ids, err := idgen.NewSnowflakeGenerator(config.SnowflakeNode)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// External Service
	// ============
	httpClient := &http.Client{
		Timeout: 5 * time.Second,
	}
	limiter := flightclient.NewProviderLimiter(flightclient.RateLimitConfig{
		RequestsPerSecond: config.SupplierLimit.RequestsPerSecond,
		BurstSize:         config.SupplierLimit.Burst,
	})

	supplierClients := make([]*flightclient.SupplierClient, 0, len(config.Suppliers))
	for _, sc := range config.Suppliers {
		s, err := flight.ParseSupplier(sc.Name)
		if err != nil {
			log.Fatal(err)
		}
		supplierClients = append(supplierClients, flightclient.NewSupplierClient(s, httpClient, sc.BaseURL, limiter, zlogger))
	}

	normalizer := supplier.NewNormalizer(zlogger)
	flightClient := flightclient.NewFlightClient(supplierClients, normalizer, zlogger)
	bookingClient := flightclient.NewBookingClient(supplierClients)

	// ============
	// Internal Service
	// ============
	flightSvc := flight.NewService(flightClient, redis, config.CacheTTLMinutes, ids, zlogger)
	flightHandler := flight.NewFlightHandler(flightSvc)

	bookingSvc := booking.NewService(bookingClient, booking.NewPostgresRepository(sqlClient), ids, zlogger)
	bookingHandler := booking.NewHandler(bookingSvc)

	// ============
	// HTTP
	// ============
	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(config.Observability.ServiceName))
	r.Use(telemetry.TraceLoggerMiddleware(zlogger))

	flightHandler.RegisterRoutes(r)
	bookingHandler.RegisterRoutes(r)
	initSwagger(r)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlogger.Info("server listening", logger.Field{Key: "addr", Value: srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlogger.Error("server shutdown failed", logger.Field{Key: "err", Value: err})
	}
}

func runMigrations(dsn string) error {
	m, err := migrate.New("file://db/migrations", dsn)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func initSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		html := `<!DOCTYPE html>
<html>
<head>
    <title>API Documentation</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
    <script id="api-reference" data-url="/swagger/doc.json"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
		c.String(http.StatusOK, html)
	})
}
