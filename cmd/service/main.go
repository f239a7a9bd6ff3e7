package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "dispatch/internal/app"
	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/admin_orders_get"
	"dispatch/internal/handlers/rest/assigned_deliveries_get"
	"dispatch/internal/handlers/rest/available_deliveries_get"
	"dispatch/internal/handlers/rest/check_address_post"
	"dispatch/internal/handlers/rest/delivery_accept_post"
	"dispatch/internal/handlers/rest/delivery_cancel_post"
	"dispatch/internal/handlers/rest/delivery_issue_post"
	"dispatch/internal/handlers/rest/delivery_post"
	"dispatch/internal/handlers/rest/driver_location_put"
	"dispatch/internal/handlers/rest/driver_orders_get"
	"dispatch/internal/handlers/rest/driver_stats_get"
	"dispatch/internal/handlers/rest/earning_config_get"
	"dispatch/internal/handlers/rest/earning_config_put"
	"dispatch/internal/handlers/rest/healthcheck_head"
	"dispatch/internal/handlers/rest/nearby_deliveries_get"
	"dispatch/internal/handlers/rest/order_get"
	"dispatch/internal/handlers/rest/order_patch"
	"dispatch/internal/handlers/rest/ping_get"
	"dispatch/internal/handlers/rest/push_token_delete"
	"dispatch/internal/handlers/rest/push_token_post"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/dotenv"
	"dispatch/internal/pkg/firebase"
	"dispatch/internal/pkg/kafka"
	metrics_system "dispatch/internal/pkg/metrics"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/pkg/middlewares/graceful_shutdown"
	"dispatch/internal/pkg/middlewares/metrics"
	"dispatch/internal/pkg/middlewares/rate_limiter"
	"dispatch/internal/pkg/middlewares/timeout"
	"dispatch/internal/pkg/postgres"
	"dispatch/internal/pkg/redis"
	"dispatch/pkg/logger"
	"dispatch/pkg/logger/zap_adapter"
	"dispatch/pkg/token_bucket"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With(logger.NewField("app", "dispatch-service"))

	mainLog.Info("starting dispatch-service application")

	loaded, err := dotenv.Load(dotenv.DefaultFile)
	if err != nil {
		mainLog.Error("failed to load .env file", logger.Err(err))
		return
	}
	if !loaded {
		mainLog.Warn("No .env file found, using system environment variables")
	}
	if err := dotenv.ParsePortFlag(os.Args[1:]); err != nil {
		mainLog.Error("parse flags", logger.Err(err))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.Err(err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.Err(err))
		return
	}
}

//nolint:contextcheck // ongoingCtx и shutdownCtx намеренно от context.Background(), это часть graceful shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	redisClient, err := redis.NewClient(ctx, log, &cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			runLog.Error("failed to close redis client", logger.Err(err))
		}
	}()

	fcm, err := firebase.NewMessagingClient(ctx, log, &cfg.Firebase)
	if err != nil {
		return fmt.Errorf("firebase: %w", err)
	}

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close kafka producer", logger.Err(err))
		}
	}()

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, redisClient, fcm, producer, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ctx, 5*time.Second)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, readinessDeps(pool, redisClient), cfg),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(log, &isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // nil канал, если pprof выключен
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.Err(shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	// ctx уже отменен, фоновые задачи доделывают текущий проход
	businessApp.BackgroundWorkers.Wait()

	runLog.Info("Server stopped")
	return nil
}

func readinessDeps(pool *pgxpool.Pool, redisClient *goredis.Client) map[string]healthcheck_head.Pinger {
	return map[string]healthcheck_head.Pinger{
		"postgres": pool,
		"redis": healthcheck_head.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}),
	}
}

func initRouter(ongoingCtx context.Context, log logger.Logger, isShuttingDown *atomic.Bool, app *application.Application, deps map[string]healthcheck_head.Pinger, cfg *config.Config) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(log, isShuttingDown, ongoingCtx))

	// геокодирование ходит во внешний провайдер со своим таймаутом
	geoBudget := cfg.Server.RequestTimeout + cfg.Maps.Timeout
	router.Use(timeout.Middleware(cfg.Server.RequestTimeout, map[string]time.Duration{
		"/create-delivery": geoBudget,
		"/check-address":   geoBudget,
	}))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.Server.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.Server.RateLimiterQPS, float64(cfg.Server.RateLimiterBurst))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(log, isShuttingDown, deps)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	api := router.NewRoute().Subrouter()
	api.Use(app.Authenticator.Middleware)

	platform := auth.RequireRoles(entities.RolePlatform, entities.RoleAdmin)
	driver := auth.RequireRoles(entities.RoleDriver)
	admin := auth.RequireRoles(entities.RoleAdmin)
	driverOrAdmin := auth.RequireRoles(entities.RoleDriver, entities.RoleAdmin)

	api.Handle("/create-delivery", platform(delivery_post.New(log, app.ServiceDelivery))).Methods("POST")
	api.Handle("/check-address", platform(check_address_post.New(log, app.ServiceDelivery))).Methods("POST")
	api.Handle("/cancel-delivery", platform(delivery_cancel_post.New(log, app.ServiceDelivery))).Methods("POST")

	api.Handle("/available-deliveries", admin(available_deliveries_get.New(log, app.ServiceDispatch))).Methods("GET")
	api.Handle("/nearby-deliveries", driver(nearby_deliveries_get.New(log, app.ServiceDispatch))).Methods("GET")
	api.Handle("/accept-delivery/{client_id}", driver(delivery_accept_post.New(log, app.ServiceDelivery))).Methods("POST")

	api.Handle("/order/{client_id}", order_get.New(log, app.ServiceDelivery)).Methods("GET")
	api.Handle("/order/{client_id}", driverOrAdmin(order_patch.New(log, app.ServiceDelivery))).Methods("PATCH")

	api.Handle("/assigned-deliveries", driver(assigned_deliveries_get.New(log, app.ServiceDelivery))).Methods("GET")
	api.Handle("/driver-order", driver(driver_orders_get.New(log, app.ServiceDelivery))).Methods("GET")
	api.Handle("/admin-orders", admin(admin_orders_get.New(log, app.ServiceDelivery))).Methods("GET")

	api.Handle("/driver/location", driver(driver_location_put.New(log, app.ServiceDispatch))).Methods("PUT")
	api.Handle("/driver/stats", driver(driver_stats_get.New(log, app.ServiceEvents))).Methods("GET")

	api.Handle("/earning-config", admin(earning_config_get.New(log, app.ServiceEarning))).Methods("GET")
	api.Handle("/earning-config", admin(earning_config_put.New(log, app.ServiceEarning))).Methods("PUT")

	api.Handle("/delivery-issue", delivery_issue_post.New(log, app.ServiceIssue)).Methods("POST")
	api.Handle("/push-token", push_token_post.New(log, app.ServicePushToken)).Methods("POST")
	api.Handle("/push-token", push_token_delete.New(log, app.ServicePushToken)).Methods("DELETE")

	return router
}

func initPprofRouter(log logger.Logger, isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(log, isShuttingDown, nil)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
