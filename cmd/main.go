package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nest-Commerce-Microservices/products-ms/internal/repository"
	"github.com/Nest-Commerce-Microservices/products-ms/internal/service"
	"github.com/Nest-Commerce-Microservices/products-ms/internal/transport/grpc"
	"github.com/Nest-Commerce-Microservices/products-ms/internal/transport/http"
	"github.com/Nest-Commerce-Microservices/products-ms/internal/transport/http/handler"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/config"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/db"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/metrics"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/rpcerr"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/utils"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	googleGrpc "google.golang.org/grpc"
)

func main() {
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logger())
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	tp, err := utils.InitTracer(ctx, utils.TracerConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.Endpoint,
		Env:         cfg.Env,
	})
	if err != nil {
		logger.Fatal("Error init tracer", zap.Error(err))
	}

	pool, err := db.NewPostgresDB(ctx, cfg.Postgres.URL, cfg.Postgres.Pool())
	if err != nil {
		logger.Fatal("Error creating postgres pool", zap.Error(err))
	}

	if cfg.Postgres.MigrationsPath != "" {
		if err := db.Migrate(cfg.Postgres.URL, cfg.Postgres.MigrationsPath); err != nil {
			logger.Fatal("Error applying migrations", zap.Error(err))
		}
		logger.Info("Migrations applied", zap.String("path", cfg.Postgres.MigrationsPath))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	translator := rpcerr.NewTranslator(rpcerr.DefaultCodes, logger)

	productRepository := repository.NewProductRepository(pool, logger)
	productService := service.NewProductService(productRepository, translator, logger)
	cachedProductService := service.NewCachedProductService(productService, rdb, logger)

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPC.Port)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logger.Fatal("Error listening for gRPC", zap.String("addr", grpcAddr), zap.Error(err))
	}

	reg := metrics.NewRegistry()

	s := googleGrpc.NewServer(
		googleGrpc.StatsHandler(otelgrpc.NewServerHandler()),
		googleGrpc.ConnectionTimeout(cfg.GRPC.Timeout),
		googleGrpc.ChainUnaryInterceptor(
			grpc_prometheus.UnaryServerInterceptor,
			grpc.ErrorInterceptor(translator, logger),
		),
	)
	grpc.RegisterProductServiceServer(s, grpc.NewProductHandler(cachedProductService, logger))

	grpc_prometheus.Register(s)

	go func() {
		logger.Info("gRPC server listening", zap.String("addr", grpcAddr))
		if err := s.Serve(lis); err != nil {
			logger.Fatal("Error serving gRPC", zap.Error(err))
		}
	}()

	app := http.NewApp(translator, logger, cfg.Limiter)
	http.RegisterRoutes(app, &http.Handlers{
		Product: handler.NewProductHandler(cachedProductService, logger, cfg.HTTP.Timeout),
		Health: handler.NewHealthHandler(map[string]handler.Check{
			"postgres": pool.Ping,
			"redis": func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
		}, logger),
		Metrics: metrics.Handler(reg),
	})

	httpAddr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpAddr))
		if err := app.Listen(httpAddr); err != nil {
			logger.Fatal("Error serving HTTP", zap.Error(err))
		}
	}()

	logger.Info("products service started", zap.String("env", cfg.Env))

	<-ctx.Done()

	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Error shutting down HTTP server", zap.Error(err))
	} else {
		logger.Info("Stopped HTTP server successfully")
	}

	s.GracefulStop()
	logger.Info("gRPC server stopped")

	if err := rdb.Close(); err != nil {
		logger.Error("Error closing redis client", zap.Error(err))
	}

	pool.Close()
	logger.Info("Closed db pool successfully")

	if err := tp.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error stopping telemetry", zap.Error(err))
	} else {
		logger.Info("Telemetry closed correctly")
	}
}
