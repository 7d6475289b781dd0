package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tempizhere/golinkup/internal/app"
	"github.com/tempizhere/golinkup/internal/config"
	appgrpc "github.com/tempizhere/golinkup/internal/grpc"
	"github.com/tempizhere/golinkup/internal/grpc/proto"
	"github.com/tempizhere/golinkup/internal/log"
	"github.com/tempizhere/golinkup/internal/repository"
	"github.com/tempizhere/golinkup/internal/service"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

func main() {
	logger := log.NewLogger()
	defer logger.Sync()

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Сконфигурированное, но недоступное хранилище - фатальная ошибка:
	// сервис не стартует без рабочего подключения
	db, err := app.NewDB(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if db != nil {
		defer db.Close()
	}

	var users repository.UserRepository
	var links repository.LinkRepository
	if db != nil {
		repo, err := repository.NewPostgresRepository(db, logger)
		if err != nil {
			logger.Fatal("Failed to create repository", zap.Error(err))
		}
		users, links = repo, repo
		logger.Info("Using PostgreSQL storage")
	} else {
		repo := repository.NewMemoryRepository()
		users, links = repo, repo
		logger.Info("Using in-memory storage")
	}

	auth := service.NewAuthService(users, cfg.JWTSecret, cfg.CookieTTL)
	svc := service.NewLinkService(links, cfg.BaseURL)

	appInstance := app.NewApp(svc, auth, db, int(cfg.CookieTTL.Seconds()))
	router := app.NewRouter(appInstance, auth, cfg.TrustedSubnet, logger)

	httpServer := &http.Server{
		Addr:    cfg.RunAddr,
		Handler: router,
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			appgrpc.LoggingInterceptor(logger),
			appgrpc.AuthInterceptor(auth, logger),
		),
	)
	proto.RegisterLinksServiceServer(grpcServer, appgrpc.NewServer(svc, auth, db, logger))

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", cfg.RunAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	go func() {
		listener, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			logger.Fatal("Failed to listen gRPC address", zap.Error(err))
		}
		logger.Info("Starting gRPC server", zap.String("addr", cfg.GRPCAddr))
		if err := grpcServer.Serve(listener); err != nil {
			logger.Fatal("gRPC server failed", zap.Error(err))
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
}
