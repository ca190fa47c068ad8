package main

import (
	"context"
	"errors"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	grpc_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/in/grpc"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/in/rest"
	memory_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/out/memory"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/out/sqlstore"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-bank-ledger/internal/config"
	"github.com/JoeShih716/go-bank-ledger/pkg/database"
	"github.com/JoeShih716/go-bank-ledger/pkg/logger"
	"github.com/JoeShih716/go-bank-ledger/pkg/wal"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. 載入設定
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. 初始化 Logger
	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zlog.Sync()

	// 3. 初始化 Ledger (Driven Adapter)
	ledger, closeLedger, err := openLedger(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to open ledger", zap.String("backend", cfg.Ledger.Backend), zap.Error(err))
	}
	defer closeLedger()
	zlog.Info("ledger ready", zap.String("backend", cfg.Ledger.Backend))

	// 4. 初始化 UseCase
	coreUseCase := usecase.NewCoreUseCase(ledger, zlog)

	// 5. 啟動 gRPC Server
	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		zlog.Fatal("failed to listen", zap.String("addr", cfg.GRPC.Addr), zap.Error(err))
	}
	s := grpc.NewServer(grpc.UnaryInterceptor(grpc_adapter.LoggingInterceptor(zlog)))
	grpc_adapter.RegisterAccountLedgerServer(s, grpc_adapter.NewGrpcServer(coreUseCase))

	go func() {
		zlog.Info("starting gRPC server", zap.String("addr", cfg.GRPC.Addr))
		if err := s.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			zlog.Fatal("gRPC server failed", zap.Error(err))
		}
	}()

	// 6. 啟動 HTTP Server
	app := rest.NewApp(coreUseCase)
	go func() {
		zlog.Info("starting HTTP server", zap.String("addr", cfg.HTTP.Addr))
		if err := app.Listen(cfg.HTTP.Addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			zlog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		zlog.Warn("HTTP shutdown", zap.Error(err))
	}
	s.GracefulStop()
	zlog.Info("server exited")
}

// openLedger 依設定建立 Ledger，回傳的 close 需在程式結束時呼叫
func openLedger(cfg config.Config, zlog *zap.Logger) (usecase.Ledger, func(), error) {
	switch cfg.Ledger.Backend {
	case config.BackendMemory:
		walFile, err := wal.Open(cfg.Ledger.WALPath)
		if err != nil {
			return nil, nil, err
		}
		mutexLedger, err := memory_adapter.NewMutexLedger(walFile)
		if err != nil {
			_ = walFile.Close()
			return nil, nil, err
		}
		return mutexLedger, func() {
			if err := walFile.Close(); err != nil {
				zlog.Warn("close wal", zap.Error(err))
			}
		}, nil
	default:
		dbClient, err := database.NewClient(cfg.Database, zlog)
		if err != nil {
			return nil, nil, err
		}
		sqlLedger := sqlstore.NewLedger(dbClient)
		if cfg.Database.AutoMigrate {
			if err := sqlLedger.Migrate(context.Background()); err != nil {
				_ = dbClient.Close()
				return nil, nil, err
			}
		}
		return sqlLedger, func() {
			if err := dbClient.Close(); err != nil {
				zlog.Warn("close database", zap.Error(err))
			}
		}, nil
	}
}
