package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/staywise/booking_engine/internal/app"
	"github.com/staywise/booking_engine/internal/config"
	"github.com/staywise/booking_engine/internal/handler"
	"github.com/staywise/booking_engine/internal/repository"
	"github.com/staywise/booking_engine/internal/repository/base"
	"github.com/staywise/booking_engine/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	// Применяем миграции при старте
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Инициализируем репозитории
	txRunner := base.NewTxRunner(pool, logger)
	roomRepo := repository.NewRoomRepository(pool)
	propertyRepo := repository.NewPropertyRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	// Инициализируем сервисы
	bookingService := service.NewBookingService(txRunner, roomRepo, propertyRepo, bookingRepo, cfg.BreakfastRate, logger)
	statisticsService := service.NewStatisticsService(bookingRepo, logger)

	// Создаем Handler и регистрируем маршруты
	h := handler.NewHandler(bookingService, statisticsService)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	h.RegisterRoutes(router)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("Starting booking engine",
			zap.String("environment", cfg.Environment),
			zap.String("addr", cfg.HTTPAddr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	// Даём активным запросам время завершиться
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
