package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/clock"
	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/logger"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/router"
	"github.com/iliyamo/fyyur/internal/seed"
	"github.com/iliyamo/fyyur/internal/service"
	"github.com/iliyamo/fyyur/migrations"
)

func main() {
	cfg, err := config.Load() // Load .env and environment config
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.New(cfg.Production(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, zl *zap.Logger) error {
	store, ping, closeStore, err := openStore(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.SeedOnStart {
		res, err := seed.Load(ctx, store)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		zl.Info("seed data loaded", zap.Int("venues", res.Venues), zap.Int("artists", res.Artists), zap.Int("shows", res.Shows))
	}

	var events handler.ShowEvents
	consumerDone := make(chan struct{})
	if cfg.RabbitMQURL != "" {
		events = service.NewShowPublisher(cfg.RabbitMQURL, zl)
		go func() {
			defer close(consumerDone)
			if err := queue.StartShowConsumer(ctx, cfg.RabbitMQURL, zl); err != nil && !errors.Is(err, context.Canceled) {
				zl.Error("show consumer stopped", zap.Error(err))
			}
		}()
	} else {
		close(consumerDone)
		zl.Info("RABBITMQ_URL not set, show events disabled")
	}

	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		zl.Info("redis unavailable, rate limiting disabled")
	} else {
		defer func() { _ = rdb.Close() }()
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(zl))

	h := handler.NewHandler(store, clock.System(), events, zl)
	router.RegisterRoutes(e, ping)
	router.RegisterCatalog(e, h, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, zl))

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("store", cfg.Store))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	err = e.Shutdown(shutdownCtx)
	if derr := h.Drain(shutdownCtx); derr != nil {
		zl.Warn("pending show events dropped", zap.Error(derr))
	}
	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		zl.Warn("show consumer did not stop in time")
	}
	return err
}

// openStore builds the configured store.  The returned ping checks the
// database and is nil for the in-memory store.
func openStore(ctx context.Context, cfg config.Config, zl *zap.Logger) (repository.EntityStore, func(context.Context) error, func(), error) {
	if cfg.Store == config.StoreMemory {
		zl.Warn("using in-memory store, data is lost on exit")
		return repository.NewMemory(), nil, func() {}, nil
	}

	db, err := database.Open(ctx, cfg.DatabaseURL, database.Options{})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := migrations.Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("migrate: %w", err)
	}
	zl.Info("database ready")
	closeDB := func() {
		if err := db.Close(); err != nil {
			zl.Warn("close database", zap.Error(err))
		}
	}
	st := repository.NewStore(db)
	return st, st.DB().PingContext, closeDB, nil
}
