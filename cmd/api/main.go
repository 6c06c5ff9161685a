package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"google.golang.org/api/option"

	"github.com/feelio/feelio-backend/config"
	"github.com/feelio/feelio-backend/internal/auth"
	"github.com/feelio/feelio-backend/internal/auth/provider"
	authsvc "github.com/feelio/feelio-backend/internal/auth/service"
	"github.com/feelio/feelio-backend/internal/bootstrap"
	"github.com/feelio/feelio-backend/internal/logging"
	"github.com/feelio/feelio-backend/internal/metrics"
	moodsvc "github.com/feelio/feelio-backend/internal/moods/service"
	profilesvc "github.com/feelio/feelio-backend/internal/profiles/service"
	"github.com/feelio/feelio-backend/internal/realtime"
	"github.com/feelio/feelio-backend/internal/sweeper"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.Setup(cfg.App.Environment, cfg.App.LogLevel)
	bootstrap.SetGinMode(&cfg.App)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fb, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		return err
	}

	stores, err := bootstrap.OpenStores(ctx, cfg, fb.DB)
	if err != nil {
		return err
	}
	defer stores.Close()

	var broker realtime.Broker = realtime.NewMemoryBroker()
	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		broker = realtime.NewRedisBroker(rdb)
		stores.Checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	accounts, err := provider.New(ctx, fb.Auth, option.WithAPIKey(cfg.Firebase.APIKey))
	if err != nil {
		return err
	}

	m := metrics.New()
	authService := authsvc.NewAuthService(accounts, stores.Profiles, stores.Moods, broker)
	profileService := profilesvc.NewProfileService(stores.Profiles, broker)
	moodService := moodsvc.NewMoodService(stores.Moods, broker, cfg.App.Location(), moodsvc.WithMetrics(m))

	scheduler := sweeper.NewScheduler(authService, m, logger)
	if cfg.App.SweepSchedule != "" {
		if err := scheduler.Start(cfg.App.SweepSchedule); err != nil {
			return err
		}
	}

	streamsDone := make(chan struct{})
	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:   "feelio-api",
		Version:       cfg.App.Version,
		Store:         cfg.App.StoreDriver,
		CORSOrigins:   cfg.Server.CORSOrigins,
		AuthRateLimit: cfg.Server.AuthRateLimit,
		AuthRateBurst: cfg.Server.AuthRateBurst,
		Logger:        logger,
		Metrics:       m,
		Checks:        stores.Checks,
		Verifier:      fb.Auth,
		Broker:        broker,
		StreamsDone:   streamsDone,
		Auth:          authService,
		Profiles:      profileService,
		Moods:         moodService,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(func() { close(streamsDone) })

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "store", cfg.App.StoreDriver, "env", cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	scheduler.Stop(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}
