package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/BangJepp56/ini-dashboard-admin/internal/bootstrap"
	"github.com/BangJepp56/ini-dashboard-admin/internal/config"
	"github.com/BangJepp56/ini-dashboard-admin/internal/worker"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/logger"
)

const healthAddr = ":8081"

func setupHealthCheck(rt *bootstrap.Runtime, appLogger *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if rt.DB != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := rt.DB.PingContext(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	mux.Handle("/metrics", promhttp.HandlerFor(rt.Registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: healthAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error(err, "health check server failed")
		}
	}()
	return srv
}

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	appLogger := logger.NewLogger(cfg.Log.ToLoggerConfig())
	log.Logger = *appLogger.Zerolog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal(err, "failed to initialize runtime")
	}
	defer rt.Close()

	if !rt.HasBroker() {
		appLogger.Warn("messaging.driver is none, notifications will not reach the api process")
	}

	notificationSvc, err := rt.Notifications(nil)
	if err != nil {
		appLogger.Fatal(err, "failed to initialize notifications")
	}
	scheduleSvc := rt.Schedules(notificationSvc)

	health := setupHealthCheck(rt, appLogger)

	transitions := worker.NewTransitionWorker(scheduleSvc, cfg.Transition.ToWorkerConfig(), appLogger)
	transitions.Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := health.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(err, "health check server forced to shutdown")
	}
	notificationSvc.Wait()
	appLogger.Info("worker exited")
}
