package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BangJepp56/ini-dashboard-admin/internal/bootstrap"
	"github.com/BangJepp56/ini-dashboard-admin/internal/config"
	authHandler "github.com/BangJepp56/ini-dashboard-admin/internal/handler/auth"
	dashboardHandler "github.com/BangJepp56/ini-dashboard-admin/internal/handler/dashboard"
	doctorHandler "github.com/BangJepp56/ini-dashboard-admin/internal/handler/doctor"
	followUpHandler "github.com/BangJepp56/ini-dashboard-admin/internal/handler/followup"
	healthHandler "github.com/BangJepp56/ini-dashboard-admin/internal/handler/health"
	notificationHandler "github.com/BangJepp56/ini-dashboard-admin/internal/handler/notification"
	patientHandler "github.com/BangJepp56/ini-dashboard-admin/internal/handler/patient"
	prometheusHandler "github.com/BangJepp56/ini-dashboard-admin/internal/handler/prometheus"
	scheduleHandler "github.com/BangJepp56/ini-dashboard-admin/internal/handler/schedule"
	"github.com/BangJepp56/ini-dashboard-admin/internal/middleware"
	"github.com/BangJepp56/ini-dashboard-admin/internal/router"
	dashboardService "github.com/BangJepp56/ini-dashboard-admin/internal/service/dashboard"
	doctorService "github.com/BangJepp56/ini-dashboard-admin/internal/service/doctor"
	followUpService "github.com/BangJepp56/ini-dashboard-admin/internal/service/followup"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/notification"
	patientService "github.com/BangJepp56/ini-dashboard-admin/internal/service/patient"
	"github.com/BangJepp56/ini-dashboard-admin/internal/worker"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/logger"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/messaging"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/realtime"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
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

	if err := middleware.RegisterValidators(middleware.DefaultValidationConfig()); err != nil {
		appLogger.Fatal(err, "failed to register validators")
	}

	hub := realtime.NewHub(appLogger.Zerolog())
	go hub.Run(ctx)

	// With a broker the hub is fed from the subscription, so a standalone
	// worker's notifications reach the dashboard too.
	var pusher notification.Pusher
	if rt.HasBroker() {
		go relayNotifications(ctx, rt.Broker, cfg.Messaging.Channel, hub, appLogger)
	} else {
		pusher = hub
	}

	notificationSvc, err := rt.Notifications(pusher)
	if err != nil {
		appLogger.Fatal(err, "failed to initialize notifications")
	}
	exportSvc, err := rt.Exports(ctx)
	if err != nil {
		appLogger.Fatal(err, "failed to initialize export archive")
	}

	// Initialize services
	scheduleSvc := rt.Schedules(notificationSvc)
	doctorSvc := doctorService.NewService(rt.Store.Doctors, rt.Now)
	patientSvc := patientService.NewService(rt.Store.Patients, rt.Now)
	followUpSvc := followUpService.NewService(rt.Store.FollowUps, rt.Store.Patients, rt.Now)
	dashboardSvc := dashboardService.NewService(patientSvc, rt.Store.Doctors, rt.Store.Schedules)
	authSvc := rt.Auth()

	if cfg.Transition.Embedded {
		transitions := worker.NewTransitionWorker(scheduleSvc, cfg.Transition.ToWorkerConfig(), appLogger)
		go transitions.Start(ctx)
	}

	// Initialize handlers
	var health *healthHandler.Handler
	if rt.DB != nil {
		health = healthHandler.NewHandler(rt.DB)
	} else {
		health = healthHandler.NewHandler(nil)
	}
	metricsH := prometheusHandler.New(rt.Registry, cfg.Server.MetricsPrefix)
	authH := authHandler.NewHandler(authSvc)

	var rateLimit *middleware.RateLimiterConfig
	if cfg.RateLimit.Enabled {
		rateLimit = &middleware.RateLimiterConfig{Rate: cfg.RateLimitRate(), Burst: cfg.RateLimit.Burst}
	}

	gin.SetMode(gin.ReleaseMode)
	r := router.NewRouter(
		router.RouterConfig{
			Logger:    appLogger.Zerolog(),
			CORS:      middleware.DefaultCORSConfig(cfg.CORS.AllowedOrigins...),
			Security:  middleware.DefaultSecurityConfig(),
			Timeout:   middleware.TimeoutConfig{Duration: cfg.RequestTimeout()},
			SizeLimit: middleware.DefaultSizeLimitConfig(),
			RateLimit: rateLimit,
		},
		middleware.NewAuthMiddleware(rt.JWT()),
		health,
		metricsH,
		[]router.PublicHandler{authH},
		authH,
		dashboardHandler.NewHandler(dashboardSvc),
		doctorHandler.NewHandler(doctorSvc),
		scheduleHandler.NewHandler(scheduleSvc),
		patientHandler.NewHandler(patientSvc, followUpSvc, exportSvc),
		followUpHandler.NewHandler(followUpSvc, exportSvc),
		notificationHandler.NewHandler(notificationSvc, hub),
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		appLogger.Info("server listening", "addr", srv.Addr, "storage", cfg.Storage.Driver, "messaging", cfg.Messaging.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal(err, "failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	appLogger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(err, "server forced to shutdown")
	}
	notificationSvc.Wait()

	appLogger.Info("server exited properly")
}

// relayNotifications pushes every broker message to the connected dashboards.
func relayNotifications(ctx context.Context, broker messaging.Broker, channel string, hub *realtime.Hub, appLogger *logger.Logger) {
	err := messaging.Consume(ctx, broker, channel, func(msg messaging.Message) error {
		payload, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to encode notification: %w", err)
		}
		if !hub.Broadcast(payload) {
			return fmt.Errorf("stream queue full")
		}
		return nil
	}, func(err error) {
		appLogger.Error(err, "notification relay")
	})
	if err != nil {
		appLogger.Error(err, "notification relay stopped")
	}
}
