// Package bootstrap assembles the runtime shared by the api, worker and
// operator binaries.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/crypto/bcrypt"

	"github.com/BangJepp56/ini-dashboard-admin/internal/config"
	"github.com/BangJepp56/ini-dashboard-admin/internal/email"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository/cached"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository/memory"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository/postgres"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/auth"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/export"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/notification"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/schedule"
	jwtauth "github.com/BangJepp56/ini-dashboard-admin/pkg/auth"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/logger"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/messaging"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/messaging/kafka"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/messaging/redis"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/metrics"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/security"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/storage"
)

type Runtime struct {
	Config   *config.Config
	Logger   *logger.Logger
	Location *time.Location
	// Now returns the current time in the clinic timezone.
	Now      func() time.Time
	DB       *sqlx.DB
	Store    *repository.Store
	Broker   messaging.Broker
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
}

// New opens storage and the broker selected by cfg. DB stays nil for memory
// storage. Callers must Close the runtime.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Runtime, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	rt := &Runtime{
		Config:   cfg,
		Logger:   log,
		Location: loc,
		Now:      func() time.Time { return time.Now().In(loc) },
		Registry: prometheus.NewRegistry(),
	}
	rt.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rt.Metrics = metrics.NewMetrics(rt.Registry, cfg.Server.MetricsPrefix)

	if err := rt.openStore(ctx); err != nil {
		return nil, err
	}

	broker, err := newBroker(cfg, log)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.Broker = broker

	return rt, nil
}

func (rt *Runtime) openStore(ctx context.Context) error {
	cfg := rt.Config
	var store *repository.Store

	switch cfg.Storage.Driver {
	case "memory":
		store = memory.NewStore()
	default:
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			return err
		}
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				db.Close()
				return err
			}
			rt.Logger.Info("database schema applied")
		}
		rt.DB = db
		store = postgres.NewStore(db)
	}

	store.Doctors = cached.NewDoctorRepository(store.Doctors, cfg.Cache.DoctorTTL, cfg.Cache.CleanupInterval)
	rt.Store = store
	return nil
}

func newBroker(cfg *config.Config, log *logger.Logger) (messaging.Broker, error) {
	switch cfg.Messaging.Driver {
	case "redis":
		broker, err := redis.NewRedisBroker(cfg.Redis.ToBrokerConfig(), log.Zerolog())
		if err != nil {
			return nil, fmt.Errorf("failed to create redis broker: %w", err)
		}
		return broker, nil
	case "kafka":
		broker, err := kafka.NewKafkaBroker(cfg.Kafka.ToBrokerConfig(), log.Zerolog())
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka broker: %w", err)
		}
		return broker, nil
	default:
		return messaging.Nop(), nil
	}
}

// HasBroker reports whether notifications leave the process.
func (rt *Runtime) HasBroker() bool {
	return rt.Config.Messaging.Driver != "none"
}

func (rt *Runtime) Close() error {
	var firstErr error
	if rt.Broker != nil {
		if err := rt.Broker.Close(); err != nil {
			firstErr = err
		}
	}
	if rt.DB != nil {
		if err := rt.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Mailer returns nil when email delivery is disabled.
func (rt *Runtime) Mailer() (email.Service, error) {
	c := rt.Config.Email
	if !c.Enabled {
		return nil, nil
	}
	return email.NewSMTPService(email.Config{
		Host:       c.Host,
		Port:       c.Port,
		Username:   c.Username,
		Password:   c.Password,
		From:       c.From,
		Recipients: c.Recipients,
	})
}

// Archiver returns nil when export archiving is disabled.
func (rt *Runtime) Archiver(ctx context.Context) (storage.Archiver, error) {
	c := rt.Config.Export.Archive
	if !c.Enabled {
		return nil, nil
	}
	archiver, err := storage.NewS3Archiver(ctx, c.ToStorageConfig())
	if err != nil {
		return nil, err
	}
	return archiver, nil
}

// Notifications builds the notification service. pusher may be nil.
func (rt *Runtime) Notifications(pusher notification.Pusher) (*notification.Service, error) {
	mailer, err := rt.Mailer()
	if err != nil {
		return nil, err
	}
	return notification.NewService(rt.Store.Notifications, notification.Options{
		Broker:  rt.Broker,
		Channel: rt.Config.Messaging.Channel,
		Pusher:  pusher,
		Mailer:  mailer,
		Metrics: rt.Metrics,
		Logger:  rt.Logger.Component("notification"),
		Now:     rt.Now,
	}), nil
}

func (rt *Runtime) Schedules(notifier schedule.Notifier) *schedule.Service {
	return schedule.NewService(rt.Store.Schedules, rt.Store.Doctors, notifier, schedule.Options{
		Metrics:  rt.Metrics,
		Logger:   rt.Logger.Component("schedule"),
		Now:      rt.Now,
		Location: rt.Location,
	})
}

func (rt *Runtime) Exports(ctx context.Context) (*export.Service, error) {
	archiver, err := rt.Archiver(ctx)
	if err != nil {
		return nil, err
	}
	return export.NewService(export.Options{
		Archiver: archiver,
		Metrics:  rt.Metrics,
		Logger:   rt.Logger.Component("export"),
		Now:      rt.Now,
	}), nil
}

func (rt *Runtime) JWT() jwtauth.JWTService {
	return jwtauth.NewJWTService(rt.Config.JWT.Secret, rt.Config.TokenExpiry(), rt.Now)
}

func (rt *Runtime) Auth() *auth.Service {
	return auth.NewService(rt.Store.Admins, rt.JWT(), security.NewBcryptHasher(bcrypt.DefaultCost), rt.Logger.Component("auth"), rt.Now)
}
