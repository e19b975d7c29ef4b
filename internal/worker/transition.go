package worker

import (
	"context"
	"errors"
	"time"

	"github.com/BangJepp56/ini-dashboard-admin/internal/service/schedule"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/logger"
)

const DefaultInterval = time.Minute

type Config struct {
	Interval time.Duration
}

// TransitionRunner applies due schedule transitions once.
type TransitionRunner interface {
	RunTransitions(ctx context.Context) (int, error)
}

// TransitionWorker drives the schedule transition pass on a ticker.
type TransitionWorker struct {
	runner   TransitionRunner
	interval time.Duration
	logger   *logger.Logger
}

func NewTransitionWorker(runner TransitionRunner, cfg Config, log *logger.Logger) *TransitionWorker {
	if cfg.Interval <= 0 || cfg.Interval > DefaultInterval {
		cfg.Interval = DefaultInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	return &TransitionWorker{
		runner:   runner,
		interval: cfg.Interval,
		logger:   log.WithFields(map[string]interface{}{"worker": "schedule_transition"}),
	}
}

// Start runs one pass immediately and then one per tick until ctx is done.
func (w *TransitionWorker) Start(ctx context.Context) {
	w.logger.Info("transition worker started", "interval", w.interval.String())
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("transition worker stopped")
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

func (w *TransitionWorker) run(ctx context.Context) {
	applied, err := w.runner.RunTransitions(ctx)
	switch {
	case errors.Is(err, schedule.ErrPassInFlight):
		w.logger.Debug("previous transition pass still running, skipping tick")
	case errors.Is(err, context.Canceled):
	case err != nil:
		w.logger.Error(err, "transition pass failed")
	case applied > 0:
		w.logger.Info("transition pass applied changes", "applied", applied)
	}
}
