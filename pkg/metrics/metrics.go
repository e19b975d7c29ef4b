package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Schedule transition metrics
	Transitions        *prometheus.CounterVec
	TransitionErrors   *prometheus.CounterVec
	TransitionDuration prometheus.Histogram
	TransitionSkipped  prometheus.Counter
	OrphanedSchedules  prometheus.Counter

	// Notification metrics
	Notifications      *prometheus.CounterVec
	NotificationFanout *prometheus.CounterVec

	// Export metrics
	Exports *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics on reg.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "transitions_total",
			Help:      "Schedule status transitions applied, by rule",
		}, []string{"rule"}),
		TransitionErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "transition_errors_total",
			Help:      "Failed writes during a transition cascade, by step",
		}, []string{"step"}),
		TransitionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "transition_pass_duration_seconds",
			Help:      "Time spent evaluating all schedules in one pass",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		TransitionSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "transition_ticks_skipped_total",
			Help:      "Transition triggers skipped because a pass was still running",
		}),
		OrphanedSchedules: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "orphans_deleted_total",
			Help:      "Schedules deleted because their doctor no longer exists",
		}),
		Notifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "notifications_total",
			Help:      "Notifications appended, by type",
		}, []string{"type"}),
		NotificationFanout: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "fanout_errors_total",
			Help:      "Failed notification deliveries, by sink",
		}, []string{"sink"}),
		Exports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "exports_total",
			Help:      "Spreadsheets generated, by kind",
		}, []string{"kind"}),
	}
}

// New registers on a private registry. Tests build one per case without
// colliding on the default registerer.
func New(namespace string) *Metrics {
	return NewMetrics(prometheus.NewRegistry(), namespace)
}
