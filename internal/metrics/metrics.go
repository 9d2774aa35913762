package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ticksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barstatus",
			Name:      "reconcile_ticks_total",
			Help:      "Count of reconciliation passes executed.",
		},
	)

	statusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barstatus",
			Name:      "status_changes_total",
			Help:      "Count of effective status changes by new status.",
		},
		[]string{"status"},
	)

	transitionsFired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barstatus",
			Name:      "auto_transitions_fired_total",
			Help:      "Count of delayed transitions fired by the reconciler.",
		},
	)

	invalidSchedules = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "barstatus",
			Name:      "invalid_schedules",
			Help:      "Number of bars flagged with a malformed schedule.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(ticksTotal, statusChanges, transitionsFired, invalidSchedules)
	})
}

func IncTick() {
	ticksTotal.Inc()
}

func IncStatusChange(status string) {
	statusChanges.WithLabelValues(status).Inc()
}

func IncTransitionFired() {
	transitionsFired.Inc()
}

func SetInvalidSchedules(n int) {
	invalidSchedules.Set(float64(n))
}
