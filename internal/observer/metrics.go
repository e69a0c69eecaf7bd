package observer

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	METRICS_SUBSYSTEM = "observed_mutations"

	OUTCOME_ATTEMPTED = "attempted"
	OUTCOME_SUCCEEDED = "succeeded"
	OUTCOME_FAILED    = "failed"
)

// Metrics holds the counters shared by the MetricsObserver instances created from it.
type Metrics struct {
	Mutations *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them on reg (if not nil).
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	mutations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: METRICS_SUBSYSTEM,
			Name:      "total",
			Help:      "Number of observed mutations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	if reg != nil {
		if err := reg.Register(mutations); err != nil {
			return nil, err
		}
	}

	return &Metrics{Mutations: mutations}, nil
}

// MetricsObserver counts the notifications it receives, it never fails.
type MetricsObserver[T any] struct {
	attempted prometheus.Counter
	succeeded prometheus.Counter
	failed    prometheus.Counter
}

func NewMetricsObserver[T any](metrics *Metrics, operation string) *MetricsObserver[T] {
	return &MetricsObserver[T]{
		attempted: metrics.Mutations.WithLabelValues(operation, OUTCOME_ATTEMPTED),
		succeeded: metrics.Mutations.WithLabelValues(operation, OUTCOME_SUCCEEDED),
		failed:    metrics.Mutations.WithLabelValues(operation, OUTCOME_FAILED),
	}
}

func (o *MetricsObserver[T]) HandleBefore(value T) error {
	o.attempted.Inc()
	return nil
}

func (o *MetricsObserver[T]) HandleAfterSuccess(value T) error {
	o.succeeded.Inc()
	return nil
}

func (o *MetricsObserver[T]) HandleAfterFailure(value T, cause error) error {
	o.failed.Inc()
	return nil
}
