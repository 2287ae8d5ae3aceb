// Package metrics holds the Prometheus collectors for the trip store.
// A nil *Metrics is valid and records nothing, so packages can take one
// unconditionally.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tripstore"

// Metrics groups every collector the store publishes.
type Metrics struct {
	KVOperations  *prometheus.CounterVec
	KVDuration    *prometheus.HistogramVec
	Mutations     *prometheus.CounterVec
	PendingWrites prometheus.Gauge
	Subscribers   prometheus.Gauge
}

// New creates the collectors and registers them on reg.
// It panics if any collector is already registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		KVOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kv_operations_total",
			Help:      "Backing store operations by operation and result.",
		}, []string{"op", "result"}),
		KVDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kv_operation_duration_seconds",
			Help:      "Latency of backing store operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "In-memory mutations by collection and operation.",
		}, []string{"collection", "op"}),
		PendingWrites: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_writes",
			Help:      "Collections whose latest snapshot has not reached the backing store.",
		}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "subscribers",
			Help:      "Active change-event subscribers.",
		}),
	}
	reg.MustRegister(m.KVOperations, m.KVDuration, m.Mutations, m.PendingWrites, m.Subscribers)
	return m
}

// ObserveKV records one backing store call.
func (m *Metrics) ObserveKV(op string, err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.KVOperations.WithLabelValues(op, result).Inc()
	m.KVDuration.WithLabelValues(op).Observe(d.Seconds())
}

// Mutation counts one in-memory mutation.
func (m *Metrics) Mutation(collection, op string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(collection, op).Inc()
}

// SetPending reports how many collections are waiting to be written.
func (m *Metrics) SetPending(n int) {
	if m == nil {
		return
	}
	m.PendingWrites.Set(float64(n))
}

// AddSubscribers adjusts the subscriber gauge by delta.
func (m *Metrics) AddSubscribers(delta int) {
	if m == nil {
		return
	}
	m.Subscribers.Add(float64(delta))
}
