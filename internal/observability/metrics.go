// Package observability provides Prometheus metrics for message dispatch.
package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TransportMetrics tracks send outcomes per transport.
type TransportMetrics struct {
	SendTotal    *prometheus.CounterVec
	SendDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewTransportMetrics creates and registers transport metrics on the given
// Prometheus registry.
func NewTransportMetrics(registry *prometheus.Registry) (*TransportMetrics, error) {
	m := &TransportMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register transport metrics: %w", err)
	}
	return m, nil
}

func (m *TransportMetrics) initMetrics() {
	m.SendTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courier_send_total",
			Help: "Total number of send attempts partitioned by transport and result.",
		},
		[]string{"transport", "result"},
	)
	m.SendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "courier_send_duration_seconds",
			Help:    "Time taken to deliver a message to the provider.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		},
		[]string{"transport"},
	)
}

// RecordSend records the outcome of a single send attempt.
func (m *TransportMetrics) RecordSend(transport string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.SendTotal.WithLabelValues(transport, result).Inc()
	m.SendDuration.WithLabelValues(transport).Observe(duration.Seconds())
}

// Describe implements prometheus.Collector.
func (m *TransportMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.SendTotal.Describe(ch)
	m.SendDuration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *TransportMetrics) Collect(ch chan<- prometheus.Metric) {
	m.SendTotal.Collect(ch)
	m.SendDuration.Collect(ch)
}
