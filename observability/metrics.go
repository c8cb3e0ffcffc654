package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process-local prometheus registry and the pipeline
// instruments. A nil *Metrics is valid and records nothing, so tests can
// construct components without one.
type Metrics struct {
	registry *prometheus.Registry

	messagesHandled *prometheus.CounterVec
	stageErrors     *prometheus.CounterVec
	composeLatency  prometheus.Histogram
}

func ProvideMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		messagesHandled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthcore_messages_handled_total",
			Help: "Chat messages handled, by channel and outcome.",
		}, []string{"channel", "status"}),
		stageErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthcore_stage_errors_total",
			Help: "Pipeline stage failures absorbed by a degradation path.",
		}, []string{"stage"}),
		composeLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "healthcore_compose_latency_seconds",
			Help:    "End to end latency of answering a chat message.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
	}
}

func (m *Metrics) MessageHandled(channel, status string) {
	if m == nil {
		return
	}
	m.messagesHandled.WithLabelValues(channel, status).Inc()
}

func (m *Metrics) StageError(stage string) {
	if m == nil {
		return
	}
	m.stageErrors.WithLabelValues(stage).Inc()
}

func (m *Metrics) ObserveCompose(d time.Duration) {
	if m == nil {
		return
	}
	m.composeLatency.Observe(d.Seconds())
}

// Handler exposes the registry for the /metrics route.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
