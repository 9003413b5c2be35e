// Package metrics holds the Prometheus collectors for price ingestion and alerting.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stock_sentinel"

// Metrics is the collector set. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	QuoteFetchesTotal     *prometheus.CounterVec
	QuotesIngestedTotal   *prometheus.CounterVec
	AlertsTriggeredTotal  *prometheus.CounterVec
	RefreshCycleDuration  prometheus.Histogram
	RefreshCycleSymbols   prometheus.Gauge
	RefreshSymbolFailures *prometheus.CounterVec
	FeedConnectionsTotal  *prometheus.CounterVec
	FeedMessagesTotal     *prometheus.CounterVec
	NotificationsTotal    *prometheus.CounterVec
	QuotesServedTotal     *prometheus.CounterVec
}

// New creates and registers every collector on a private registry, together
// with the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		QuoteFetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_fetches_total",
			Help:      "Quote source calls by result code",
		}, []string{"result"}),
		QuotesIngestedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_ingested_total",
			Help:      "Quotes written to the price cache by source and result",
		}, []string{"source", "result"}),
		AlertsTriggeredTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_triggered_total",
			Help:      "Alerts flipped to triggered by direction",
		}, []string{"direction"}),
		RefreshCycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of one refresh cycle",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		RefreshCycleSymbols: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "active_symbols",
			Help:      "Size of the active symbol set in the last cycle",
		}),
		RefreshSymbolFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "symbol_failures_total",
			Help:      "Per-symbol refresh failures by error code",
		}, []string{"code"}),
		FeedConnectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "connections_total",
			Help:      "Push feed connection attempts by outcome",
		}, []string{"outcome"}),
		FeedMessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "messages_total",
			Help:      "Push feed frames by result",
		}, []string{"result"}),
		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Alert notifications by result",
		}, []string{"result"}),
		QuotesServedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_served_total",
			Help:      "Serving path answers by origin",
		}, []string{"origin"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.QuoteFetchesTotal,
		m.QuotesIngestedTotal,
		m.AlertsTriggeredTotal,
		m.RefreshCycleDuration,
		m.RefreshCycleSymbols,
		m.RefreshSymbolFailures,
		m.FeedConnectionsTotal,
		m.FeedMessagesTotal,
		m.NotificationsTotal,
		m.QuotesServedTotal,
	)

	return m
}

// Registry returns the registry backing Handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RecordFetch(result string) {
	if m == nil {
		return
	}
	m.QuoteFetchesTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordIngest(source, result string) {
	if m == nil {
		return
	}
	m.QuotesIngestedTotal.WithLabelValues(source, result).Inc()
}

func (m *Metrics) RecordTriggered(direction string) {
	if m == nil {
		return
	}
	m.AlertsTriggeredTotal.WithLabelValues(direction).Inc()
}

func (m *Metrics) RecordCycle(took time.Duration, symbols int) {
	if m == nil {
		return
	}
	m.RefreshCycleDuration.Observe(took.Seconds())
	m.RefreshCycleSymbols.Set(float64(symbols))
}

func (m *Metrics) RecordSymbolFailure(code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "unknown"
	}
	m.RefreshSymbolFailures.WithLabelValues(code).Inc()
}

func (m *Metrics) RecordFeedConnection(outcome string) {
	if m == nil {
		return
	}
	m.FeedConnectionsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordFeedMessage(result string) {
	if m == nil {
		return
	}
	m.FeedMessagesTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordNotification(result string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordServed(origin string) {
	if m == nil {
		return
	}
	m.QuotesServedTotal.WithLabelValues(origin).Inc()
}
