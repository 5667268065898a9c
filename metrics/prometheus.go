/* prometheus.go
 * Contains the Prometheus metrics manager and its recording methods
 */

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values
const (
	ResultAccepted = "accepted"
	ResultIgnored  = "ignored"
)

// Manager owns the pool's Prometheus metrics. A nil *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registerer       prometheus.Registerer
	gatherer         prometheus.Gatherer

	bets            *prometheus.CounterVec
	handicapUpdates *prometheus.CounterVec
	scoreUpdates    prometheus.Counter
	settlements     prometheus.Counter
	seriesDuration  prometheus.Histogram
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry a fresh registry is used, so several managers
// can coexist in one process (tests).
func NewManager(opts ...Option) *Manager {
	registry := prometheus.NewRegistry()
	m := &Manager{
		namespace:        "pool",
		histogramBuckets: prometheus.DefBuckets,
		registerer:       registry,
		gatherer:         registry,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registerer)

	m.bets = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "bets_total",
		Help:      "Total number of bets by outcome (ignored when outside the bet window)",
	}, []string{"result"})

	m.handicapUpdates = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "handicap_updates_total",
		Help:      "Total number of handicap updates by outcome (ignored after the cutoff)",
	}, []string{"result"})

	m.scoreUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "score_updates_total",
		Help:      "Total number of score updates applied",
	})

	m.settlements = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "settlements_total",
		Help:      "Total number of match settlements computed",
	})

	m.seriesDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "series_duration_seconds",
		Help:      "Time taken to build the series of every gambler",
		Buckets:   m.histogramBuckets,
	})
}

// RecordBet counts a bet with its outcome
func (m *Manager) RecordBet(result string) {
	if m == nil {
		return
	}
	m.bets.WithLabelValues(result).Inc()
}

// RecordHandicapUpdate counts a handicap update with its outcome
func (m *Manager) RecordHandicapUpdate(result string) {
	if m == nil {
		return
	}
	m.handicapUpdates.WithLabelValues(result).Inc()
}

func (m *Manager) RecordScoreUpdate() {
	if m == nil {
		return
	}
	m.scoreUpdates.Inc()
}

// RecordSettlements counts n computed settlements
func (m *Manager) RecordSettlements(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.settlements.Add(float64(n))
}

// ObserveSeriesDuration records how long a series run took since start
func (m *Manager) ObserveSeriesDuration(start time.Time) {
	if m == nil {
		return
	}
	m.seriesDuration.Observe(time.Since(start).Seconds())
}

// Handler serves the manager's registry in the Prometheus exposition format
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
