// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/nosh/models"
)

const namespace = "nosh"

// Metrics holds the Prometheus collectors for the service
type Metrics struct {
	gatherer prometheus.Gatherer

	httpDuration  *prometheus.HistogramVec
	quizScored    *prometheus.CounterVec
	quizConf      prometheus.Histogram
	defaultsBuilt *prometheus.CounterVec
	storeErrors   *prometheus.CounterVec
}

var (
	defaultOnce sync.Once
	shared      *Metrics
)

// Default returns the metrics registered with the global Prometheus registry.
// Collectors are created once so repeated calls never double-register.
func Default() *Metrics {
	defaultOnce.Do(func() {
		shared = MustNew(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	})
	return shared
}

// New creates metrics on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return MustNew(reg, reg)
}

// MustNew registers all collectors with reg and panics on conflicts
func MustNew(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		gatherer: gatherer,
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		quizScored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quiz",
			Name:      "scored_total",
			Help:      "Quizzes scored by primary personality type.",
		}, []string{"primary"}),
		quizConf: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "quiz",
			Name:      "confidence",
			Help:      "Confidence of scored quiz results.",
			Buckets:   []float64{0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.95},
		}),
		defaultsBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "smart_defaults",
			Name:      "builds_total",
			Help:      "Smart default builds by outcome.",
		}, []string{"outcome"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "smart_defaults",
			Name:      "store_errors_total",
			Help:      "Counter store failures by operation.",
		}, []string{"op"}),
	}

	reg.MustRegister(m.httpDuration, m.quizScored, m.quizConf, m.defaultsBuilt, m.storeErrors)
	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(d.Seconds())
}

func (m *Metrics) ObserveQuiz(result models.PersonalityScoreResult) {
	if m == nil {
		return
	}
	m.quizScored.WithLabelValues(string(result.Primary)).Inc()
	m.quizConf.Observe(result.Confidence)
}

// ObserveBuild counts a smart defaults build as learned, fallback or degraded
func (m *Metrics) ObserveBuild(hasData, degraded bool) {
	if m == nil {
		return
	}
	outcome := "fallback"
	switch {
	case degraded:
		outcome = "degraded"
	case hasData:
		outcome = "learned"
	}
	m.defaultsBuilt.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveStoreError(op string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(op).Inc()
}
