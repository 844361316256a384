// Package metrics exposes Prometheus instrumentation for the LectureBot API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lecturebot"

// Outcome labels for resolutions
const (
	OutcomeDirect  = "direct"
	OutcomeClarify = "clarify"
	OutcomeEmpty   = "empty"
)

// Metrics holds the collectors registered on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	nextLookups *prometheus.CounterVec
	resolutions *prometheus.CounterVec
	occurrences prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		nextLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "next_lookups_total",
			Help:      "Next-lecture lookups by whether a lecture was found.",
		}, []string{"result"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Query resolutions by outcome.",
		}, []string{"outcome"}),
		occurrences: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "schedule_occurrences",
			Help:      "Occurrences in the compiled timetable.",
		}),
	}

	m.Registry.MustRegister(
		m.requests, m.duration, m.nextLookups, m.resolutions, m.occurrences,
		collectors.NewGoCollector(),
	)
	return m
}

// Middleware records request counts and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ObserveNext counts a next-lecture lookup.
func (m *Metrics) ObserveNext(found bool) {
	result := "none"
	if found {
		result = "found"
	}
	m.nextLookups.WithLabelValues(result).Inc()
}

// ObserveResolution counts a resolution outcome.
func (m *Metrics) ObserveResolution(matches int, needsClarification bool) {
	switch {
	case matches == 0:
		m.resolutions.WithLabelValues(OutcomeEmpty).Inc()
	case needsClarification:
		m.resolutions.WithLabelValues(OutcomeClarify).Inc()
	default:
		m.resolutions.WithLabelValues(OutcomeDirect).Inc()
	}
}

// SetOccurrences records the size of the compiled timetable.
func (m *Metrics) SetOccurrences(n int) {
	m.occurrences.Set(float64(n))
}
