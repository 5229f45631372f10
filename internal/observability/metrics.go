package observability

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge
	apiErrors   *prometheus.CounterVec

	generations       *prometheus.CounterVec
	generationLatency prometheus.Histogram
	outfitSize        prometheus.Histogram
	draws             *prometheus.CounterVec
	ratings           *prometheus.CounterVec
	pairUpdates       prometheus.Counter
	sessionOps        *prometheus.CounterVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	v := strings.TrimSpace(os.Getenv("METRICS_ENABLED"))
	if v == "" {
		return false
	}
	return strings.EqualFold(v, "true") || v == "1" || strings.EqualFold(v, "yes")
}

func Current() *Metrics {
	return instance
}

// Init builds the process-wide metrics once. Later calls return the same instance.
func Init(log *logger.Logger) *Metrics {
	initOnce.Do(func() {
		instance = NewMetrics()
		if log != nil {
			log.Info("prometheus metrics initialized")
		}
	})
	return instance
}

// NewMetrics builds an instance on its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wardrobe_api_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wardrobe_api_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wardrobe_api_inflight_requests",
			Help: "HTTP requests currently being served.",
		}),
		apiErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wardrobe_api_errors_total",
			Help: "Error responses by route, status class and error code.",
		}, []string{"route", "class", "code"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wardrobe_outfit_generations_total",
			Help: "Outfit generation attempts by outcome.",
		}, []string{"status"}),
		generationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wardrobe_outfit_generation_duration_seconds",
			Help:    "Outfit generation latency.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		outfitSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wardrobe_outfit_items",
			Help:    "Items per generated outfit.",
			Buckets: []float64{1, 2, 3, 4, 5, 6},
		}),
		draws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wardrobe_outfit_draws_total",
			Help: "Item picks by category and draw mode.",
		}, []string{"category", "mode"}),
		ratings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wardrobe_outfit_ratings_total",
			Help: "Outfit ratings by value.",
		}, []string{"rating"}),
		pairUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wardrobe_compatibility_updates_total",
			Help: "Compatibility rows updated from feedback.",
		}),
		sessionOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wardrobe_generation_session_ops_total",
			Help: "Generation session store operations by op and status.",
		}, []string{"op", "status"}),
	}
	reg.MustRegister(
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.apiErrors,
		m.generations,
		m.generationLatency,
		m.outfitSize,
		m.draws,
		m.ratings,
		m.pairUpdates,
		m.sessionOps,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

// IncAPIError counts an error response. class is "4xx" or "5xx".
func (m *Metrics) IncAPIError(route, class, code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "none"
	}
	m.apiErrors.WithLabelValues(route, class, code).Inc()
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveGeneration(status string, items int, dur time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(status).Inc()
	m.generationLatency.Observe(dur.Seconds())
	if items > 0 {
		m.outfitSize.Observe(float64(items))
	}
}

func (m *Metrics) IncDraw(category, mode string) {
	if m == nil {
		return
	}
	m.draws.WithLabelValues(category, mode).Inc()
}

func (m *Metrics) ObserveRating(rating int, pairs int) {
	if m == nil {
		return
	}
	m.ratings.WithLabelValues(strconv.Itoa(rating)).Inc()
	m.pairUpdates.Add(float64(pairs))
}

func (m *Metrics) IncSessionOp(op, status string) {
	if m == nil {
		return
	}
	m.sessionOps.WithLabelValues(op, status).Inc()
}
