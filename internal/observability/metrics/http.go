package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	matchingRequestsTotal  *prometheus.CounterVec
	matchingReturned       *prometheus.HistogramVec
	matchingTopScore       *prometheus.HistogramVec
	matchingDuration       *prometheus.HistogramVec
	assistantRequestsTotal *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexova",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexova",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lexova",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	matchingRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexova",
			Subsystem: "matching",
			Name:      "requests_total",
			Help:      "Total completed matching runs by outcome.",
		},
		[]string{"service", "outcome"},
	)
	matchingReturned := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexova",
			Subsystem: "matching",
			Name:      "matches_returned",
			Help:      "Distribution of matches returned per matching run.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		},
		[]string{"service"},
	)
	matchingTopScore := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexova",
			Subsystem: "matching",
			Name:      "top_score",
			Help:      "Distribution of the best match score per non-empty run.",
			Buckets:   []float64{40, 50, 60, 70, 80, 90, 100},
		},
		[]string{"service"},
	)
	matchingDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexova",
			Subsystem: "matching",
			Name:      "duration_seconds",
			Help:      "Matching run duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	assistantRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexova",
			Subsystem: "assistant",
			Name:      "requests_total",
			Help:      "Total assistant operations by endpoint.",
		},
		[]string{"service", "endpoint"},
	)
	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		matchingRequestsTotal,
		matchingReturned,
		matchingTopScore,
		matchingDuration,
		assistantRequestsTotal,
	)

	return &HTTPServerMetrics{
		registry:               registry,
		requestTotal:           requestTotal,
		requestDuration:        requestDuration,
		requestInFlight:        requestInFlight,
		matchingRequestsTotal:  matchingRequestsTotal,
		matchingReturned:       matchingReturned,
		matchingTopScore:       matchingTopScore,
		matchingDuration:       matchingDuration,
		assistantRequestsTotal: assistantRequestsTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasSuffix(path, "/documents") && strings.HasPrefix(path, "/v1/cases/"):
		return "/v1/cases/{case_id}/documents"
	case strings.HasPrefix(path, "/v1/cases/"):
		return "/v1/cases/{case_id}"
	default:
		return path
	}
}

// RecordMatchingRun tracks one completed matching run. topScore is ignored
// when no matches clear the threshold.
func (m *HTTPServerMetrics) RecordMatchingRun(service string, returned, topScore int, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.matchingRequestsTotal.WithLabelValues(service, outcome).Inc()
	if err != nil {
		return
	}

	m.matchingReturned.WithLabelValues(service).Observe(float64(returned))
	m.matchingDuration.WithLabelValues(service).Observe(duration.Seconds())
	if returned > 0 {
		m.matchingTopScore.WithLabelValues(service).Observe(float64(topScore))
	}
}

func (m *HTTPServerMetrics) RecordAssistantRequest(service, endpoint string) {
	if endpoint == "" {
		endpoint = "unknown"
	}
	m.assistantRequestsTotal.WithLabelValues(service, endpoint).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
