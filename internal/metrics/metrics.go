package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder collects per-request metrics: prometheus series for scraping
// and an HDR histogram for the latency percentiles served on /stats.
type Recorder struct {
	reg      *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	mu      sync.Mutex
	latency *hdrhistogram.Histogram
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Requests handled, by method, route and status code.",
	}, []string{"method", "route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Request handling latency, by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)

	return &Recorder{
		reg:      reg,
		requests: requests,
		duration: duration,
		// Latency in microseconds, up to 60 seconds, 3 significant figures
		latency: hdrhistogram.New(1, 60_000_000, 3),
	}
}

// Observe records one handled request.
func (r *Recorder) Observe(method, route string, code int, elapsed time.Duration) {
	r.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	r.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())

	r.mu.Lock()
	r.latency.RecordValue(elapsed.Microseconds())
	r.mu.Unlock()
}

// Snapshot is the latency summary served as JSON on /stats.
type Snapshot struct {
	Requests int64   `json:"requests"`
	MeanMs   float64 `json:"mean_ms"`
	P50Ms    float64 `json:"p50_ms"`
	P95Ms    float64 `json:"p95_ms"`
	P99Ms    float64 `json:"p99_ms"`
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		Requests: r.latency.TotalCount(),
		MeanMs:   r.latency.Mean() / 1000.0,
		P50Ms:    float64(r.latency.ValueAtQuantile(50)) / 1000.0,
		P95Ms:    float64(r.latency.ValueAtQuantile(95)) / 1000.0,
		P99Ms:    float64(r.latency.ValueAtQuantile(99)) / 1000.0,
	}
}

// PromHandler serves the prometheus registry.
func (r *Recorder) PromHandler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
