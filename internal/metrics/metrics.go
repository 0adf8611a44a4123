package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns the Prometheus registry and the HTTP request metrics.
type Recorder struct {
	registry *prom.Registry
	requests *prom.CounterVec
	duration *prom.HistogramVec
}

// NewRecorder constructs a Recorder with its own registry and
// registers the request counter and duration histogram.
func NewRecorder() *Recorder {
	rec := &Recorder{registry: prom.NewRegistry()}

	rec.requests = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "taskvault",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern, and status code",
	}, []string{"method", "route", "status"})

	rec.duration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "taskvault",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration by method and route pattern",
		Buckets:   prom.DefBuckets,
	}, []string{"method", "route"})

	rec.registry.MustRegister(rec.requests, rec.duration)
	return rec
}

// Middleware instruments each request, labeling by the chi route
// pattern rather than the raw path so task ids don't explode
// cardinality.
func (rec *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		rec.requests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		rec.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the Prometheus exposition format for this recorder's
// registry.
func (rec *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(rec.registry, promhttp.HandlerOpts{})
}
