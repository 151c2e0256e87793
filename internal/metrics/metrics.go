package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the Prometheus metrics of one process. Methods are safe
// on a nil *Registry so components can run without metrics.
type Registry struct {
	reg *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BridgeQueriesTotal  *prometheus.CounterVec
	BridgeQueryDuration *prometheus.HistogramVec

	LoginsTotal *prometheus.CounterVec
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Registry{
		reg: reg,
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bidportal_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bidportal_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"endpoint", "method"},
		),
		BridgeQueriesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bidportal_bridge_queries_total",
				Help: "Statements executed by the query bridge by kind (query/exec) and outcome",
			},
			[]string{"kind", "outcome"},
		),
		BridgeQueryDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bidportal_bridge_query_duration_seconds",
				Help:    "Statement execution latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		LoginsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bidportal_logins_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

func (r *Registry) ObserveQuery(kind, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.BridgeQueriesTotal.WithLabelValues(kind, outcome).Inc()
	r.BridgeQueryDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (r *Registry) ObserveRequest(endpoint, method, status string, d time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(endpoint, method).Observe(d.Seconds())
}

func (r *Registry) ObserveLogin(outcome string) {
	if r == nil {
		return
	}
	r.LoginsTotal.WithLabelValues(outcome).Inc()
}
