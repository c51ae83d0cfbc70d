package metrics

import (
	"errors"
	"net/http"
	"time"

	"otpctl/pkg/graphql"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records client-side request metrics on a private registry.
type Collector struct {
	reg *prometheus.Registry

	Requests        *prometheus.CounterVec // operation, outcome
	RequestDuration *prometheus.HistogramVec
	Retries         *prometheus.CounterVec
	StaleResponses  prometheus.Counter
	CacheHits       prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "otpctl_graphql_requests_total",
			Help: "GraphQL requests by operation and outcome (ok|network|graphql|validation).",
		}, []string{"operation", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "otpctl_graphql_request_duration_seconds",
			Help:    "Duration of GraphQL requests including retries.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"operation"}),
		Retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "otpctl_graphql_retries_total",
			Help: "Retried GraphQL request attempts.",
		}, []string{"operation"}),
		StaleResponses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "otpctl_trip_stale_responses_total",
			Help: "Trip responses discarded because a newer search superseded them.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "otpctl_trip_cache_hits_total",
			Help: "Trip searches answered from the result cache.",
		}),
	}

	reg.MustRegister(c.Requests, c.RequestDuration, c.Retries, c.StaleResponses, c.CacheHits)
	return c
}

// ObserveRequest implements graphql.Observer.
func (c *Collector) ObserveRequest(operation string, d time.Duration, err error) {
	c.Requests.WithLabelValues(operation, outcome(err)).Inc()
	c.RequestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveRetry implements graphql.Observer.
func (c *Collector) ObserveRetry(operation string) {
	c.Retries.WithLabelValues(operation).Inc()
}

// ObserveCacheHit implements session.Observer.
func (c *Collector) ObserveCacheHit() { c.CacheHits.Inc() }

// ObserveStaleResponse implements session.Observer.
func (c *Collector) ObserveStaleResponse() { c.StaleResponses.Inc() }

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var gqlErr *graphql.Error
	if errors.As(err, &gqlErr) {
		return string(gqlErr.Kind)
	}
	return "other"
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string, logger *log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "err", err)
		}
	}()
	logger.Info("metrics listening", "addr", addr)
	return srv
}
