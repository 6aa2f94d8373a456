// Package metrics exposes Prometheus metrics for API traffic.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records API client measurements. It satisfies kitchen.Recorder.
type Collector struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	expired  prometheus.Counter
	offline  prometheus.Counter
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kitchen_api_requests_total",
			Help: "API requests by method and status code.",
		}, []string{"method", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kitchen_api_request_duration_seconds",
			Help:    "API request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kitchen_session_expired_total",
			Help: "Sessions ended by a 401 response.",
		}),
		offline: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kitchen_api_unreachable_total",
			Help: "Requests that never reached the server.",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.latency,
		c.expired,
		c.offline,
	)

	return c
}

// ObserveRequest records one finished request. Status 0 means the server
// was unreachable.
func (c *Collector) ObserveRequest(method string, status int, elapsed time.Duration) {
	if status == 0 {
		c.offline.Inc()
		c.requests.WithLabelValues(method, "none").Inc()
		return
	}
	c.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method).Observe(elapsed.Seconds())
}

// SessionExpired counts a forced logout.
func (c *Collector) SessionExpired() {
	c.expired.Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute mounts Handler at /metrics.
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}

// Serve listens on addr and serves /metrics until ctx is done.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           SetupMetricsRoute(gatherer),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	logger.Info("metrics listening", slog.String("addr", ln.Addr().String()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
