package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthFunc reports whether a dependency is usable.
type HealthFunc func(ctx context.Context) error

const healthTimeout = 500 * time.Millisecond

// NewMetricsHandler serves /metrics from gatherer and /healthz from health.
func NewMetricsHandler(gatherer prometheus.Gatherer, health HealthFunc) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()

			if err := health(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = fmt.Fprintf(w, "unhealthy: %v", err)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// NewMetricsServer builds the side server; the caller owns ListenAndServe and Shutdown.
func NewMetricsServer(addr string, gatherer prometheus.Gatherer, health HealthFunc) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewMetricsHandler(gatherer, health),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
