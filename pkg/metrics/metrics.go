// Package metrics exposes prometheus instrumentation for the request
// lifecycle. The HTTP adapters call Observe around each executed request;
// Handler serves the scrape endpoint.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fuelgo_requests_total",
		Help: "Executed requests by application, method and status.",
	}, []string{"app", "method", "status"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fuelgo_request_duration_seconds",
		Help:    "Request execution latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"app", "method"})

	activeRequests = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fuelgo_active_requests",
		Help: "Requests currently executing, including nested sub-requests.",
	}, []string{"app"})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, activeRequests)
}

// Observe records one completed request.
func Observe(app, method string, status int, dur time.Duration) {
	requestsTotal.WithLabelValues(app, method, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(app, method).Observe(dur.Seconds())
}

// Enter marks a request as executing.
func Enter(app string) { activeRequests.WithLabelValues(app).Inc() }

// Leave marks a request as finished.
func Leave(app string) { activeRequests.WithLabelValues(app).Dec() }

// Handler returns the prometheus scrape handler.
func Handler() http.Handler { return promhttp.Handler() }
