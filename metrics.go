package getlisted

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "getlisted_client",
			Name:      "http_requests_total",
			Help:      "HTTP requests issued by the SDK.",
		},
		[]string{"method"},
	)

	requestFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "getlisted_client",
			Name:      "http_request_failures_total",
			Help:      "HTTP requests that failed at the transport level.",
		},
		[]string{"method"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "getlisted_client",
			Name:      "http_request_duration_seconds",
			Help:      "Wall time per HTTP request.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// metricsTransport counts and times every outgoing request.
type metricsTransport struct{ base http.RoundTripper }

func (mt *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := mt.base.RoundTrip(req)
	requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(req.Method).Inc()
	if err != nil {
		requestFailuresTotal.WithLabelValues(req.Method).Inc()
	}
	return resp, err
}
