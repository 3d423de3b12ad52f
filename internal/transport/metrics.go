package transport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cmis_http_requests_total",
		Help: "HTTP requests sent to the CMIS server, by method and status class.",
	}, []string{"method", "class"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cmis_http_request_duration_seconds",
		Help:    "Latency of HTTP requests to the CMIS server.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cmis_http_retries_total",
		Help: "Retried HTTP requests.",
	})
)
