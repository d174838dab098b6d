package proxy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	proxyRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "echoapp",
		Subsystem: "proxy",
		Name:      "requests_total",
		Help:      "WebDAV proxy requests, by method and response status.",
	}, []string{"method", "status"})

	proxyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "echoapp",
		Subsystem: "proxy",
		Name:      "request_duration_seconds",
		Help:      "WebDAV proxy request latency, by method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
)
