package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "echoapp",
		Subsystem: "sync",
		Name:      "uploads_total",
		Help:      "Remote uploads performed by sync, by collection and result.",
	}, []string{"collection", "result"})

	syncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "echoapp",
		Subsystem: "sync",
		Name:      "duration_seconds",
		Help:      "Duration of sync invocations, by mode and result.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"mode", "result"})
)

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
