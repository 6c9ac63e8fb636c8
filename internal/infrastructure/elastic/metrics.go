package elastic

import (
	"github.com/prometheus/client_golang/prometheus"
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "search_backend_request_duration_seconds",
		Help:    "Latency of search backend calls in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"operation", "outcome"},
)

func init() {
	prometheus.MustRegister(requestDuration)
}
