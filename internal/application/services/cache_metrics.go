package services

import "github.com/prometheus/client_golang/prometheus"

var cacheOpsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_operations_total",
		Help: "The total number of cache operations by operation and result",
	},
	[]string{"operation", "result"},
)

func init() {
	prometheus.MustRegister(cacheOpsTotal)
}
