package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks lookups answered from the cache
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coelho_cache_hits_total",
			Help: "Total number of ISBN cache hits",
		},
	)

	// CacheMisses tracks lookups that fell through to the providers
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coelho_cache_misses_total",
			Help: "Total number of ISBN cache misses",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coelho_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "decode", "set"
	)
)
