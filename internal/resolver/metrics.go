package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Resolutions counts finished Resolve calls by outcome
	Resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coelho_resolutions_total",
			Help: "Total number of ISBN resolutions by outcome",
		},
		[]string{"outcome"}, // "cached", "resolved", "not_found", "provider_error", "cache_write_error", "invalid"
	)

	// ProviderRequests counts calls to primary and secondary providers
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coelho_provider_requests_total",
			Help: "Total number of provider requests by provider and outcome",
		},
		[]string{"provider", "outcome"}, // outcome: "found", "empty", "error"
	)
)

func outcomeLabel(kind ErrorKind) string {
	switch kind {
	case KindInvalidInput:
		return "invalid"
	case KindNotFound:
		return "not_found"
	case KindProvider:
		return "provider_error"
	case KindCacheWrite:
		return "cache_write_error"
	default:
		return "unknown"
	}
}
