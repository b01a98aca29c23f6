// Package metrics holds the Prometheus collectors of the settlement engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "settlement_engine"

// Resolution strategies, used as the "strategy" label of RateResolutions.
const (
	StrategyIdentity     = "identity"
	StrategyDirect       = "direct"
	StrategyInverse      = "inverse"
	StrategyTriangulated = "triangulated"
	StrategyProvider     = "provider"
	StrategyUnavailable  = "unavailable"
)

// Provider call outcomes, used as the "outcome" label of ProviderRequests.
const (
	OutcomeSuccess     = "success"
	OutcomeError       = "error"
	OutcomeUnsupported = "unsupported"
	OutcomeConfig      = "configuration"
	OutcomeCircuitOpen = "circuit_open"
)

var (
	RateResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_resolutions_total",
		Help:      "Exchange rate resolutions by the strategy that produced the rate.",
	}, []string{"strategy"})

	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_requests_total",
		Help:      "Outbound exchange rate provider calls by provider and outcome.",
	}, []string{"provider", "outcome"})

	ProviderLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_request_duration_seconds",
		Help:      "Latency of outbound exchange rate provider calls.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"provider"})

	SettlementsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settlements_applied_total",
		Help:      "Payments applied to invoices, split by whether a conversion was needed.",
	}, []string{"conversion"})

	EventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_publish_failures_total",
		Help:      "Events that could not be handed to the publisher.",
	}, []string{"event"})
)
