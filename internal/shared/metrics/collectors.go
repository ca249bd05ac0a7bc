package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SettlementRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "huddlebook_settlement_runs_total",
		Help: "Settlement computations, by outcome.",
	}, []string{"outcome"})

	BetsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "huddlebook_bets_resolved_total",
		Help: "Bets moved out of the active state, by final status.",
	}, []string{"status"})

	ProviderFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "huddlebook_provider_fetches_total",
		Help: "Third-party provider fetches, by provider and outcome.",
	}, []string{"provider", "outcome"})

	SettlementDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "huddlebook_settlement_duration_seconds",
		Help:    "Wall time of one settlement computation including the bet read.",
		Buckets: prometheus.DefBuckets,
	})
)
