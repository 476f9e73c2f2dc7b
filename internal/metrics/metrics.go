// Package metrics exposes prometheus counters for upstream calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dao_explorer"

// Snapshot request outcomes
const (
	OutcomeOK          = "ok"
	OutcomeUnavailable = "unavailable"
	OutcomeQueryError  = "query_error"
)

// Summary sources
const (
	SourceAI          = "ai"
	SourceFallback    = "fallback"
	SourceUnavailable = "unavailable"
	SourceLimited     = "limited"
	SourceRecovered   = "recovered"
)

var (
	// SnapshotRequests counts proposal fetches by outcome.
	SnapshotRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_requests_total",
		Help:      "Proposal fetches against the Snapshot hub by outcome.",
	}, []string{"outcome"})

	// Summaries counts attached proposal summaries by where they came from.
	Summaries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summaries_total",
		Help:      "Proposal summaries produced, by source.",
	}, []string{"source"})

	// SummaryDuration observes text-generation call latency.
	SummaryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "summary_generation_seconds",
		Help:      "Latency of text-generation calls.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16},
	})
)
