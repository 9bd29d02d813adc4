package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts API requests by method, path and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrdesk_http_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// ToolInvocations counts agent tool calls by tool name and outcome.
	ToolInvocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrdesk_tool_invocations_total",
		Help: "Total agent tool invocations.",
	}, []string{"tool", "outcome"})

	// LLMRequestDuration observes latency of LLM completions.
	LLMRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hrdesk_llm_request_duration_seconds",
		Help:    "Latency of LLM completion requests.",
		Buckets: prometheus.DefBuckets,
	})

	// ChunksIngested counts document chunks upserted to the vector index.
	ChunksIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hrdesk_chunks_ingested_total",
		Help: "Total document chunks upserted to the vector index.",
	})
)
