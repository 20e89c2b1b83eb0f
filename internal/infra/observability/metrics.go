package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/legadokit/legado-agent-go/internal/domain"
)

// Metrics holds all Prometheus metrics for the report service.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	pipelineDuration *prometheus.HistogramVec
	externalErrors   *prometheus.CounterVec
	fallbacks        prometheus.Counter
	reportsTotal     *prometheus.CounterVec
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	tokensUsed       *prometheus.CounterVec
	requestsTotal    *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		pipelineDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "legado_pipeline_duration_seconds",
				Help:    "Duration of pipeline stages by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "legado_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		fallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "legado_fallback_reports_total",
				Help: "Total reports served via the deterministic fallback.",
			},
		),
		reportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "legado_reports_total",
				Help: "Total reports generated by risk level.",
			},
			[]string{"risk_level"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "legado_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "legado_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		tokensUsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "legado_llm_tokens_total",
				Help: "Total LLM tokens consumed.",
			},
			[]string{"type"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "legado_requests_total",
				Help: "Total report requests processed.",
			},
			[]string{"status"},
		),
	}
}

// RecordPipelineDuration records the duration of a pipeline stage.
func (m *Metrics) RecordPipelineDuration(operation string, d time.Duration) {
	m.pipelineDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrFallback increments the fallback report counter.
func (m *Metrics) IncrFallback() {
	m.fallbacks.Inc()
}

// IncrReport counts a generated report by its risk level.
func (m *Metrics) IncrReport(level domain.RiskLevel) {
	m.reportsTotal.WithLabelValues(string(level)).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// RecordTokens records prompt and completion token usage.
func (m *Metrics) RecordTokens(prompt, completion int) {
	m.tokensUsed.WithLabelValues("prompt").Add(float64(prompt))
	m.tokensUsed.WithLabelValues("completion").Add(float64(completion))
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// GetAgentSnapshot returns a snapshot of reasoning-agent metrics suitable
// for the GET /v1/metrics/agent endpoint.
func (m *Metrics) GetAgentSnapshot() *domain.AgentMetrics {
	promptTokens := getCounterValue(m.tokensUsed, "prompt")
	completionTokens := getCounterValue(m.tokensUsed, "completion")
	totalReports := getCounterValue(m.requestsTotal, "success") +
		getCounterValue(m.requestsTotal, "error")
	errorCount := getCounterValue(m.requestsTotal, "error")
	fallbacks := getSingleCounterValue(m.fallbacks)
	cacheHits := getCounterValue(m.cacheHits, "assistant")
	cacheMisses := getCounterValue(m.cacheMisses, "assistant")

	totalTokens := promptTokens + completionTokens
	avgTokens := float64(0)
	errorRate := float64(0)
	fallbackRate := float64(0)
	cacheHitRate := float64(0)

	if totalReports > 0 {
		avgTokens = totalTokens / totalReports
		errorRate = errorCount / totalReports
		fallbackRate = fallbacks / totalReports
	}
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	// Estimated cost: ~$0.03/1k prompt tokens, ~$0.06/1k completion tokens (GPT-4o)
	estimatedCost := (promptTokens/1000)*0.03 + (completionTokens/1000)*0.06

	return &domain.AgentMetrics{
		TotalReports:       int64(totalReports),
		ErrorRate:          errorRate,
		FallbackRate:       fallbackRate,
		AvgTokensPerReport: avgTokens,
		EstimatedCostUsd:   estimatedCost,
		CacheHitRate:       cacheHitRate,
		Period:             "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

func getSingleCounterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
