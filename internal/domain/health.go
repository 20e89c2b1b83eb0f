package domain

// ============================================================
// Health & Metrics API responses
// ============================================================

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy, degraded, unhealthy
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth represents the health of an individual dependency.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latencyMs"`
	LastChecked string `json:"lastChecked"`
}

// AgentMetrics is returned by GET /v1/metrics/agent.
type AgentMetrics struct {
	TotalReports       int64   `json:"totalReports"`
	ErrorRate          float64 `json:"errorRate"`
	FallbackRate       float64 `json:"fallbackRate"`
	AvgTokensPerReport float64 `json:"avgTokensPerReport"`
	EstimatedCostUsd   float64 `json:"estimatedCostUsd"`
	CacheHitRate       float64 `json:"cacheHitRate"`
	Period             string  `json:"period"`
}
