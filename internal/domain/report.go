package domain

import "time"

// ============================================================
// Generated report
// ============================================================

// RiskLevel is the categorical risk band. Wire values are the Spanish
// labels used across the product.
type RiskLevel string

const (
	RiskLow      RiskLevel = "bajo"
	RiskMedium   RiskLevel = "medio"
	RiskHigh     RiskLevel = "alto"
	RiskCritical RiskLevel = "critico"
)

// riskOrder defines the ordering bajo < medio < alto < critico.
var riskOrder = map[RiskLevel]int{
	RiskLow:      0,
	RiskMedium:   1,
	RiskHigh:     2,
	RiskCritical: 3,
}

// Rank returns the ordinal of the level (-1 for unknown values).
func (l RiskLevel) Rank() int {
	if r, ok := riskOrder[l]; ok {
		return r
	}
	return -1
}

// ActionStep is one entry of the recommended action roadmap.
type ActionStep struct {
	Step          int    `json:"step"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Priority      string `json:"priority"` // alta, media, baja
	EstimatedTime string `json:"estimatedTime"`
}

// CountryGuidance is the per-jurisdiction legal-process reference.
type CountryGuidance struct {
	Country            Country  `json:"country"`
	LegalRequirements  []string `json:"legalRequirements"`
	NotaryProcess      string   `json:"notaryProcess"`
	EstimatedCost      string   `json:"estimatedCost"`
	EstimatedTimeframe string   `json:"estimatedTimeframe"`
	ImportantNotes     []string `json:"importantNotes"`
	Resources          []string `json:"resources"`
}

// GeneratedReport is the final report for one submission. Produced once,
// immutable, consumed by rendering, email and persistence. Every field is
// always populated (list fields may be empty but are never nil).
type GeneratedReport struct {
	RiskScore       int             `json:"riskScore"` // 0-100
	RiskLevel       RiskLevel       `json:"riskLevel"`
	RiskExplanation string          `json:"riskExplanation"`
	ActionRoadmap   []ActionStep    `json:"actionRoadmap"`
	WillDraft       string          `json:"willDraft"`
	CountryGuidance CountryGuidance `json:"countryGuidance"`
	GeneratedAt     time.Time       `json:"generatedAt"`
}

// AgentPayload is the JSON shape the reasoning service is asked to embed
// in its reply. Score and level are present in the payload but the served
// report always carries the locally computed values.
type AgentPayload struct {
	RiskScore       int             `json:"riskScore"`
	RiskLevel       RiskLevel       `json:"riskLevel"`
	RiskExplanation string          `json:"riskExplanation"`
	ActionRoadmap   []ActionStep    `json:"actionRoadmap"`
	WillDraft       string          `json:"willDraft"`
	CountryGuidance CountryGuidance `json:"countryGuidance"`
}

// ReportRecord is the persisted row in the legacy_reports table.
type ReportRecord struct {
	ID               string             `json:"id"`
	Email            string             `json:"email"`
	Country          Country            `json:"country"`
	RiskScore        int                `json:"riskScore"`
	RiskLevel        RiskLevel          `json:"riskLevel"`
	FormResponse     *RawSubmission     `json:"formResponse"`
	NormalizedData   *NormalizedSummary `json:"normalizedData"`
	GeneratedReport  *GeneratedReport   `json:"generatedReport"`
	PDFURL           string             `json:"pdfUrl,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// ReportStatistics aggregates stored reports by country and risk level.
type ReportStatistics struct {
	TotalReports     int               `json:"totalReports"`
	ReportsByCountry map[string]int    `json:"reportsByCountry"`
	ReportsByLevel   map[string]int    `json:"reportsByRiskLevel"`
}
