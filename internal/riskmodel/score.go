// Package riskmodel computes the deterministic risk score for a
// normalized submission and builds the degraded report served when the
// reasoning service is unavailable. The model is a fixed weighted sum of
// boolean predicates; it never performs I/O and two calls over the same
// summary always agree.
package riskmodel

import (
	"time"

	"github.com/legadokit/legado-agent-go/internal/domain"
)

// Weights of the individual risk predicates. The raw sum saturates at 100.
const (
	weightNoWill          = 30
	weightMajorIllness    = 20
	weightNoLifeInsurance = 15
	weightDependents      = 10
	weightComplexFinances = 15
	weightSignificantDebt = 10
	weightMinorsNoGuard   = 15
	weightRealEstateNoWill = 10
	weightHighNetNoWill    = 10

	maxScore         = 100
	highNetWorthLine = 100000
)

// Classification thresholds.
const (
	criticalFloor = 70
	highFloor     = 50
	mediumFloor   = 30
)

// Score computes the 0-100 risk score for a normalized summary.
func Score(n *domain.NormalizedSummary) int {
	score := 0

	if n.RiskFactors.HasNoWill {
		score += weightNoWill
	}
	if n.RiskFactors.HasMajorIllness {
		score += weightMajorIllness
	}
	if n.RiskFactors.HasNoLifeInsurance {
		score += weightNoLifeInsurance
	}
	if n.RiskFactors.HasDependents {
		score += weightDependents
	}
	if n.RiskFactors.HasComplexFinances {
		score += weightComplexFinances
	}
	if n.RiskFactors.SignificantDebt {
		score += weightSignificantDebt
	}
	if n.FamilySituation.HasMinorHeirs && !n.FamilySituation.HasGuardianDesignated {
		score += weightMinorsNoGuard
	}
	if n.FinancialSummary.HasRealEstate && n.RiskFactors.HasNoWill {
		score += weightRealEstateNoWill
	}
	if n.FinancialSummary.NetWorth > highNetWorthLine && n.RiskFactors.HasNoWill {
		score += weightHighNetNoWill
	}

	if score > maxScore {
		return maxScore
	}
	return score
}

// Classify maps a score to its risk band.
func Classify(score int) domain.RiskLevel {
	switch {
	case score >= criticalFloor:
		return domain.RiskCritical
	case score >= highFloor:
		return domain.RiskHigh
	case score >= mediumFloor:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

var fallbackMessages = map[string]string{
	"es": "Error al generar el análisis completo. Por favor, intente nuevamente.",
	"en": "The full analysis could not be generated. Please try again.",
}

// FallbackReport builds the degraded report served when the reasoning
// service fails. The score and level are still computed locally; the
// narrative sections are empty but present, so every consumer downstream
// sees a structurally complete report.
func FallbackReport(n *domain.NormalizedSummary, language string) *domain.GeneratedReport {
	msg, ok := fallbackMessages[language]
	if !ok {
		msg = fallbackMessages["es"]
	}

	score := Score(n)
	return &domain.GeneratedReport{
		RiskScore:       score,
		RiskLevel:       Classify(score),
		RiskExplanation: msg,
		ActionRoadmap:   []domain.ActionStep{},
		WillDraft:       "",
		CountryGuidance: domain.CountryGuidance{
			Country:           n.PersonalInfo.Country,
			LegalRequirements: []string{},
			ImportantNotes:    []string{},
			Resources:         []string{},
		},
		GeneratedAt: time.Now().UTC(),
	}
}
