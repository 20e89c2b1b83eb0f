// Package normalizer derives the read-only summary facts from a raw
// questionnaire submission. All functions here are pure: no I/O, no
// randomness, no external calls. Validation happens before this package
// is reached; Normalize is total over any shape-valid submission.
package normalizer

import (
	"fmt"
	"strings"

	"github.com/legadokit/legado-agent-go/internal/domain"
)

// Normalize transforms a raw submission into its normalized summary.
// Identical input always yields identical output.
func Normalize(raw *domain.RawSubmission) *domain.NormalizedSummary {
	financial := financialSummary(raw.Assets, raw.Debts)
	family := familySituation(raw)
	risks := riskFactors(raw, financial)

	return &domain.NormalizedSummary{
		PersonalInfo: domain.PersonalInfo{
			FullName:         raw.FullName,
			Age:              raw.Age,
			Country:          raw.Country,
			Email:            raw.Email,
			MaritalStatus:    raw.MaritalStatus,
			HasChildren:      raw.HasChildren,
			NumberOfChildren: raw.NumberOfChildren,
		},
		FinancialSummary: financial,
		FamilySituation:  family,
		RiskFactors:      risks,
		RawData:          raw,
	}
}

// financialSummary folds the asset and debt lists. Empty lists yield
// zero totals; a missing asset value counts as zero.
func financialSummary(assets []domain.Asset, debts []domain.Debt) domain.FinancialSummary {
	var totalAssets, totalDebts float64
	var hasRealEstate, hasBusiness bool

	for i := range assets {
		totalAssets += assets[i].Value()
		switch assets[i].Type {
		case "propiedad":
			hasRealEstate = true
		case "negocio":
			hasBusiness = true
		}
	}
	for i := range debts {
		totalDebts += debts[i].Amount
	}

	return domain.FinancialSummary{
		TotalAssets:          totalAssets,
		TotalDebts:           totalDebts,
		NetWorth:             totalAssets - totalDebts,
		AssetsCount:          len(assets),
		DebtsCount:           len(debts),
		HasRealEstate:        hasRealEstate,
		HasBusinessOwnership: hasBusiness,
	}
}

// familySituation scans the heirs list once.
func familySituation(raw *domain.RawSubmission) domain.FamilySituation {
	var hasMinors, hasGuardian bool
	for i := range raw.Heirs {
		if raw.Heirs[i].IsMinor {
			hasMinors = true
			if raw.Heirs[i].GuardianName != "" {
				hasGuardian = true
			}
		}
	}

	return domain.FamilySituation{
		HeirsCount:            len(raw.Heirs),
		HasMinorHeirs:         hasMinors,
		HasGuardianDesignated: hasGuardian,
		HasExecutor:           raw.HasExecutor,
		ExecutorName:          raw.ExecutorName,
	}
}

// riskFactors derives the boolean risk predicates. Debt is significant
// when it exceeds half of total assets.
func riskFactors(raw *domain.RawSubmission, fin domain.FinancialSummary) domain.RiskFactors {
	return domain.RiskFactors{
		HasNoWill:          !raw.HasWill,
		HasMajorIllness:    raw.HasMajorIllness,
		HasNoLifeInsurance: !raw.HasLifeInsurance,
		HasDependents:      raw.HasDependents,
		HasComplexFinances: raw.HasComplexFinances,
		SignificantDebt:    fin.TotalDebts > fin.TotalAssets*0.5,
	}
}

// Distribution computes the inheritance share per heir name. Explicit
// positive percentages win when any heir declares one; otherwise the
// estate is split equally. A declared zero counts as unset. Declared
// percentages are NOT rescaled to sum to 100.
func Distribution(heirs []domain.Heir) map[string]float64 {
	dist := make(map[string]float64, len(heirs))
	if len(heirs) == 0 {
		return dist
	}

	hasPercentages := false
	for i := range heirs {
		if p := heirs[i].Percentage; p != nil && *p > 0 {
			hasPercentages = true
			break
		}
	}

	if hasPercentages {
		for i := range heirs {
			if p := heirs[i].Percentage; p != nil && *p > 0 {
				dist[heirs[i].Name] = *p
			}
		}
		return dist
	}

	share := 100 / float64(len(heirs))
	for i := range heirs {
		dist[heirs[i].Name] = share
	}
	return dist
}

// SummaryText builds a short plain-text recap of the normalized facts,
// used in the notification email body.
func SummaryText(n *domain.NormalizedSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Resumen para %s\n\n", n.PersonalInfo.FullName)

	fmt.Fprintf(&b, "SITUACIÓN FINANCIERA\n")
	fmt.Fprintf(&b, "- Patrimonio neto: €%.2f\n", n.FinancialSummary.NetWorth)
	fmt.Fprintf(&b, "- Activos: €%.2f\n", n.FinancialSummary.TotalAssets)
	fmt.Fprintf(&b, "- Deudas: €%.2f\n\n", n.FinancialSummary.TotalDebts)

	fmt.Fprintf(&b, "SITUACIÓN FAMILIAR\n")
	fmt.Fprintf(&b, "- Herederos designados: %d\n", n.FamilySituation.HeirsCount)
	fmt.Fprintf(&b, "- Estado civil: %s\n", n.PersonalInfo.MaritalStatus)
	children := 0
	if n.PersonalInfo.HasChildren {
		children = n.PersonalInfo.NumberOfChildren
	}
	fmt.Fprintf(&b, "- Hijos: %d\n\n", children)

	fmt.Fprintf(&b, "FACTORES DE RIESGO IDENTIFICADOS\n")
	var risks []string
	if n.RiskFactors.HasNoWill {
		risks = append(risks, "Sin testamento")
	}
	if n.RiskFactors.HasMajorIllness {
		risks = append(risks, "Enfermedad grave")
	}
	if n.RiskFactors.HasNoLifeInsurance {
		risks = append(risks, "Sin seguro de vida")
	}
	if n.RiskFactors.HasDependents {
		risks = append(risks, "Personas dependientes")
	}
	if n.RiskFactors.SignificantDebt {
		risks = append(risks, "Deuda significativa")
	}

	if len(risks) == 0 {
		b.WriteString("- Ninguno identificado\n")
	} else {
		for _, r := range risks {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	return b.String()
}
