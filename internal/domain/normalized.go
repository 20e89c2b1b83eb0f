package domain

// ============================================================
// Normalized summary — derived once per submission, never mutated
// ============================================================

// PersonalInfo is the identity slice of the submission, passed through.
type PersonalInfo struct {
	FullName         string  `json:"fullName"`
	Age              int     `json:"age"`
	Country          Country `json:"country"`
	Email            string  `json:"email"`
	MaritalStatus    string  `json:"maritalStatus"`
	HasChildren      bool    `json:"hasChildren"`
	NumberOfChildren int     `json:"numberOfChildren,omitempty"`
}

// FinancialSummary holds the derived financial totals.
type FinancialSummary struct {
	TotalAssets          float64 `json:"totalAssets"`
	TotalDebts           float64 `json:"totalDebts"`
	NetWorth             float64 `json:"netWorth"`
	AssetsCount          int     `json:"assetsCount"`
	DebtsCount           int     `json:"debtsCount"`
	HasRealEstate        bool    `json:"hasRealEstate"`
	HasBusinessOwnership bool    `json:"hasBusinessOwnership"`
}

// FamilySituation holds the derived family facts.
type FamilySituation struct {
	HeirsCount            int    `json:"heirsCount"`
	HasMinorHeirs         bool   `json:"hasMinorHeirs"`
	HasGuardianDesignated bool   `json:"hasGuardianDesignated"`
	HasExecutor           bool   `json:"hasExecutor"`
	ExecutorName          string `json:"executorName,omitempty"`
}

// RiskFactors holds the derived boolean risk predicates.
type RiskFactors struct {
	HasNoWill          bool `json:"hasNoWill"`
	HasMajorIllness    bool `json:"hasMajorIllness"`
	HasNoLifeInsurance bool `json:"hasNoLifeInsurance"`
	HasDependents      bool `json:"hasDependents"`
	HasComplexFinances bool `json:"hasComplexFinances"`
	SignificantDebt    bool `json:"significantDebt"`
}

// NormalizedSummary aggregates all derived facts plus the original raw
// submission. It is request-scoped: created once per submission and
// consumed read-only by the risk model and the renderers.
type NormalizedSummary struct {
	PersonalInfo     PersonalInfo     `json:"personalInfo"`
	FinancialSummary FinancialSummary `json:"financialSummary"`
	FamilySituation  FamilySituation  `json:"familySituation"`
	RiskFactors      RiskFactors      `json:"riskFactors"`
	RawData          *RawSubmission   `json:"rawData"`
}
