package domain

// ============================================================
// Raw questionnaire submission (wire format of POST /v1/reports)
// ============================================================
//
// Enum values are the Spanish wire values used by the questionnaire
// frontend; they are stored verbatim.

// Asset is a single declared asset.
type Asset struct {
	Type           string   `json:"type" validate:"required,oneof=propiedad vehiculo cuenta_bancaria inversion negocio otro"`
	Description    string   `json:"description" validate:"required"`
	EstimatedValue *float64 `json:"estimatedValue,omitempty" validate:"omitempty,gte=0"`
	Location       string   `json:"location,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// Value returns the estimated value, treating a missing value as zero.
func (a *Asset) Value() float64 {
	if a.EstimatedValue == nil {
		return 0
	}
	return *a.EstimatedValue
}

// Debt is a single declared debt.
type Debt struct {
	Type        string  `json:"type" validate:"required,oneof=hipoteca prestamo_personal tarjeta_credito prestamo_vehicular otro"`
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Creditor    string  `json:"creditor,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// Heir is a designated heir or beneficiary.
type Heir struct {
	Name           string   `json:"name" validate:"required"`
	Relationship   string   `json:"relationship" validate:"required,oneof=conyuge hijo hija padre madre hermano hermana otro"`
	Percentage     *float64 `json:"percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	SpecificAssets []string `json:"specificAssets,omitempty"`
	IsMinor        bool     `json:"isMinor,omitempty"`
	GuardianName   string   `json:"guardianName,omitempty"`
}

// RawSubmission is one user's complete estate questionnaire.
// Boolean risk flags absent from the input default to false.
// Heir percentages are range-checked individually but deliberately
// NOT required to sum to 100.
type RawSubmission struct {
	// Personal information
	FullName         string  `json:"fullName" validate:"required"`
	Age              int     `json:"age" validate:"gte=18"`
	Country          Country `json:"country" validate:"required,oneof=ES MX AR CO CL PE VE EC GT CU BO DO HN PY SV NI CR PA UY"`
	Email            string  `json:"email" validate:"required,email"`
	MaritalStatus    string  `json:"maritalStatus" validate:"required,oneof=soltero casado divorciado viudo union_libre"`
	HasChildren      bool    `json:"hasChildren"`
	NumberOfChildren int     `json:"numberOfChildren,omitempty" validate:"gte=0"`

	// Assets and debts
	Assets               []Asset  `json:"assets" validate:"dive"`
	Debts                []Debt   `json:"debts" validate:"dive"`
	TotalEstimatedWealth *float64 `json:"totalEstimatedWealth,omitempty" validate:"omitempty,gte=0"`

	// Heirs and beneficiaries
	Heirs        []Heir `json:"heirs" validate:"dive"`
	HasWill      bool   `json:"hasWill"`
	HasExecutor  bool   `json:"hasExecutor"`
	ExecutorName string `json:"executorName,omitempty"`

	// Risk assessment flags
	HasMajorIllness    bool `json:"hasMajorIllness,omitempty"`
	HasLifeInsurance   bool `json:"hasLifeInsurance,omitempty"`
	HasDependents      bool `json:"hasDependents,omitempty"`
	OwnsRealEstate     bool `json:"ownsRealEstate,omitempty"`
	HasComplexFinances bool `json:"hasComplexFinances,omitempty"`

	// Free-text notes
	SpecialRequests string `json:"specialRequests,omitempty"`
	Concerns        string `json:"concerns,omitempty"`
}
