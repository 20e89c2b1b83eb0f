package normalizer_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/legadokit/legado-agent-go/internal/domain"
	"github.com/legadokit/legado-agent-go/internal/normalizer"
)

func f(v float64) *float64 { return &v }

func baseSubmission() *domain.RawSubmission {
	return &domain.RawSubmission{
		FullName:      "María García López",
		Age:           45,
		Country:       domain.CountryES,
		Email:         "maria@example.com",
		MaritalStatus: "casado",
		HasChildren:   true, NumberOfChildren: 2,
		Assets: []domain.Asset{
			{Type: "propiedad", Description: "Piso en Madrid", EstimatedValue: f(300000)},
			{Type: "cuenta_bancaria", Description: "Cuenta corriente", EstimatedValue: f(50000)},
			{Type: "otro", Description: "Joyas"}, // no value → counts as 0
		},
		Debts: []domain.Debt{
			{Type: "hipoteca", Description: "Hipoteca del piso", Amount: 120000, Creditor: "Banco X"},
		},
		Heirs: []domain.Heir{
			{Name: "Lucía García", Relationship: "hija", IsMinor: true, GuardianName: "Carmen López"},
			{Name: "Pablo García", Relationship: "hijo"},
		},
		HasWill:          false,
		HasExecutor:      true,
		ExecutorName:     "Jorge García",
		HasLifeInsurance: true,
		HasDependents:    true,
	}
}

func TestNormalizeFinancialSummary(t *testing.T) {
	n := normalizer.Normalize(baseSubmission())

	fin := n.FinancialSummary
	if fin.TotalAssets != 350000 {
		t.Errorf("total assets = %v, want 350000", fin.TotalAssets)
	}
	if fin.TotalDebts != 120000 {
		t.Errorf("total debts = %v, want 120000", fin.TotalDebts)
	}
	if fin.NetWorth != 230000 {
		t.Errorf("net worth = %v, want 230000", fin.NetWorth)
	}
	if fin.AssetsCount != 3 || fin.DebtsCount != 1 {
		t.Errorf("counts = %d/%d, want 3/1", fin.AssetsCount, fin.DebtsCount)
	}
	if !fin.HasRealEstate {
		t.Error("expected hasRealEstate")
	}
	if fin.HasBusinessOwnership {
		t.Error("did not expect business ownership")
	}
}

func TestNormalizeEmptyListsYieldZeroTotals(t *testing.T) {
	raw := baseSubmission()
	raw.Assets = nil
	raw.Debts = nil

	fin := normalizer.Normalize(raw).FinancialSummary
	if fin.TotalAssets != 0 || fin.TotalDebts != 0 || fin.NetWorth != 0 {
		t.Errorf("expected zero totals, got %+v", fin)
	}
}

func TestNormalizeFamilySituation(t *testing.T) {
	fam := normalizer.Normalize(baseSubmission()).FamilySituation
	if fam.HeirsCount != 2 {
		t.Errorf("heirs count = %d, want 2", fam.HeirsCount)
	}
	if !fam.HasMinorHeirs || !fam.HasGuardianDesignated {
		t.Errorf("minor/guardian = %v/%v, want true/true", fam.HasMinorHeirs, fam.HasGuardianDesignated)
	}
	if !fam.HasExecutor || fam.ExecutorName != "Jorge García" {
		t.Errorf("executor = %v/%q", fam.HasExecutor, fam.ExecutorName)
	}
}

func TestNormalizeMinorWithoutGuardian(t *testing.T) {
	raw := baseSubmission()
	raw.Heirs = []domain.Heir{
		{Name: "Lucía", Relationship: "hija", IsMinor: true},
		// Guardian on an adult heir must not count.
		{Name: "Pablo", Relationship: "hijo", GuardianName: "Alguien"},
	}

	fam := normalizer.Normalize(raw).FamilySituation
	if !fam.HasMinorHeirs {
		t.Error("expected minor heirs")
	}
	if fam.HasGuardianDesignated {
		t.Error("guardian on a non-minor heir must not count as designated")
	}
}

func TestNormalizeRiskFactors(t *testing.T) {
	risks := normalizer.Normalize(baseSubmission()).RiskFactors
	if !risks.HasNoWill {
		t.Error("expected hasNoWill")
	}
	if risks.HasNoLifeInsurance {
		t.Error("life insurance is present, hasNoLifeInsurance must be false")
	}
	if !risks.HasDependents {
		t.Error("expected hasDependents")
	}
	// 120000 <= 0.5 * 350000 → not significant
	if risks.SignificantDebt {
		t.Error("debt at ~34%% of assets must not be significant")
	}
}

func TestSignificantDebtThreshold(t *testing.T) {
	cases := []struct {
		name        string
		assets      float64
		debts       float64
		significant bool
	}{
		{"well below", 100000, 20000, false},
		{"exactly half", 100000, 50000, false},
		{"just above half", 100000, 50001, true},
		{"no assets some debt", 0, 1, true},
		{"no assets no debt", 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := baseSubmission()
			raw.Assets = []domain.Asset{{Type: "otro", Description: "x", EstimatedValue: f(tc.assets)}}
			raw.Debts = []domain.Debt{{Type: "otro", Description: "y", Amount: tc.debts}}

			got := normalizer.Normalize(raw).RiskFactors.SignificantDebt
			if got != tc.significant {
				t.Errorf("significantDebt = %v, want %v", got, tc.significant)
			}
		})
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	raw := baseSubmission()
	a := normalizer.Normalize(raw)
	b := normalizer.Normalize(raw)
	if !reflect.DeepEqual(a, b) {
		t.Error("two normalizations of identical input differ")
	}
	if a.RawData != raw {
		t.Error("raw submission must be retained verbatim")
	}
}

func TestDistributionExplicitPercentages(t *testing.T) {
	heirs := []domain.Heir{
		{Name: "A", Relationship: "hijo", Percentage: f(60)},
		{Name: "B", Relationship: "hija", Percentage: f(30)},
		{Name: "C", Relationship: "otro"}, // no percentage, omitted
	}
	dist := normalizer.Distribution(heirs)
	if len(dist) != 2 || dist["A"] != 60 || dist["B"] != 30 {
		t.Errorf("unexpected distribution: %v", dist)
	}
}

func TestDistributionZeroPercentageIsUnset(t *testing.T) {
	heirs := []domain.Heir{
		{Name: "A", Relationship: "hijo", Percentage: f(60)},
		{Name: "B", Relationship: "hija", Percentage: f(0)}, // zero counts as unset
	}
	dist := normalizer.Distribution(heirs)
	if len(dist) != 1 || dist["A"] != 60 {
		t.Errorf("unexpected distribution: %v", dist)
	}
	if _, ok := dist["B"]; ok {
		t.Error("heir with a zero percentage must be omitted")
	}

	// All zeros → nobody declared a share, fall back to the equal split.
	allZero := []domain.Heir{
		{Name: "A", Relationship: "hijo", Percentage: f(0)},
		{Name: "B", Relationship: "hija", Percentage: f(0)},
	}
	dist = normalizer.Distribution(allZero)
	if dist["A"] != 50 || dist["B"] != 50 {
		t.Errorf("all-zero percentages must split equally, got %v", dist)
	}
}

func TestDistributionEqualSplit(t *testing.T) {
	heirs := []domain.Heir{
		{Name: "A", Relationship: "hijo"},
		{Name: "B", Relationship: "hija"},
		{Name: "C", Relationship: "conyuge"},
		{Name: "D", Relationship: "otro"},
	}
	dist := normalizer.Distribution(heirs)
	for name, share := range dist {
		if share != 25 {
			t.Errorf("share for %s = %v, want 25", name, share)
		}
	}
}

func TestSummaryTextListsRisks(t *testing.T) {
	text := normalizer.SummaryText(normalizer.Normalize(baseSubmission()))
	for _, want := range []string{"María García López", "Sin testamento", "Personas dependientes"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary text missing %q", want)
		}
	}
	if strings.Contains(text, "Sin seguro de vida") {
		t.Error("summary lists a risk that is not present")
	}
}
