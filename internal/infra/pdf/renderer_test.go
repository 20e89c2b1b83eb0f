package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/legadokit/legado-agent-go/internal/domain"
)

func sampleInputs() (*domain.GeneratedReport, *domain.NormalizedSummary) {
	report := &domain.GeneratedReport{
		RiskScore:       85,
		RiskLevel:       domain.RiskCritical,
		RiskExplanation: "Su situación presenta riesgos importantes que requieren atención inmediata.",
		ActionRoadmap: []domain.ActionStep{
			{Step: 1, Title: "Otorgar testamento", Description: "Acuda a un notario.", Priority: "alta", EstimatedTime: "1-2 semanas"},
			{Step: 2, Title: "Contratar seguro de vida", Description: "Compare pólizas.", Priority: "media", EstimatedTime: "1 mes"},
		},
		WillDraft: "TESTAMENTO\n\nYo, María García...",
		CountryGuidance: domain.CountryGuidance{
			Country:            domain.CountryES,
			LegalRequirements:  []string{"Ser mayor de 14 años"},
			NotaryProcess:      "1. Solicitar cita con notario",
			EstimatedCost:      "€50 - €200",
			EstimatedTimeframe: "1-2 semanas",
			ImportantNotes:     []string{"Es un borrador"},
			Resources:          []string{"www.notariado.org"},
		},
		GeneratedAt: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	}
	summary := &domain.NormalizedSummary{
		PersonalInfo: domain.PersonalInfo{
			FullName:      "María García López",
			Age:           45,
			Country:       domain.CountryES,
			MaritalStatus: "casado",
		},
		FinancialSummary: domain.FinancialSummary{
			TotalAssets: 350000, TotalDebts: 120000, NetWorth: 230000,
		},
		FamilySituation: domain.FamilySituation{HeirsCount: 2},
	}
	return report, summary
}

func TestRenderProducesPDF(t *testing.T) {
	report, summary := sampleInputs()

	out, err := NewRenderer().Render(report, summary, "es")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output does not start with the PDF magic bytes")
	}
	if len(out) < 1000 {
		t.Errorf("document suspiciously small: %d bytes", len(out))
	}
}

func TestRenderEnglishAndFallbackLanguage(t *testing.T) {
	report, summary := sampleInputs()

	for _, lang := range []string{"en", "fr"} {
		out, err := NewRenderer().Render(report, summary, lang)
		if err != nil {
			t.Fatalf("render (%s) failed: %v", lang, err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF")) {
			t.Errorf("render (%s): not a PDF", lang)
		}
	}
}

func TestRenderFallbackReportWithoutWillDraft(t *testing.T) {
	report, summary := sampleInputs()
	report.WillDraft = ""
	report.ActionRoadmap = []domain.ActionStep{}

	out, err := NewRenderer().Render(report, summary, "es")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output does not start with the PDF magic bytes")
	}
}
