// Package pdf renders a generated report into the A4 PDF document that
// is mailed to the user and uploaded to storage.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/legadokit/legado-agent-go/internal/domain"
)

const (
	pageMargin = 20.0
	pageWidth  = 210.0
	contentW   = pageWidth - 2*pageMargin
)

type labels struct {
	title, disclaimer1, disclaimer2                        string
	section1, section2, section3, section4                 string
	section5, section6                                     string
	name, age, years, country, maritalStatus, reportDate   string
	step, priority, estimatedTime                          string
	netWorth, totalAssets, totalDebts, heirsCount          string
	willDisclaimer                                         string
	legalRequirements, notaryProcess, estimatedCost        string
	estimatedTimeframe, importantNotes, resources          string
	page, of, generatedOn                                  string
}

var translations = map[string]labels{
	"es": {
		title:              "INFORME DE PROTECCIÓN DEL LEGADO",
		disclaimer1:        "IMPORTANTE: Este documento es un KIT EDUCATIVO y NO constituye",
		disclaimer2:        "asesoramiento legal oficial. Debe ser revisado por un abogado especializado.",
		section1:           "1. INFORMACIÓN PERSONAL",
		section2:           "2. EVALUACIÓN DE RIESGO",
		section3:           "3. PLAN DE ACCIÓN RECOMENDADO",
		section4:           "4. RESUMEN FINANCIERO",
		section5:           "5. BORRADOR DE TESTAMENTO",
		section6:           "6. GUÍA PARA FORMALIZACIÓN LEGAL",
		name:               "Nombre",
		age:                "Edad",
		years:              "años",
		country:            "País",
		maritalStatus:      "Estado civil",
		reportDate:         "Fecha del informe",
		step:               "Paso",
		priority:           "Prioridad",
		estimatedTime:      "Tiempo estimado",
		netWorth:           "Patrimonio neto",
		totalAssets:        "Total activos",
		totalDebts:         "Total deudas",
		heirsCount:         "Número de herederos designados",
		willDisclaimer:     "Este borrador debe ser revisado por un abogado y formalizado ante notario",
		legalRequirements:  "Requisitos legales:",
		notaryProcess:      "Proceso notarial:",
		estimatedCost:      "Costos estimados:",
		estimatedTimeframe: "Tiempo estimado:",
		importantNotes:     "Notas importantes:",
		resources:          "Recursos útiles:",
		page:               "Página",
		of:                 "de",
		generatedOn:        "Generado el",
	},
	"en": {
		title:              "LEGACY PROTECTION REPORT",
		disclaimer1:        "IMPORTANT: This document is an EDUCATIONAL KIT and does NOT constitute",
		disclaimer2:        "official legal advice. It must be reviewed by a specialized lawyer.",
		section1:           "1. PERSONAL INFORMATION",
		section2:           "2. RISK ASSESSMENT",
		section3:           "3. RECOMMENDED ACTION PLAN",
		section4:           "4. FINANCIAL SUMMARY",
		section5:           "5. WILL DRAFT",
		section6:           "6. LEGAL FORMALIZATION GUIDE",
		name:               "Name",
		age:                "Age",
		years:              "years",
		country:            "Country",
		maritalStatus:      "Marital status",
		reportDate:         "Report date",
		step:               "Step",
		priority:           "Priority",
		estimatedTime:      "Estimated time",
		netWorth:           "Net worth",
		totalAssets:        "Total assets",
		totalDebts:         "Total debts",
		heirsCount:         "Number of designated heirs",
		willDisclaimer:     "This draft must be reviewed by a lawyer and formalized before a notary",
		legalRequirements:  "Legal requirements:",
		notaryProcess:      "Notary process:",
		estimatedCost:      "Estimated costs:",
		estimatedTimeframe: "Estimated timeframe:",
		importantNotes:     "Important notes:",
		resources:          "Useful resources:",
		page:               "Page",
		of:                 "of",
		generatedOn:        "Generated on",
	},
}

// Renderer produces the report PDF. Stateless and safe for concurrent use.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render builds the six-section report document.
func (r *Renderer) Render(report *domain.GeneratedReport, summary *domain.NormalizedSummary, language string) ([]byte, error) {
	t, ok := translations[language]
	if !ok {
		t = translations["es"]
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AliasNbPages("")

	tr := doc.UnicodeTranslatorFromDescriptor("")
	dateStamp := report.GeneratedAt.Format("02/01/2006")

	doc.SetFooterFunc(func() {
		doc.SetY(-12)
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(128, 128, 128)
		footer := fmt.Sprintf("%s %d %s {nb} | %s %s", t.page, doc.PageNo(), t.of, t.generatedOn, dateStamp)
		doc.CellFormat(0, 6, tr(footer), "", 0, "C", false, 0, "")
		doc.SetTextColor(0, 0, 0)
	})

	doc.AddPage()

	// Title
	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(contentW, 12, tr(t.title), "", 1, "C", false, 0, "")
	doc.Ln(3)

	// Disclaimer banner
	doc.SetFillColor(243, 156, 18)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 9)
	doc.CellFormat(contentW, 6, tr(t.disclaimer1), "", 1, "L", true, 0, "")
	doc.CellFormat(contentW, 6, tr(t.disclaimer2), "", 1, "L", true, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.Ln(5)

	// 1. Personal information
	addSection(doc, tr, t.section1)
	addText(doc, tr, fmt.Sprintf("%s: %s", t.name, summary.PersonalInfo.FullName), 10, false)
	addText(doc, tr, fmt.Sprintf("%s: %d %s", t.age, summary.PersonalInfo.Age, t.years), 10, false)
	addText(doc, tr, fmt.Sprintf("%s: %s", t.country, summary.PersonalInfo.Country.Name()), 10, false)
	addText(doc, tr, fmt.Sprintf("%s: %s", t.maritalStatus, summary.PersonalInfo.MaritalStatus), 10, false)
	addText(doc, tr, fmt.Sprintf("%s: %s", t.reportDate, dateStamp), 10, false)

	// 2. Risk assessment with colored score block
	addSection(doc, tr, t.section2)
	cr, cg, cb := riskColor(report.RiskLevel)
	doc.SetFillColor(cr, cg, cb)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 24)
	y := doc.GetY()
	doc.Rect(pageMargin, y, 40, 25, "F")
	doc.SetXY(pageMargin, y+4)
	doc.CellFormat(40, 10, fmt.Sprintf("%d", report.RiskScore), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "B", 10)
	doc.SetX(pageMargin)
	doc.CellFormat(40, 6, tr(strings.ToUpper(string(report.RiskLevel))), "", 1, "C", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.SetY(y + 30)
	addText(doc, tr, report.RiskExplanation, 10, false)

	// 3. Action roadmap
	addSection(doc, tr, t.section3)
	for _, action := range report.ActionRoadmap {
		addText(doc, tr, fmt.Sprintf("%s %d: %s", t.step, action.Step, action.Title), 11, true)
		addText(doc, tr, fmt.Sprintf("%s: %s | %s: %s", t.priority, strings.ToUpper(action.Priority), t.estimatedTime, action.EstimatedTime), 9, false)
		addText(doc, tr, action.Description, 10, false)
		doc.Ln(1)
	}

	// 4. Financial summary
	addSection(doc, tr, t.section4)
	addText(doc, tr, fmt.Sprintf("%s: €%.2f", t.netWorth, summary.FinancialSummary.NetWorth), 10, false)
	addText(doc, tr, fmt.Sprintf("%s: €%.2f", t.totalAssets, summary.FinancialSummary.TotalAssets), 10, false)
	addText(doc, tr, fmt.Sprintf("%s: €%.2f", t.totalDebts, summary.FinancialSummary.TotalDebts), 10, false)
	addText(doc, tr, fmt.Sprintf("%s: %d", t.heirsCount, summary.FamilySituation.HeirsCount), 10, false)

	// 5. Will draft (own page, skipped when empty)
	if report.WillDraft != "" {
		doc.AddPage()
		addSection(doc, tr, t.section5)
		doc.SetFillColor(255, 240, 240)
		doc.SetTextColor(200, 0, 0)
		doc.SetFont("Helvetica", "", 9)
		doc.CellFormat(contentW, 8, tr(t.willDisclaimer), "", 1, "L", true, 0, "")
		doc.SetTextColor(0, 0, 0)
		doc.Ln(3)
		addText(doc, tr, report.WillDraft, 9, false)
	}

	// 6. Country guidance (own page)
	doc.AddPage()
	addSection(doc, tr, t.section6)

	addText(doc, tr, t.legalRequirements, 11, true)
	for _, req := range report.CountryGuidance.LegalRequirements {
		addText(doc, tr, "- "+req, 9, false)
	}

	doc.Ln(1)
	addText(doc, tr, t.notaryProcess, 11, true)
	addText(doc, tr, report.CountryGuidance.NotaryProcess, 9, false)

	doc.Ln(1)
	addText(doc, tr, t.estimatedCost, 11, true)
	addText(doc, tr, report.CountryGuidance.EstimatedCost, 9, false)

	doc.Ln(1)
	addText(doc, tr, t.estimatedTimeframe, 11, true)
	addText(doc, tr, report.CountryGuidance.EstimatedTimeframe, 9, false)

	if len(report.CountryGuidance.ImportantNotes) > 0 {
		doc.Ln(1)
		addText(doc, tr, t.importantNotes, 11, true)
		for _, note := range report.CountryGuidance.ImportantNotes {
			addText(doc, tr, "- "+note, 9, false)
		}
	}

	if len(report.CountryGuidance.Resources) > 0 {
		doc.Ln(1)
		addText(doc, tr, t.resources, 11, true)
		for _, resource := range report.CountryGuidance.Resources {
			addText(doc, tr, "- "+resource, 9, false)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, &domain.ErrRendering{Err: err}
	}
	return buf.Bytes(), nil
}

// addSection draws the blue section header bar.
func addSection(doc *fpdf.Fpdf, tr func(string) string, title string) {
	doc.Ln(3)
	doc.SetFillColor(41, 128, 185)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(contentW, 8, tr(" "+title), "", 1, "L", true, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.Ln(2)
}

// addText writes wrapped body text; fpdf handles page breaks.
func addText(doc *fpdf.Fpdf, tr func(string) string, text string, size float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	doc.SetFont("Helvetica", style, size)
	doc.MultiCell(contentW, size*0.5, tr(text), "", "L", false)
	doc.Ln(1)
}

func riskColor(level domain.RiskLevel) (int, int, int) {
	switch level {
	case domain.RiskLow:
		return 46, 204, 113
	case domain.RiskMedium:
		return 241, 196, 15
	case domain.RiskHigh:
		return 230, 126, 34
	case domain.RiskCritical:
		return 231, 76, 60
	default:
		return 149, 165, 166
	}
}
