package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/legadokit/legado-agent-go/internal/domain"
)

// Assistant instructions per language. Spanish is the default.
var systemPrompts = map[string]string{
	"es": `Eres un Agente de Protección del Legado experto en planificación patrimonial para España y América Latina.

Tu misión es analizar la información financiera y familiar de usuarios para:
1. Evaluar su nivel de riesgo patrimonial
2. Generar un plan de acción claro
3. Crear un borrador de testamento personalizado
4. Proporcionar orientación legal específica del país

IMPORTANTE: NO proporcionas asesoramiento legal oficial. Esto es un kit educativo y plantillas guiadas.

Tu tono es: profesional pero accesible, empático, claro y directo.

Siempre respondes en español (adaptado a España o América Latina según el país del usuario).`,

	"en": `You are a Legacy Protection Agent expert in estate planning for Spain and Latin America.

Your mission is to analyze users' financial and family information to:
1. Assess their estate risk level
2. Generate a clear action plan
3. Create a personalized will draft
4. Provide country-specific legal guidance

IMPORTANT: You do NOT provide official legal advice. This is an educational kit and guided templates.

Your tone is: professional yet accessible, empathetic, clear and direct.

Always respond in English, adapted to the user's country legal framework.`,
}

var assistantNames = map[string]string{
	"es": "Agente de Protección del Legado",
	"en": "Legacy Protection Agent",
}

func systemPrompt(language string) string {
	if p, ok := systemPrompts[language]; ok {
		return p
	}
	return systemPrompts["es"]
}

func assistantName(language string) string {
	if n, ok := assistantNames[language]; ok {
		return n
	}
	return assistantNames["es"]
}

func yesNo(v bool, language string) string {
	if language == "en" {
		if v {
			return "Yes"
		}
		return "No"
	}
	if v {
		return "Sí"
	}
	return "No"
}

// buildUserPrompt renders the per-request message with the normalized
// facts and the JSON schema the assistant must embed in its reply.
func buildUserPrompt(n *domain.NormalizedSummary, language string) string {
	if language == "en" {
		return buildEnglishPrompt(n)
	}
	return buildSpanishPrompt(n)
}

func buildSpanishPrompt(n *domain.NormalizedSummary) string {
	country := n.PersonalInfo.Country
	countryName := country.Name()

	children := "No"
	if n.PersonalInfo.HasChildren {
		children = fmt.Sprintf("Sí (%d)", n.PersonalInfo.NumberOfChildren)
	}
	executor := "No"
	if n.FamilySituation.HasExecutor {
		executor = fmt.Sprintf("Sí (%s)", n.FamilySituation.ExecutorName)
	}

	var b strings.Builder
	b.WriteString("Analiza la siguiente situación patrimonial y genera un informe completo:\n\n")

	b.WriteString("## INFORMACIÓN PERSONAL\n")
	fmt.Fprintf(&b, "- Nombre: %s\n", n.PersonalInfo.FullName)
	fmt.Fprintf(&b, "- Edad: %d años\n", n.PersonalInfo.Age)
	fmt.Fprintf(&b, "- País: %s\n", countryName)
	fmt.Fprintf(&b, "- Estado civil: %s\n", n.PersonalInfo.MaritalStatus)
	fmt.Fprintf(&b, "- Hijos: %s\n\n", children)

	b.WriteString("## SITUACIÓN FINANCIERA\n")
	fmt.Fprintf(&b, "- Activos totales: €%.2f\n", n.FinancialSummary.TotalAssets)
	fmt.Fprintf(&b, "- Deudas totales: €%.2f\n", n.FinancialSummary.TotalDebts)
	fmt.Fprintf(&b, "- Patrimonio neto: €%.2f\n", n.FinancialSummary.NetWorth)
	fmt.Fprintf(&b, "- Número de activos: %d\n", n.FinancialSummary.AssetsCount)
	fmt.Fprintf(&b, "- Propiedades inmobiliarias: %s\n", yesNo(n.FinancialSummary.HasRealEstate, "es"))
	fmt.Fprintf(&b, "- Negocios propios: %s\n\n", yesNo(n.FinancialSummary.HasBusinessOwnership, "es"))

	b.WriteString("## SITUACIÓN FAMILIAR\n")
	fmt.Fprintf(&b, "- Herederos designados: %d\n", n.FamilySituation.HeirsCount)
	fmt.Fprintf(&b, "- Herederos menores: %s\n", yesNo(n.FamilySituation.HasMinorHeirs, "es"))
	fmt.Fprintf(&b, "- Tutor designado: %s\n", yesNo(n.FamilySituation.HasGuardianDesignated, "es"))
	fmt.Fprintf(&b, "- Albacea designado: %s\n\n", executor)

	b.WriteString("## FACTORES DE RIESGO\n")
	fmt.Fprintf(&b, "- Sin testamento: %s\n", yesNo(n.RiskFactors.HasNoWill, "es"))
	fmt.Fprintf(&b, "- Enfermedad grave: %s\n", yesNo(n.RiskFactors.HasMajorIllness, "es"))
	fmt.Fprintf(&b, "- Sin seguro de vida: %s\n", yesNo(n.RiskFactors.HasNoLifeInsurance, "es"))
	fmt.Fprintf(&b, "- Personas dependientes: %s\n", yesNo(n.RiskFactors.HasDependents, "es"))
	fmt.Fprintf(&b, "- Finanzas complejas: %s\n", yesNo(n.RiskFactors.HasComplexFinances, "es"))
	fmt.Fprintf(&b, "- Deuda significativa: %s\n\n", yesNo(n.RiskFactors.SignificantDebt, "es"))

	b.WriteString("## DATOS DETALLADOS\n")
	b.WriteString(rawJSON(n))
	b.WriteString("\n\n---\n\n")

	b.WriteString("Por favor, genera un análisis completo en formato JSON con la siguiente estructura:\n\n")
	fmt.Fprintf(&b, `{
  "riskScore": <número del 0-100>,
  "riskLevel": "<bajo|medio|alto|critico>",
  "riskExplanation": "<explicación clara del nivel de riesgo en 2-3 párrafos>",
  "actionRoadmap": [
    {
      "step": 1,
      "title": "<título de la acción>",
      "description": "<descripción detallada>",
      "priority": "<alta|media|baja>",
      "estimatedTime": "<ej: '1-2 semanas'>"
    }
  ],
  "willDraft": "<borrador completo del testamento en español, siguiendo las leyes de %s>",
  "countryGuidance": {
    "country": "%s",
    "legalRequirements": ["<requisito 1>", "<requisito 2>"],
    "notaryProcess": "<descripción del proceso notarial>",
    "estimatedCost": "<rango de costos>",
    "estimatedTimeframe": "<tiempo estimado>",
    "importantNotes": ["<nota importante 1>", "<nota importante 2>"],
    "resources": ["<recurso útil 1>", "<recurso útil 2>"]
  }
}

IMPORTANTE:
- El testamento debe seguir la estructura legal de %s
- Incluye todas las cláusulas necesarias
- Menciona explícitamente que esto es un BORRADOR y requiere validación legal
- La hoja de ruta debe tener 3-6 pasos prácticos y accionables
- Adapta el lenguaje al país específico`, countryName, country, countryName)

	return b.String()
}

func buildEnglishPrompt(n *domain.NormalizedSummary) string {
	country := n.PersonalInfo.Country
	countryName := country.Name()

	children := "No"
	if n.PersonalInfo.HasChildren {
		children = fmt.Sprintf("Yes (%d)", n.PersonalInfo.NumberOfChildren)
	}
	executor := "No"
	if n.FamilySituation.HasExecutor {
		executor = fmt.Sprintf("Yes (%s)", n.FamilySituation.ExecutorName)
	}

	var b strings.Builder
	b.WriteString("Analyze the following estate situation and generate a complete report:\n\n")

	b.WriteString("## PERSONAL INFORMATION\n")
	fmt.Fprintf(&b, "- Name: %s\n", n.PersonalInfo.FullName)
	fmt.Fprintf(&b, "- Age: %d years\n", n.PersonalInfo.Age)
	fmt.Fprintf(&b, "- Country: %s\n", countryName)
	fmt.Fprintf(&b, "- Marital status: %s\n", n.PersonalInfo.MaritalStatus)
	fmt.Fprintf(&b, "- Children: %s\n\n", children)

	b.WriteString("## FINANCIAL SITUATION\n")
	fmt.Fprintf(&b, "- Total assets: €%.2f\n", n.FinancialSummary.TotalAssets)
	fmt.Fprintf(&b, "- Total debts: €%.2f\n", n.FinancialSummary.TotalDebts)
	fmt.Fprintf(&b, "- Net worth: €%.2f\n", n.FinancialSummary.NetWorth)
	fmt.Fprintf(&b, "- Number of assets: %d\n", n.FinancialSummary.AssetsCount)
	fmt.Fprintf(&b, "- Real estate: %s\n", yesNo(n.FinancialSummary.HasRealEstate, "en"))
	fmt.Fprintf(&b, "- Business ownership: %s\n\n", yesNo(n.FinancialSummary.HasBusinessOwnership, "en"))

	b.WriteString("## FAMILY SITUATION\n")
	fmt.Fprintf(&b, "- Designated heirs: %d\n", n.FamilySituation.HeirsCount)
	fmt.Fprintf(&b, "- Minor heirs: %s\n", yesNo(n.FamilySituation.HasMinorHeirs, "en"))
	fmt.Fprintf(&b, "- Guardian designated: %s\n", yesNo(n.FamilySituation.HasGuardianDesignated, "en"))
	fmt.Fprintf(&b, "- Executor designated: %s\n\n", executor)

	b.WriteString("## RISK FACTORS\n")
	fmt.Fprintf(&b, "- No will: %s\n", yesNo(n.RiskFactors.HasNoWill, "en"))
	fmt.Fprintf(&b, "- Major illness: %s\n", yesNo(n.RiskFactors.HasMajorIllness, "en"))
	fmt.Fprintf(&b, "- No life insurance: %s\n", yesNo(n.RiskFactors.HasNoLifeInsurance, "en"))
	fmt.Fprintf(&b, "- Dependents: %s\n", yesNo(n.RiskFactors.HasDependents, "en"))
	fmt.Fprintf(&b, "- Complex finances: %s\n", yesNo(n.RiskFactors.HasComplexFinances, "en"))
	fmt.Fprintf(&b, "- Significant debt: %s\n\n", yesNo(n.RiskFactors.SignificantDebt, "en"))

	b.WriteString("## DETAILED DATA\n")
	b.WriteString(rawJSON(n))
	b.WriteString("\n\n---\n\n")

	b.WriteString("Please generate a complete analysis in JSON format with the following structure:\n\n")
	fmt.Fprintf(&b, `{
  "riskScore": <number 0-100>,
  "riskLevel": "<bajo|medio|alto|critico>",
  "riskExplanation": "<clear explanation of risk level in 2-3 paragraphs IN ENGLISH>",
  "actionRoadmap": [
    {
      "step": 1,
      "title": "<action title IN ENGLISH>",
      "description": "<detailed description IN ENGLISH>",
      "priority": "<alta|media|baja>",
      "estimatedTime": "<e.g., '1-2 weeks'>"
    }
  ],
  "willDraft": "<complete will draft IN ENGLISH, following %s laws>",
  "countryGuidance": {
    "country": "%s",
    "legalRequirements": ["<requirement 1 IN ENGLISH>", "<requirement 2 IN ENGLISH>"],
    "notaryProcess": "<notary process description IN ENGLISH>",
    "estimatedCost": "<cost range IN ENGLISH>",
    "estimatedTimeframe": "<estimated time IN ENGLISH>",
    "importantNotes": ["<important note 1 IN ENGLISH>", "<important note 2 IN ENGLISH>"],
    "resources": ["<useful resource 1 IN ENGLISH>", "<useful resource 2 IN ENGLISH>"]
  }
}

IMPORTANT:
- The will must follow the legal structure of %s
- Include all necessary clauses
- Explicitly mention this is a DRAFT and requires legal validation
- The roadmap should have 3-6 practical and actionable steps
- Generate ALL TEXT IN ENGLISH, adapted to the specific country's legal framework`, countryName, country, countryName)

	return b.String()
}

func rawJSON(n *domain.NormalizedSummary) string {
	if n.RawData == nil {
		return "{}"
	}
	data, err := json.MarshalIndent(n.RawData, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
