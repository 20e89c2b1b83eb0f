// Package willtpl renders the base will draft for a submission. Spain and
// Mexico have jurisdiction-specific clause structures; every other country
// shares a generic draft. The output is always a non-binding draft that
// must be formalized before a local notary.
package willtpl

import (
	"fmt"
	"strings"
	"time"

	"github.com/legadokit/legado-agent-go/internal/domain"
)

const guardianPlaceholder = "[ESPECIFICAR TUTOR]"

// Draft renders the will draft for a submission. The now argument pins
// the document date so callers stay reproducible.
func Draft(raw *domain.RawSubmission, now time.Time) string {
	switch raw.Country {
	case domain.CountryES:
		return spainDraft(raw, now)
	case domain.CountryMX:
		return mexicoDraft(raw, now)
	default:
		return genericDraft(raw, now)
	}
}

func spainDraft(raw *domain.RawSubmission, now time.Time) string {
	var b strings.Builder

	b.WriteString("TESTAMENTO\n\n")
	b.WriteString("IDENTIFICACIÓN DEL TESTADOR\n")
	fmt.Fprintf(&b, "Yo, %s, mayor de edad, de %d años, con domicilio en España, en pleno uso de mis facultades mentales y sin coacción alguna, otorgo mi TESTAMENTO conforme a las siguientes cláusulas:\n\n", raw.FullName, raw.Age)

	b.WriteString("PRIMERA - REVOCACIÓN\n")
	b.WriteString("Revoco todos los testamentos, codicilos y demás disposiciones testamentarias que haya otorgado con anterioridad a la fecha del presente testamento.\n\n")

	b.WriteString("SEGUNDA - ESTADO CIVIL Y FAMILIA\n")
	fmt.Fprintf(&b, "Declaro mi estado civil como %s%s.\n\n", raw.MaritalStatus, childrenClause(raw))

	b.WriteString("TERCERA - INSTITUCIÓN DE HEREDEROS\n")
	b.WriteString("Instituyo como heredero(s) de todos mis bienes, derechos y acciones, presentes y futuros, a:\n\n")
	writeHeirList(&b, raw.Heirs, " - %g%% de mi herencia")

	if hasMinor(raw.Heirs) {
		b.WriteString("\nCUARTA - TUTELA DE MENORES\n")
		fmt.Fprintf(&b, "Para el caso de que alguno de mis herederos sea menor de edad al momento de mi fallecimiento, designo como tutor legal a %s.\n", minorGuardian(raw.Heirs))
	}
	if raw.HasExecutor {
		b.WriteString("\nQUINTA - ALBACEA\n")
		fmt.Fprintf(&b, "Nombro como albacea ejecutor de este testamento a %s, con las más amplias facultades que en derecho procedan, para el cumplimiento de mis últimas voluntades.\n", raw.ExecutorName)
	}

	b.WriteString("\nSEXTA - NORMAS SUPLETORIAS\n")
	b.WriteString("Para todo lo no previsto en este testamento, se aplicará lo dispuesto en el Código Civil español y sus normas complementarias.\n\n")
	b.WriteString("SÉPTIMA - DECLARACIÓN\n")
	b.WriteString("Declaro que este testamento refleja mi última voluntad y que lo otorgo sin vicio alguno de consentimiento.\n\n")
	b.WriteString("IMPORTANTE: Este es un BORRADOR de testamento que debe ser revisado y validado por un notario español. No tiene validez legal hasta que sea formalizado ante notario conforme al Código Civil español.\n\n")

	writeSignature(&b, raw.FullName, now)
	return b.String()
}

func mexicoDraft(raw *domain.RawSubmission, now time.Time) string {
	var b strings.Builder

	b.WriteString("TESTAMENTO PÚBLICO ABIERTO\n\n")
	b.WriteString("IDENTIFICACIÓN DEL TESTADOR\n")
	fmt.Fprintf(&b, "Yo, %s, de %d años de edad, con domicilio en México, en pleno uso de mis facultades mentales y actuando de manera libre y voluntaria, otorgo el presente TESTAMENTO conforme a las siguientes cláusulas:\n\n", raw.FullName, raw.Age)

	b.WriteString("PRIMERA - REVOCACIÓN\n")
	b.WriteString("Revoco cualquier testamento o disposición testamentaria anterior a la presente fecha.\n\n")

	b.WriteString("SEGUNDA - DATOS PERSONALES\n")
	fmt.Fprintf(&b, "Declaro ser de estado civil %s%s.\n\n", raw.MaritalStatus, childrenClause(raw))

	b.WriteString("TERCERA - INSTITUCIÓN DE HEREDEROS\n")
	b.WriteString("Instituyo como mis herederos universales a:\n\n")
	writeHeirList(&b, raw.Heirs, " - %g%%")

	if hasMinor(raw.Heirs) {
		b.WriteString("\nCUARTA - TUTELA\n")
		fmt.Fprintf(&b, "Designo como tutor de mis hijos menores de edad a %s.\n", minorGuardian(raw.Heirs))
	}
	if raw.HasExecutor {
		b.WriteString("\nQUINTA - ALBACEA\n")
		fmt.Fprintf(&b, "Nombro como albacea a %s, con las más amplias facultades para ejecutar este testamento.\n", raw.ExecutorName)
	}

	b.WriteString("\nSEXTA - DISPOSICIONES FINALES\n")
	b.WriteString("Este testamento se rige por las disposiciones del Código Civil aplicable en México.\n\n")
	b.WriteString("ADVERTENCIA LEGAL: Este es un BORRADOR que debe ser formalizado ante Notario Público en México. No tiene validez legal hasta su protocolización notarial.\n\n")

	writeSignature(&b, raw.FullName, now)
	return b.String()
}

func genericDraft(raw *domain.RawSubmission, now time.Time) string {
	name := raw.Country.Name()
	var b strings.Builder

	b.WriteString("TESTAMENTO\n\n")
	fmt.Fprintf(&b, "En %s, a %s\n\n", name, now.Format("02/01/2006"))

	b.WriteString("DATOS DEL TESTADOR\n")
	fmt.Fprintf(&b, "Yo, %s, de %d años de edad, en pleno uso de mis facultades mentales, declaro lo siguiente:\n\n", raw.FullName, raw.Age)

	b.WriteString("1. REVOCACIÓN\n")
	b.WriteString("Revoco todo testamento anterior.\n\n")

	b.WriteString("2. ESTADO CIVIL\n")
	fmt.Fprintf(&b, "Mi estado civil es: %s\n", raw.MaritalStatus)
	if raw.HasChildren {
		fmt.Fprintf(&b, "Tengo %d hijo(s).\n\n", raw.NumberOfChildren)
	} else {
		b.WriteString("No tengo hijos.\n\n")
	}

	b.WriteString("3. HEREDEROS\n")
	b.WriteString("Designo como herederos a:\n")
	writeHeirList(&b, raw.Heirs, " (%g%%)")

	section := 4
	if hasMinor(raw.Heirs) {
		fmt.Fprintf(&b, "\n%d. TUTELA\n", section)
		fmt.Fprintf(&b, "Designo como tutor de menores a: %s\n", minorGuardian(raw.Heirs))
		section++
	}
	if raw.HasExecutor {
		fmt.Fprintf(&b, "\n%d. ALBACEA\n", section)
		fmt.Fprintf(&b, "Nombro como albacea a: %s\n", raw.ExecutorName)
	}

	fmt.Fprintf(&b, "\nIMPORTANTE: Este es un BORRADOR educativo. Debe ser revisado por un abogado local y formalizado ante notario público en %s según las leyes vigentes.\n\n", name)

	b.WriteString("Firma: _______________________\n")
	b.WriteString(raw.FullName)
	return b.String()
}

func childrenClause(raw *domain.RawSubmission) string {
	if !raw.HasChildren {
		return ""
	}
	return fmt.Sprintf(", y tengo %d hijo(s)", raw.NumberOfChildren)
}

// writeHeirList appends one numbered line per heir. pctFormat formats the
// percentage suffix and must contain a single %g verb.
func writeHeirList(b *strings.Builder, heirs []domain.Heir, pctFormat string) {
	for i := range heirs {
		fmt.Fprintf(b, "%d. %s (%s)", i+1, heirs[i].Name, heirs[i].Relationship)
		if heirs[i].Percentage != nil {
			fmt.Fprintf(b, pctFormat, *heirs[i].Percentage)
		}
		b.WriteString("\n")
	}
}

func hasMinor(heirs []domain.Heir) bool {
	for i := range heirs {
		if heirs[i].IsMinor {
			return true
		}
	}
	return false
}

// minorGuardian returns the guardian named for the first minor heir, or
// a placeholder for the notary to fill in.
func minorGuardian(heirs []domain.Heir) string {
	for i := range heirs {
		if heirs[i].IsMinor && heirs[i].GuardianName != "" {
			return heirs[i].GuardianName
		}
	}
	return guardianPlaceholder
}

func writeSignature(b *strings.Builder, fullName string, now time.Time) {
	fmt.Fprintf(b, "Fecha: %s\n", now.Format("02/01/2006"))
	b.WriteString("Firma: _______________________\n")
	b.WriteString(fullName)
}
