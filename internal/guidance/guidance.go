// Package guidance holds the per-jurisdiction reference material on will
// execution: legal requirements, the notary process, costs and resources.
// Spain, Mexico and Argentina carry hand-curated entries; the remaining
// countries share a generic process with localized cost figures.
package guidance

import (
	"fmt"

	"github.com/legadokit/legado-agent-go/internal/domain"
)

var detailed = map[domain.Country]domain.CountryGuidance{
	domain.CountryES: {
		Country: domain.CountryES,
		LegalRequirements: []string{
			"Ser mayor de 14 años y estar en pleno uso de facultades mentales",
			"El testamento debe otorgarse ante notario público",
			"Se requieren dos testigos si el testador no sabe firmar",
			"Debe incluir identificación completa del testador (DNI/NIE)",
			"Revocación expresa de testamentos anteriores",
		},
		NotaryProcess: `1. Solicitar cita con notario de su elección
2. Llevar DNI/NIE original
3. Explicar sus voluntades al notario
4. El notario redactará el testamento conforme a la ley
5. Lectura del documento ante el notario
6. Firma del testamento y del notario
7. El notario incorpora el testamento al Registro General de Actos de Última Voluntad`,
		EstimatedCost:      "€50 - €200 (según complejidad y notario)",
		EstimatedTimeframe: "1-2 semanas desde la solicitud de cita",
		ImportantNotes: []string{
			"El testamento notarial es la forma más segura en España",
			"Queda registrado en el Registro de Últimas Voluntades",
			"Puede modificarse en cualquier momento otorgando uno nuevo",
			"No es obligatorio informar a los herederos",
			"Respete la legítima de los herederos forzosos (hijos, padres)",
		},
		Resources: []string{
			"Consejo General del Notariado: www.notariado.org",
			"Registro de Últimas Voluntades - Ministerio de Justicia",
			"Código Civil español - Libro III, Título III",
		},
	},
	domain.CountryMX: {
		Country: domain.CountryMX,
		LegalRequirements: []string{
			"Ser mayor de 16 años",
			"Estar en pleno juicio y memoria",
			"Testamento público abierto ante notario (recomendado)",
			"Identificación oficial vigente",
			"Testigos en ciertos casos",
		},
		NotaryProcess: `1. Acudir a notaría pública de su localidad
2. Presentar identificación oficial (INE, pasaporte)
3. Manifestar su última voluntad ante el notario
4. El notario redacta el testamento
5. Lectura en voz alta del documento
6. Firma del testador, notario y testigos (si aplica)
7. Inscripción en el Archivo General de Notarías`,
		EstimatedCost:      "$1,000 - $5,000 MXN (varía por estado)",
		EstimatedTimeframe: "1-3 semanas",
		ImportantNotes: []string{
			"El testamento público abierto es el más común y seguro",
			"Existe también el testamento ológrafo (escrito a mano)",
			"Cada estado tiene su propio Código Civil",
			"Se recomienda actualizarlo cada 3-5 años",
			"En septiembre suele haber campañas de testamentos gratuitos",
		},
		Resources: []string{
			"Colegio Nacional del Notariado Mexicano",
			"Secretaría de Gobernación - Trámites testamentarios",
			"Instituto Mexicano del Notariado",
		},
	},
	domain.CountryAR: {
		Country: domain.CountryAR,
		LegalRequirements: []string{
			"Ser mayor de 18 años",
			"Capacidad mental plena",
			"Testamento por acto público ante escribano",
			"DNI vigente",
			"Dos testigos mayores de edad",
		},
		NotaryProcess: `1. Concurrir a escribanía pública
2. Llevar DNI y documentación de bienes
3. Expresar su voluntad al escribano
4. El escribano elabora el acta testamentaria
5. Lectura del documento completo
6. Firma ante dos testigos
7. Protocolarización en el registro notarial`,
		EstimatedCost:      "ARS $50,000 - $150,000 (aproximado)",
		EstimatedTimeframe: "2-4 semanas",
		ImportantNotes: []string{
			"Regido por el Código Civil y Comercial argentino",
			"Debe respetar la legítima hereditaria",
			"Puede revocarse en cualquier momento",
			"Se recomienda guardar copia certificada",
		},
		Resources: []string{
			"Colegio de Escribanos de la provincia correspondiente",
			"Código Civil y Comercial - Libro Quinto",
			"Registro de Testamentos",
		},
	},
}

// genericCosts holds the local cost estimate per country without a
// detailed entry.
var genericCosts = map[domain.Country]string{
	domain.CountryCO: "COP $200,000 - $800,000",
	domain.CountryCL: "CLP $50,000 - $200,000",
	domain.CountryPE: "PEN 200 - 800",
	domain.CountryVE: "Variable según tipo de cambio",
	domain.CountryEC: "USD $100 - $400",
	domain.CountryGT: "GTQ 500 - 2,000",
	domain.CountryCU: "Consultar notaría local",
	domain.CountryBO: "BOB 300 - 1,200",
	domain.CountryDO: "DOP 5,000 - 20,000",
	domain.CountryHN: "HNL 2,000 - 8,000",
	domain.CountryPY: "PYG 500,000 - 2,000,000",
	domain.CountrySV: "USD $100 - $400",
	domain.CountryNI: "NIO 1,000 - 4,000",
	domain.CountryCR: "CRC 50,000 - 200,000",
	domain.CountryPA: "USD $150 - $500",
	domain.CountryUY: "UYU 3,000 - 12,000",
}

// For returns the guidance entry for a country. Countries without a
// curated entry get the generic process with their local cost figure.
func For(country domain.Country) domain.CountryGuidance {
	if g, ok := detailed[country]; ok {
		return g
	}
	cost, ok := genericCosts[country]
	if !ok {
		cost = "Consultar notaría local"
	}
	return generic(country, cost)
}

// HasDetailed reports whether the country has a hand-curated entry.
func HasDetailed(country domain.Country) bool {
	_, ok := detailed[country]
	return ok
}

func generic(country domain.Country, cost string) domain.CountryGuidance {
	name := country.Name()
	return domain.CountryGuidance{
		Country: country,
		LegalRequirements: []string{
			"Ser mayor de edad según las leyes locales",
			"Capacidad mental y jurídica plena",
			"Testamento ante notario público (recomendado)",
			"Documento de identidad vigente",
			"Testigos según lo requiera la ley local",
		},
		NotaryProcess: fmt.Sprintf(`1. Acudir a notaría pública en %s
2. Presentar documento de identidad oficial
3. Expresar su última voluntad al notario
4. El notario redacta el testamento conforme a la ley
5. Lectura del documento ante testigos (si se requiere)
6. Firma del testador, notario y testigos
7. Registro y protocolización según normativa local`, name),
		EstimatedCost:      cost,
		EstimatedTimeframe: "2-4 semanas (aproximado)",
		ImportantNotes: []string{
			"Consulte el Código Civil vigente en su país",
			"Respete las cuotas hereditarias obligatorias",
			"Puede modificarse otorgando un nuevo testamento",
			"Guarde copia del documento en lugar seguro",
			"Informe a persona de confianza sobre su existencia",
		},
		Resources: []string{
			fmt.Sprintf("Colegio de Notarios de %s", name),
			"Asesoría legal especializada en derecho sucesorio",
			"Registro Nacional de Testamentos (si existe)",
		},
	}
}
