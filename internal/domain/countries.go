package domain

// Country is an ISO 3166-1 alpha-2 code from the supported set
// (Spain plus Latin America).
type Country string

const (
	CountryES Country = "ES"
	CountryMX Country = "MX"
	CountryAR Country = "AR"
	CountryCO Country = "CO"
	CountryCL Country = "CL"
	CountryPE Country = "PE"
	CountryVE Country = "VE"
	CountryEC Country = "EC"
	CountryGT Country = "GT"
	CountryCU Country = "CU"
	CountryBO Country = "BO"
	CountryDO Country = "DO"
	CountryHN Country = "HN"
	CountryPY Country = "PY"
	CountrySV Country = "SV"
	CountryNI Country = "NI"
	CountryCR Country = "CR"
	CountryPA Country = "PA"
	CountryUY Country = "UY"
)

// countryNames maps each supported code to its Spanish display name,
// used in prompts, will drafts and the PDF.
var countryNames = map[Country]string{
	CountryES: "España",
	CountryMX: "México",
	CountryAR: "Argentina",
	CountryCO: "Colombia",
	CountryCL: "Chile",
	CountryPE: "Perú",
	CountryVE: "Venezuela",
	CountryEC: "Ecuador",
	CountryGT: "Guatemala",
	CountryCU: "Cuba",
	CountryBO: "Bolivia",
	CountryDO: "República Dominicana",
	CountryHN: "Honduras",
	CountryPY: "Paraguay",
	CountrySV: "El Salvador",
	CountryNI: "Nicaragua",
	CountryCR: "Costa Rica",
	CountryPA: "Panamá",
	CountryUY: "Uruguay",
}

// Countries returns all supported country codes.
func Countries() []Country {
	return []Country{
		CountryES, CountryMX, CountryAR, CountryCO, CountryCL, CountryPE,
		CountryVE, CountryEC, CountryGT, CountryCU, CountryBO, CountryDO,
		CountryHN, CountryPY, CountrySV, CountryNI, CountryCR, CountryPA,
		CountryUY,
	}
}

// Valid reports whether c is one of the supported codes.
func (c Country) Valid() bool {
	_, ok := countryNames[c]
	return ok
}

// Name returns the Spanish display name, or the code itself when unknown.
func (c Country) Name() string {
	if name, ok := countryNames[c]; ok {
		return name
	}
	return string(c)
}
