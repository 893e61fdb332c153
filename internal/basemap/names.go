package basemap

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// nameKeys are the country-name properties recognized in a basemap, in
// order of preference.
var nameKeys = []string{"ADMIN", "NAME_LONG", "FORMAL_EN", "NAME", "name", "name_long", "BRK_NAME"}

// harmonized maps basemap spellings to the names used in the region tables.
var harmonized = map[string]string{
	"Côte d'Ivoire":                  "Cote d'Ivoire",
	"Bahamas":                        "The Bahamas",
	"Cape Verde":                     "Cabo Verde",
	"Laos":                           "Lao PDR",
	"Vietnam":                        "Viet Nam",
	"W. Sahara":                      "Western Sahara",
	"Federated States of Micronesia": "Micronesia",
	"South Korea":                    "Korea, Republic of",
	"North Korea":                    "Korea, Democratic People's Republic of",
	"Czech Republic":                 "Czechia",
	"Swaziland":                      "Eswatini",
	"East Timor":                     "Timor-Leste",
}

// Harmonize returns the standardized spelling of a basemap country name.
func Harmonize(name string) string {
	name = strings.TrimSpace(norm.NFC.String(name))
	if std, ok := harmonized[name]; ok {
		return std
	}
	return name
}
