// Package mains guesses the local electrical mains frequency so advisories
// about power-line hum can name the right fundamental (50 or 60 Hz).
// Detection walks system timezone → country → grid frequency and falls back
// to 50 Hz, the more common grid worldwide.
package mains

import (
	"strings"

	tzcountry "github.com/medama-io/go-timezone-country"
	"github.com/thlib/go-timezone-local/tzlocal"
)

// DefaultHz is the fallback when the timezone gives no country.
const DefaultHz = 50

// Frequency returns the local mains frequency in Hz.
func Frequency() int {
	timezone, err := tzlocal.RuntimeTZ()
	if err != nil {
		return DefaultHz
	}
	return FrequencyForTimezone(timezone)
}

// FrequencyForTimezone returns the mains frequency for an IANA timezone.
func FrequencyForTimezone(timezone string) int {
	// UTC/GMT/Etc zones carry no country association.
	if timezone == "UTC" || timezone == "GMT" || strings.HasPrefix(timezone, "Etc/") {
		return DefaultHz
	}

	tzMap, err := tzcountry.NewTimezoneCountryMap()
	if err != nil {
		return DefaultHz
	}
	country, err := tzMap.GetCountry(timezone)
	if err != nil {
		return DefaultHz
	}

	if sixtyHzCountries[country] {
		return 60
	}
	// Japan is split 50/60 by region; 50 Hz covers the most populous half.
	return 50
}

// sixtyHzCountries lists the countries on 60 Hz grids; everywhere else is
// treated as 50 Hz. Source: IEC world plugs/voltage listing.
var sixtyHzCountries = map[string]bool{
	"United States":         true,
	"Canada":                true,
	"Mexico":                true,
	"Belize":                true,
	"Costa Rica":            true,
	"El Salvador":           true,
	"Guatemala":             true,
	"Honduras":              true,
	"Nicaragua":             true,
	"Panama":                true,
	"Bahamas":               true,
	"Barbados":              true,
	"Cayman Islands":        true,
	"Cuba":                  true,
	"Dominican Republic":    true,
	"Haiti":                 true,
	"Jamaica":               true,
	"Puerto Rico":           true,
	"Trinidad and Tobago":   true,
	"Colombia":              true,
	"Ecuador":               true,
	"Peru":                  true,
	"Venezuela":             true,
	"Brazil":                true,
	"Guyana":                true,
	"Suriname":              true,
	"South Korea":           true,
	"Taiwan":                true,
	"Philippines":           true,
	"Saudi Arabia":          true,
	"Guam":                  true,
	"American Samoa":        true,
	"Micronesia":            true,
	"Palau":                 true,
	"Marshall Islands":      true,
	"Liberia":               true,
	"Bermuda":               true,
	"Aruba":                 true,
	"Anguilla":              true,
	"Antigua and Barbuda":   true,
	"Saint Kitts and Nevis": true,
	"Virgin Islands":        true,
}
