package booking

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// CountryName returns the English name of an ISO 3166-1 alpha-2 code, or the
// input unchanged when it is not a known country.
func CountryName(code string) string {
	region, err := language.ParseRegion(strings.TrimSpace(code))
	if err != nil || !region.IsCountry() {
		return code
	}

	name := display.English.Regions().Name(region)
	if name == "" {
		return code
	}

	return name
}
