package rules

import (
	"regexp"
	"strings"
	"unicode"
)

// PostalFormat describes the postal code convention of one country.
type PostalFormat struct {
	Pattern   *regexp.Regexp
	Format    string
	MaxLength int
	Formatter Formatter
}

var digitsOnly = Keep(isDigit)

var (
	digitsAndDash  = Keep(func(r rune) bool { return isDigit(r) || r == '-' })
	digitsAndSpace = Keep(func(r rune) bool { return isDigit(r) || r == ' ' })
	alnumUpper     = Chain(Upper(), Keep(isPostalRune))
)

func postal(pattern, format string, maxLength int, f Formatter) PostalFormat {
	return PostalFormat{
		Pattern:   regexp.MustCompile(pattern),
		Format:    format,
		MaxLength: maxLength,
		Formatter: f,
	}
}

var postalFormats = map[string]PostalFormat{
	"AT": postal(`^[0-9]{4}$`, "9999", 4, digitsOnly),
	"AU": postal(`^[0-9]{4}$`, "9999", 4, digitsOnly),
	"BE": postal(`^[1-9][0-9]{3}$`, "9999", 4, digitsOnly),
	"BG": postal(`^[0-9]{4}$`, "9999", 4, digitsOnly),
	"BR": postal(`^[0-9]{5}-?[0-9]{3}$`, "99999-999", 9, digitsAndDash),
	"CA": postal(`^[ABCEGHJ-NPRSTVXY][0-9][ABCEGHJ-NPRSTV-Z] ?[0-9][ABCEGHJ-NPRSTV-Z][0-9]$`, "A9A 9A9", 7, alnumUpper),
	"CH": postal(`^[0-9]{4}$`, "9999", 4, digitsOnly),
	"CY": postal(`^[0-9]{4}$`, "9999", 4, digitsOnly),
	"CZ": postal(`^[0-9]{3} ?[0-9]{2}$`, "999 99", 6, digitsAndSpace),
	"DE": postal(`^[0-9]{5}$`, "99999", 5, digitsOnly),
	"DK": postal(`^[0-9]{4}$`, "9999", 4, digitsOnly),
	"EE": postal(`^[0-9]{5}$`, "99999", 5, digitsOnly),
	"ES": postal(`^(?:0[1-9]|[1-4][0-9]|5[0-2])[0-9]{3}$`, "99999", 5, digitsOnly),
	"FI": postal(`^[0-9]{5}$`, "99999", 5, digitsOnly),
	"FR": postal(`^[0-9]{2} ?[0-9]{3}$`, "99999", 6, digitsAndSpace),
	"GB": postal(`^[A-Z]{1,2}[0-9][A-Z0-9]? ?[0-9][A-Z]{2}$`, "AA99 9AA", 8, alnumUpper),
	"GR": postal(`^[0-9]{3} ?[0-9]{2}$`, "999 99", 6, digitsAndSpace),
	"HR": postal(`^[0-9]{5}$`, "99999", 5, digitsOnly),
	"HU": postal(`^[0-9]{4}$`, "9999", 4, digitsOnly),
	"IT": postal(`^[0-9]{5}$`, "99999", 5, digitsOnly),
	"JP": postal(`^[0-9]{3}-?[0-9]{4}$`, "999-9999", 8, digitsAndDash),
	"LT": postal(`^(?:LT-)?[0-9]{5}$`, "99999", 8, alnumUpper),
	"LU": postal(`^[0-9]{4}$`, "9999", 4, digitsOnly),
	"LV": postal(`^(?:LV-)?[0-9]{4}$`, "9999", 7, alnumUpper),
	"MT": postal(`^[A-Z]{3} ?[0-9]{4}$`, "AAA 9999", 8, alnumUpper),
	"NL": postal(`^[1-9][0-9]{3} ?[A-Z]{2}$`, "9999AA", 7, alnumUpper),
	"NO": postal(`^[0-9]{4}$`, "9999", 4, digitsOnly),
	"PL": postal(`^[0-9]{2}-[0-9]{3}$`, "99-999", 6, digitsAndDash),
	"PT": postal(`^[1-9][0-9]{3}-[0-9]{3}$`, "9999-999", 8, digitsAndDash),
	"RO": postal(`^[0-9]{6}$`, "999999", 6, digitsOnly),
	"SE": postal(`^[0-9]{3} ?[0-9]{2}$`, "999 99", 6, digitsAndSpace),
	"SG": postal(`^[0-9]{6}$`, "999999", 6, digitsOnly),
	"SI": postal(`^[0-9]{4}$`, "9999", 4, digitsOnly),
	"SK": postal(`^[0-9]{3} ?[0-9]{2}$`, "999 99", 6, digitsAndSpace),
	"US": postal(`^[0-9]{5}(?:-[0-9]{4})?$`, "99999", 10, digitsAndDash),
}

// PostalFormatFor returns the postal convention for country.
func PostalFormatFor(country string) (PostalFormat, bool) {
	pf, ok := postalFormats[strings.ToUpper(strings.TrimSpace(country))]
	return pf, ok
}

// PostalCountries lists the countries with a known postal convention.
func PostalCountries() []string {
	out := make([]string, 0, len(postalFormats))
	for code := range postalFormats {
		out = append(out, code)
	}
	return out
}

// MaxLengthFor returns the input length limit of field for country, or 0 when
// unrestricted.
func MaxLengthFor(field, country string) int {
	if field != "postalCode" {
		return 0
	}
	if pf, ok := PostalFormatFor(country); ok {
		return pf.MaxLength
	}
	return 0
}

// PostalCode formats a postal code using the convention of the selected
// country, then enforces its length limit.
func PostalCode() Formatter {
	return func(value string, ctx Context) string {
		pf, ok := PostalFormatFor(ctx.Country())
		if !ok {
			return strings.TrimLeftFunc(value, unicode.IsSpace)
		}
		if pf.Formatter != nil {
			value = pf.Formatter(value, ctx)
		}
		return truncate(value, pf.MaxLength)
	}
}
