package rules

import "github.com/goliatone/go-addressform/pkg/specifications"

// OptionalFieldChecker reports whether a field may be left empty for a
// country. *specifications.Specifications satisfies it.
type OptionalFieldChecker interface {
	IsOptional(field, country string) bool
}

// AddressRules returns the built-in address rule set.
func AddressRules(optional OptionalFieldChecker) Set {
	return Set{
		specifications.FieldPostalCode:        postalCodeRule(),
		specifications.FieldHouseNumberOrName: houseNumberRule(optional),
		DefaultRule:                           Required(),
	}
}

// postalCodeRule validates against the country pattern when one is known and
// reports the expected format. Without a country convention the code only
// needs to be present.
func postalCodeRule() Rule {
	return Rule{
		Modes: []Mode{ModeBlur},
		Validate: func(value string, ctx Context) bool {
			if pf, ok := PostalFormatFor(ctx.Country()); ok {
				return pf.Pattern.MatchString(value)
			}
			return !IsEmpty(value)
		},
		MessageFor: func(_ string, ctx Context) ErrorMessage {
			if pf, ok := PostalFormatFor(ctx.Country()); ok {
				return Structured(KeyInvalidFormatExpects, map[string]any{"format": pf.Format})
			}
			return Key(KeyFieldRequired)
		},
	}
}

func houseNumberRule(optional OptionalFieldChecker) Rule {
	return Rule{
		Modes: []Mode{ModeBlur},
		Validate: func(value string, ctx Context) bool {
			country := ctx.Country()
			if country != "" && optional != nil && optional.IsOptional(specifications.FieldHouseNumberOrName, country) {
				return true
			}
			return !IsEmpty(value)
		},
		Message: Key(KeyFieldRequired),
	}
}

// AddressFormatters returns the built-in address formatters.
func AddressFormatters() Formatters {
	text := Chain(StripMarkup(), TrimLeft())
	return Formatters{
		specifications.FieldStreet:            text,
		specifications.FieldHouseNumberOrName: text,
		specifications.FieldCity:              text,
		specifications.FieldStateOrProvince:   text,
		specifications.FieldPostalCode:        Chain(StripMarkup(), PostalCode()),
		specifications.FieldCountry:           Chain(Trim(), Upper()),
	}
}
