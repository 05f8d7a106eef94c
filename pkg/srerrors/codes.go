package srerrors

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/goliatone/go-addressform/pkg/i18n"
)

// Secured field types.
const (
	FieldCardNumber   = "encryptedCardNumber"
	FieldExpiryDate   = "encryptedExpiryDate"
	FieldExpiryMonth  = "encryptedExpiryMonth"
	FieldExpiryYear   = "encryptedExpiryYear"
	FieldSecurityCode = "encryptedSecurityCode"
	FieldPassword     = "encryptedPassword"
)

// Error code identifiers; they match the infix of the secured-field codes.
const (
	IdentifierCardNumber   = "cc-num"
	IdentifierExpiryDate   = "cc-dat"
	IdentifierExpiryMonth  = "cc-mth"
	IdentifierExpiryYear   = "cc-yr"
	IdentifierSecurityCode = "cc-cvc"
	IdentifierPassword     = "kcp-pwd"
)

// SecuredFieldCodes is the catalogue of secured-field error codes. Each code is
// also its translation key.
var SecuredFieldCodes = []string{
	"error.va.gen.01",
	"error.va.sf-cc-num.01",
	"error.va.sf-cc-num.02",
	"error.va.sf-cc-num.03",
	"error.va.sf-cc-num.04",
	"error.va.sf-cc-dat.01",
	"error.va.sf-cc-dat.02",
	"error.va.sf-cc-dat.03",
	"error.va.sf-cc-dat.04",
	"error.va.sf-cc-dat.05",
	"error.va.sf-cc-mth.01",
	"error.va.sf-cc-yr.01",
	"error.va.sf-cc-yr.02",
	"error.va.sf-cc-cvc.01",
	"error.va.sf-cc-cvc.02",
	"error.va.sf-kcp-pwd.01",
}

var identifiers = map[string]string{
	FieldCardNumber:   IdentifierCardNumber,
	FieldExpiryDate:   IdentifierExpiryDate,
	FieldExpiryMonth:  IdentifierExpiryMonth,
	FieldExpiryYear:   IdentifierExpiryYear,
	FieldSecurityCode: IdentifierSecurityCode,
	FieldPassword:     IdentifierPassword,
}

// ErrorCodeIdentifier maps a secured field type to its code identifier, or
// "" for unknown types.
func ErrorCodeIdentifier(fieldType string) string {
	return identifiers[fieldType]
}

// TranslatedErrors returns the translations of every catalogued code that
// relates to identifier, keyed by code.
func TranslatedErrors(t i18n.Translator, identifier string) map[string]string {
	out := make(map[string]string)
	if t == nil || identifier == "" {
		return out
	}
	for _, code := range SecuredFieldCodes {
		if strings.Contains(code, identifier) {
			out[code] = t.Get(code, nil)
		}
	}
	return out
}

var codeSeparators = regexp.MustCompile(`[_.\s]`)

// ErrorMessageFromCode finds the name mapped to code in codeMap and returns it
// in kebab form. Unknown codes are returned in kebab form themselves. When
// several names map to code, the lexically smallest name wins.
func ErrorMessageFromCode(code string, codeMap map[string]string) string {
	name := code
	for _, key := range slices.Sorted(maps.Keys(codeMap)) {
		if codeMap[key] == code {
			name = key
			break
		}
	}
	return codeSeparators.ReplaceAllString(strings.ToLower(name), "-")
}

// PrefixKeys returns a copy of entries with prefix prepended to every key.
// Zero entries are dropped; a nil map yields nil.
func PrefixKeys(entries map[string]Entry, prefix string) map[string]Entry {
	if entries == nil {
		return nil
	}
	out := make(map[string]Entry, len(entries))
	for key, entry := range entries {
		if entry.IsZero() {
			continue
		}
		out[prefix+key] = entry
	}
	return out
}
