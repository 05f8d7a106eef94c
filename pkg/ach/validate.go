package ach

import (
	"slices"

	"github.com/goliatone/go-addressform/pkg/rules"
)

// Field names.
const (
	FieldAccountType               = "selectedAccountType"
	FieldOwnerName                 = "ownerName"
	FieldBankLocationID            = "bankLocationId"
	FieldBankAccountNumber         = "bankAccountNumber"
	FieldBankAccountNumberVerified = "bankAccountNumberVerification"
)

// Account types.
const (
	AccountChecking = "checking"
	AccountSavings  = "savings"
)

// AccountTypes lists the selectable account types.
var AccountTypes = []string{AccountChecking, AccountSavings}

// Translation keys.
const (
	KeyRoutingInvalid      = "ach.accountLocationField.invalid"
	KeyAccountInvalid      = "ach.accountNumberField.invalid"
	KeyVerificationInvalid = "ach.accountNumberVerificationField.invalid"
)

const (
	routingLength    = 9
	accountMinLength = 4
	accountMaxLength = 17
)

// ValidRoutingNumber reports whether s is a nine-digit ABA routing number
// with a valid checksum.
func ValidRoutingNumber(s string) bool {
	if len(s) != routingLength {
		return false
	}
	weights := [3]int{3, 7, 1}
	sum := 0
	for i := 0; i < routingLength; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		sum += int(c-'0') * weights[i%3]
	}
	return sum%10 == 0
}

// ValidAccountNumber reports whether s is a plausible US account number.
func ValidAccountNumber(s string) bool {
	if len(s) < accountMinLength || len(s) > accountMaxLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func requiredOr(invalidKey string) rules.MessageFunc {
	return func(value string, _ rules.Context) rules.ErrorMessage {
		if rules.IsEmpty(value) {
			return rules.Key(rules.KeyFieldRequired)
		}
		return rules.Key(invalidKey)
	}
}

// Rules returns the ACH rule set.
func Rules() rules.Set {
	blur := []rules.Mode{rules.ModeBlur}
	return rules.Set{
		FieldAccountType: {
			Modes:    blur,
			Validate: func(v string, _ rules.Context) bool { return slices.Contains(AccountTypes, v) },
			Message:  rules.Key(rules.KeyFieldRequired),
		},
		FieldBankLocationID: {
			Modes:      blur,
			Validate:   func(v string, _ rules.Context) bool { return ValidRoutingNumber(v) },
			MessageFor: requiredOr(KeyRoutingInvalid),
		},
		FieldBankAccountNumber: {
			Modes:      blur,
			Validate:   func(v string, _ rules.Context) bool { return ValidAccountNumber(v) },
			MessageFor: requiredOr(KeyAccountInvalid),
		},
		FieldBankAccountNumberVerified: {
			Modes: blur,
			Validate: func(v string, ctx rules.Context) bool {
				return !rules.IsEmpty(v) && v == ctx.Value(FieldBankAccountNumber)
			},
			MessageFor: requiredOr(KeyVerificationInvalid),
		},
		rules.DefaultRule: rules.Required(),
	}
}

// Formatters returns the ACH input formatters.
func Formatters() rules.Formatters {
	digits := rules.Keep(func(r rune) bool { return r >= '0' && r <= '9' })
	text := rules.Chain(rules.StripMarkup(), rules.TrimLeft())
	return rules.Formatters{
		FieldAccountType:               rules.Chain(rules.Trim(), rules.Lower()),
		FieldOwnerName:                 text,
		FieldBankLocationID:            rules.Chain(digits, rules.MaxLength(routingLength)),
		FieldBankAccountNumber:         rules.Chain(digits, rules.MaxLength(accountMaxLength)),
		FieldBankAccountNumberVerified: rules.Chain(digits, rules.MaxLength(accountMaxLength)),
	}
}
