// Package rules implements the validation rule engine behind the address and
// bank-account forms.
//
// A Set maps field names to Rules; the special "default" entry applies to any
// field without its own rule. Caller-supplied sets are merged over the
// built-in ones field by field. Each Rule declares the event modes in which
// its error is surfaced (input, blur) while validity itself is always
// computed, so a form can be invalid without showing an error yet.
//
// Formatters run before validation. The package ships trimming, case
// normalisation, markup stripping and the per-country postal code formats.
package rules
