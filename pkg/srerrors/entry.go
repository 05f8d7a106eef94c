package srerrors

import "github.com/goliatone/go-addressform/pkg/rules"

// Kind tags the shape of an error entry.
type Kind uint8

const (
	// KindNone is the zero entry. It is skipped when sorting.
	KindNone Kind = iota
	// KindSecuredField carries text already translated by a secured field
	// together with its raw error code.
	KindSecuredField
	// KindStructured carries a translation key and a format parameter.
	KindStructured
	// KindPlain carries a translation key.
	KindPlain
)

func (k Kind) String() string {
	switch k {
	case KindSecuredField:
		return "securedField"
	case KindStructured:
		return "structured"
	case KindPlain:
		return "plain"
	default:
		return "none"
	}
}

// Entry is one field error awaiting translation.
type Entry struct {
	Kind Kind
	// Key is the translation key of structured and plain entries.
	Key string
	// Format is the interpolation value of structured entries.
	Format string
	// Code is the raw error code of secured-field entries.
	Code string
	// Text is the pre-translated message of secured-field entries.
	Text string
}

// SecuredField builds a pre-translated entry.
func SecuredField(code, text string) Entry {
	return Entry{Kind: KindSecuredField, Code: code, Text: text}
}

// Structured builds an entry with a format hint.
func Structured(key, format string) Entry {
	return Entry{Kind: KindStructured, Key: key, Format: format}
}

// Plain builds a translation-key entry.
func Plain(key string) Entry {
	return Entry{Kind: KindPlain, Key: key}
}

// IsZero reports whether the entry is the falsy zero value.
func (e Entry) IsZero() bool {
	return e.Kind == KindNone
}

// ErrorCode returns the code used to tell submit errors from blur errors.
func (e Entry) ErrorCode() string {
	if e.Kind == KindSecuredField {
		return e.Code
	}
	return e.Key
}

// FromMessage converts a rule message into an entry.
func FromMessage(m rules.ErrorMessage) Entry {
	switch m.Kind {
	case rules.MessageStructured:
		return Structured(m.Key, m.Format())
	case rules.MessageKey:
		return Plain(m.Key)
	default:
		return Entry{}
	}
}

// FromResults converts the displayed errors of a form into entries.
func FromResults(results map[string]rules.Result) map[string]Entry {
	out := make(map[string]Entry, len(results))
	for field, result := range results {
		out[field] = FromMessage(result.Message)
	}
	return out
}
