package rules

import "strings"

// Mode is the event that triggered a validation.
type Mode string

const (
	ModeInput Mode = "input"
	ModeBlur  Mode = "blur"
)

// DefaultRule is the Set key applied to fields without a dedicated rule.
const DefaultRule = "default"

// Context exposes the form state to rules and formatters. Data must be
// treated as read-only.
type Context struct {
	Field string
	Data  map[string]string
}

// Value returns the current value of another field.
func (c Context) Value(field string) string {
	if c.Data == nil {
		return ""
	}
	return c.Data[field]
}

// Country returns the selected country code.
func (c Context) Country() string {
	return strings.ToUpper(strings.TrimSpace(c.Value("country")))
}

// ValidateFunc reports whether value satisfies a rule.
type ValidateFunc func(value string, ctx Context) bool

// MessageFunc computes the error message at validation time.
type MessageFunc func(value string, ctx Context) ErrorMessage

// Rule validates one field.
type Rule struct {
	// Modes lists the events in which a failure is surfaced as an error.
	Modes []Mode
	// Validate reports validity. A nil Validate always passes.
	Validate ValidateFunc
	// Message is the static error message.
	Message ErrorMessage
	// MessageFor, when set, takes precedence over Message.
	MessageFor MessageFunc
}

func (r Rule) appliesTo(mode Mode) bool {
	for _, m := range r.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

func (r Rule) message(value string, ctx Context) ErrorMessage {
	if r.MessageFor != nil {
		return r.MessageFor(value, ctx)
	}
	return r.Message
}

// Set maps field names to rules.
type Set map[string]Rule

// Merge returns a new set where later sets override earlier ones per field.
func Merge(sets ...Set) Set {
	out := make(Set)
	for _, set := range sets {
		for field, rule := range set {
			out[field] = rule
		}
	}
	return out
}

// For returns the rule for field, falling back to the default rule.
func (s Set) For(field string) (Rule, bool) {
	if rule, ok := s[field]; ok {
		return rule, true
	}
	rule, ok := s[DefaultRule]
	return rule, ok
}

// IsEmpty reports whether value holds only whitespace.
func IsEmpty(value string) bool {
	return strings.TrimSpace(value) == ""
}

// Required is the generic non-empty rule surfaced on blur.
func Required() Rule {
	return Rule{
		Modes:    []Mode{ModeBlur},
		Validate: func(value string, _ Context) bool { return !IsEmpty(value) },
		Message:  Key(KeyFieldRequired),
	}
}
