package rules

import "fmt"

// MessageKind tags the shape of an ErrorMessage.
type MessageKind uint8

const (
	// MessageNone marks the zero value: no message.
	MessageNone MessageKind = iota
	// MessageKey is a plain translation key.
	MessageKey
	// MessageStructured is a translation key plus interpolation values, used
	// for country-specific format hints.
	MessageStructured
)

func (k MessageKind) String() string {
	switch k {
	case MessageKey:
		return "key"
	case MessageStructured:
		return "structured"
	default:
		return "none"
	}
}

// Translation keys used by the built-in rules.
const (
	KeyFieldRequired        = "field.error.required"
	KeyInvalidFormatExpects = "invalid.format.expects"
)

// ErrorMessage is the message attached to a failed rule.
type ErrorMessage struct {
	Kind   MessageKind
	Key    string
	Values map[string]any
}

// Key builds a plain translation-key message.
func Key(key string) ErrorMessage {
	return ErrorMessage{Kind: MessageKey, Key: key}
}

// Structured builds a message carrying interpolation values.
func Structured(key string, values map[string]any) ErrorMessage {
	cloned := make(map[string]any, len(values))
	for k, v := range values {
		cloned[k] = v
	}
	return ErrorMessage{Kind: MessageStructured, Key: key, Values: cloned}
}

// IsZero reports whether the message is empty.
func (m ErrorMessage) IsZero() bool {
	return m.Kind == MessageNone
}

// Format returns the "format" interpolation value of a structured message.
func (m ErrorMessage) Format() string {
	if m.Kind != MessageStructured {
		return ""
	}
	v, ok := m.Values["format"]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
