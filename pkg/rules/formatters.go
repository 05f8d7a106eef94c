package rules

import (
	"html"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Formatter rewrites a raw value before validation.
type Formatter func(value string, ctx Context) string

// Formatters maps field names to formatters.
type Formatters map[string]Formatter

// Chain composes formatters left to right. Nil entries are skipped.
func Chain(fs ...Formatter) Formatter {
	return func(value string, ctx Context) string {
		for _, f := range fs {
			if f != nil {
				value = f(value, ctx)
			}
		}
		return value
	}
}

// Apply runs the formatter for field, if any.
func (f Formatters) Apply(field, value string, ctx Context) string {
	if fn, ok := f[field]; ok && fn != nil {
		return fn(value, ctx)
	}
	return value
}

// MergeFormatters returns a new map where later maps override earlier ones.
func MergeFormatters(sets ...Formatters) Formatters {
	out := make(Formatters)
	for _, set := range sets {
		for field, fn := range set {
			out[field] = fn
		}
	}
	return out
}

// Trim removes surrounding whitespace.
func Trim() Formatter {
	return func(value string, _ Context) string { return strings.TrimSpace(value) }
}

// TrimLeft removes leading whitespace only, so typing a trailing space keeps
// working while editing.
func TrimLeft() Formatter {
	return func(value string, _ Context) string { return strings.TrimLeftFunc(value, unicode.IsSpace) }
}

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// Upper upper-cases the value.
func Upper() Formatter {
	return func(value string, _ Context) string { return upperCaser.String(value) }
}

// Lower lower-cases the value.
func Lower() Formatter {
	return func(value string, _ Context) string { return lowerCaser.String(value) }
}

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

func markupPolicy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// StripMarkup removes HTML from pasted values. Plain text is returned as is.
// Character references typed by the user, such as "&amp;", are kept literally.
func StripMarkup() Formatter {
	return func(value string, _ Context) string {
		if !strings.ContainsAny(value, "<>") {
			return value
		}
		// Escaping "&" first leaves the final unescape to undo only the
		// sanitizer's own escaping.
		escaped := strings.ReplaceAll(value, "&", "&amp;")
		return html.UnescapeString(markupPolicy().Sanitize(escaped))
	}
}

// MaxLength truncates the value to n runes. n <= 0 disables the limit.
func MaxLength(n int) Formatter {
	return func(value string, _ Context) string {
		return truncate(value, n)
	}
}

// Keep drops every rune not accepted by allow.
func Keep(allow func(rune) bool) Formatter {
	return func(value string, _ Context) string {
		return strings.Map(func(r rune) rune {
			if allow(r) {
				return r
			}
			return -1
		}, value)
	}
}

func truncate(value string, n int) string {
	if n <= 0 || utf8.RuneCountInString(value) <= n {
		return value
	}
	runes := []rune(value)
	return string(runes[:n])
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isPostalRune(r rune) bool {
	return isDigit(r) || (r >= 'A' && r <= 'Z') || r == ' ' || r == '-'
}
