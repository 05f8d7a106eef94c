package i18n

import (
	"fmt"
	"regexp"
	"strings"
)

// Translator is the lookup contract used by the form components.
type Translator interface {
	Get(key string, values map[string]any) string
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(key string, values map[string]any) string

// Get delegates to the underlying function.
func (fn TranslatorFunc) Get(key string, values map[string]any) string {
	return fn(key, values)
}

// KeyTranslator returns the key with placeholders interpolated. Useful as a
// stand-in when no catalog is configured.
var KeyTranslator Translator = TranslatorFunc(func(key string, values map[string]any) string {
	return Interpolate(key, values)
})

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Interpolate substitutes %{name} placeholders using values. Unknown
// placeholders are left untouched; nil values render as empty strings.
func Interpolate(tmpl string, values map[string]any) string {
	if len(values) == 0 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-1]
		val, ok := values[name]
		if !ok {
			return match
		}
		if val == nil {
			return ""
		}
		return fmt.Sprint(val)
	})
}
