package i18n

import (
	"log/slog"
	"strings"
)

// Localizer is a Translator bound to one locale of a Catalog.
type Localizer struct {
	catalog *Catalog
	locale  string
}

var _ Translator = (*Localizer)(nil)

// Locale reports the locale resolved for this localizer.
func (l *Localizer) Locale() string {
	if l == nil {
		return ""
	}
	return l.locale
}

// Has reports whether key resolves to a translation.
func (l *Localizer) Has(key string) bool {
	if l == nil || l.catalog == nil {
		return false
	}
	_, ok := l.catalog.lookup(l.locale, key)
	return ok
}

// Get translates key and interpolates values. Missing keys yield the key.
func (l *Localizer) Get(key string, values map[string]any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if l == nil || l.catalog == nil {
		return Interpolate(key, values)
	}
	msg, ok := l.catalog.lookup(l.locale, key)
	if !ok {
		if l.catalog.logMissing {
			l.catalog.logger.Warn("translation not found", slog.String("locale", l.locale), slog.String("key", key))
		}
		return Interpolate(key, values)
	}
	return strings.TrimSpace(Interpolate(msg, values))
}
