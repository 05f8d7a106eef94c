package address

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/goliatone/go-addressform/pkg/i18n"
	"github.com/goliatone/go-addressform/pkg/lookup"
	"github.com/goliatone/go-addressform/pkg/rules"
	"github.com/goliatone/go-addressform/pkg/specifications"
	"github.com/goliatone/go-addressform/pkg/srpanel"
)

// Visibility controls how the address is presented.
type Visibility string

const (
	VisibilityEditable Visibility = "editable"
	VisibilityReadOnly Visibility = "readOnly"
	VisibilityHidden   Visibility = "hidden"
)

// ParseVisibility maps a string to a Visibility, defaulting to editable.
func ParseVisibility(raw string) Visibility {
	switch Visibility(strings.TrimSpace(raw)) {
	case VisibilityReadOnly:
		return VisibilityReadOnly
	case VisibilityHidden:
		return VisibilityHidden
	default:
		return VisibilityEditable
	}
}

// FieldEvent is passed to the analytics callbacks.
type FieldEvent struct {
	Field string
	Value string
}

// SelectedFunc enriches a chosen search candidate before it is applied.
type SelectedFunc func(ctx context.Context, c lookup.Candidate) (lookup.Candidate, error)

// Option customises an Address.
type Option func(*Address)

// WithCountryCode sets the country whose layout defines the validated fields.
func WithCountryCode(code string) Option {
	return func(a *Address) {
		a.countryCode = strings.ToUpper(strings.TrimSpace(code))
	}
}

// WithRequiredFields limits the rendered and validated fields.
func WithRequiredFields(fields ...string) Option {
	return func(a *Address) {
		a.requiredFields = append([]string(nil), fields...)
	}
}

// WithData seeds the address.
func WithData(data map[string]string) Option {
	return func(a *Address) {
		a.defaultData = make(map[string]string, len(data))
		for k, v := range data {
			a.defaultData[k] = v
		}
	}
}

// WithValidationRules merges custom rules over the built-in ones.
func WithValidationRules(set rules.Set) Option {
	return func(a *Address) {
		a.customRules = rules.Merge(a.customRules, set)
	}
}

// WithVisibility sets the presentation mode.
func WithVisibility(v Visibility) Option {
	return func(a *Address) {
		a.visibility = v
	}
}

// WithAllowedCountries restricts the selectable countries.
func WithAllowedCountries(codes ...string) Option {
	return func(a *Address) {
		a.allowedCountries = a.allowedCountries[:0]
		for _, code := range codes {
			if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
				a.allowedCountries = append(a.allowedCountries, code)
			}
		}
	}
}

// WithSpecifications replaces the specification table.
func WithSpecifications(specs *specifications.Specifications) Option {
	return func(a *Address) {
		if specs != nil {
			a.specs = specs
		}
	}
}

// WithTranslator injects the i18n collaborator.
func WithTranslator(t i18n.Translator) Option {
	return func(a *Address) {
		if t != nil {
			a.translator = t
		}
	}
}

// WithLogger injects a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Address) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithLabel sets the fieldset label key.
func WithLabel(label string) Option {
	return func(a *Address) {
		a.label = label
	}
}

// WithLiveRegion routes screen-reader announcements to region.
func WithLiveRegion(region srpanel.LiveRegion) Option {
	return func(a *Address) {
		a.dispatcher = srpanel.NewDispatcher(region)
	}
}

// WithAnnotatedMessages appends the "-sr" marker to live-region messages.
func WithAnnotatedMessages(enabled bool) Option {
	return func(a *Address) {
		a.annotate = enabled
	}
}

// WithFocusedField enables only the named field, disabling the rest. Used by
// hosts where a focused input must lock its siblings.
func WithFocusedField(field string) Option {
	return func(a *Address) {
		a.focusedField = field
	}
}

// WithOnChange registers the change-event callback.
func WithOnChange(fn func(ChangeEvent)) Option {
	return func(a *Address) {
		a.onChange = fn
	}
}

// WithFieldAnalytics registers focus and blur callbacks.
func WithFieldAnalytics(onFocus, onBlur func(FieldEvent)) Option {
	return func(a *Address) {
		a.onFieldFocus = onFocus
		a.onFieldBlur = onBlur
	}
}

// WithAddressLookup enables the search flow backed by fn.
func WithAddressLookup(fn lookup.Func) Option {
	return func(a *Address) {
		a.lookupFn = fn
	}
}

// WithAddressSelected enriches selected candidates before they are applied.
func WithAddressSelected(fn SelectedFunc) Option {
	return func(a *Address) {
		a.onSelected = fn
	}
}

// WithSearchDebounce sets the search debounce delay.
func WithSearchDebounce(d time.Duration) Option {
	return func(a *Address) {
		a.searchDebounce = d
	}
}

// WithSearchResults receives settled searches. It is called from a background
// goroutine.
func WithSearchResults(fn func(lookup.Result)) Option {
	return func(a *Address) {
		a.onSearchResults = fn
	}
}
