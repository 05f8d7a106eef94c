package form

import (
	"log/slog"

	"github.com/goliatone/go-addressform/pkg/rules"
)

// Option customises a Controller.
type Option func(*Controller)

// WithSchema sets the ordered list of validated fields.
func WithSchema(fields ...string) Option {
	return func(c *Controller) {
		c.schema = append([]string(nil), fields...)
	}
}

// WithRules sets the rule set used for validation.
func WithRules(set rules.Set) Option {
	return func(c *Controller) {
		c.rules = rules.Merge(set)
	}
}

// WithFormatters sets the per-field formatters applied before validation.
func WithFormatters(f rules.Formatters) Option {
	return func(c *Controller) {
		c.formatters = rules.MergeFormatters(f)
	}
}

// WithDefaultData seeds the schema fields, which are validated in blur mode
// during construction. Defaults for fields outside the schema are ignored.
func WithDefaultData(data map[string]string) Option {
	return func(c *Controller) {
		c.defaults = cloneStrings(data)
	}
}

// WithLogger injects a logger. Nil keeps the discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithID overrides the generated instance id.
func WithID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.id = id
		}
	}
}

// WithTrimOnBlur controls whether surrounding whitespace is removed when a
// field loses focus. Enabled by default.
func WithTrimOnBlur(enabled bool) Option {
	return func(c *Controller) {
		c.trimOnBlur = enabled
	}
}
