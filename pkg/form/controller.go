package form

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-addressform/pkg/rules"
)

// EventKind identifies the user interaction behind a change.
type EventKind uint8

const (
	EventInput EventKind = iota
	EventBlur
)

// Mode maps the event to the validation mode it triggers.
func (k EventKind) Mode() rules.Mode {
	if k == EventBlur {
		return rules.ModeBlur
	}
	return rules.ModeInput
}

func (k EventKind) String() string {
	return string(k.Mode())
}

// Snapshot is an immutable view of the controller after a mutation.
type Snapshot struct {
	Data    map[string]string
	Valid   map[string]bool
	Errors  map[string]rules.Result
	IsValid bool
}

// Controller tracks form data and validation state.
type Controller struct {
	id         string
	schema     []string
	rules      rules.Set
	formatters rules.Formatters
	defaults   map[string]string
	engine     *rules.Engine
	trimOnBlur bool

	data   map[string]string
	valid  map[string]bool
	errors map[string]rules.Result

	observers []func(Snapshot)
	logger    *slog.Logger
}

// New builds a controller and validates the default data.
func New(opts ...Option) *Controller {
	c := &Controller{
		id:         uuid.New().String(),
		rules:      rules.Set{},
		formatters: rules.Formatters{},
		trimOnBlur: true,
		data:       make(map[string]string),
		valid:      make(map[string]bool),
		errors:     make(map[string]rules.Result),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.engine = rules.NewEngine(c.rules, rules.WithFormatters(c.formatters))
	c.logger = c.logger.With("form", c.id)

	for _, field := range c.schema {
		c.initField(field)
	}
	return c
}

// ID returns the instance id.
func (c *Controller) ID() string {
	return c.id
}

// Schema returns the validated fields in order.
func (c *Controller) Schema() []string {
	return append([]string(nil), c.schema...)
}

// Data returns a copy of the form data.
func (c *Controller) Data() map[string]string {
	return cloneStrings(c.data)
}

// Value returns the current value of field.
func (c *Controller) Value(field string) string {
	return c.data[field]
}

// Valid returns a copy of the per-field validity.
func (c *Controller) Valid() map[string]bool {
	out := make(map[string]bool, len(c.valid))
	for k, v := range c.valid {
		out[k] = v
	}
	return out
}

// Errors returns the results currently displayed as errors.
func (c *Controller) Errors() map[string]rules.Result {
	out := make(map[string]rules.Result, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// IsValid reports whether every schema field is valid.
func (c *Controller) IsValid() bool {
	for _, field := range c.schema {
		if !c.valid[field] {
			return false
		}
	}
	return true
}

// OnChange registers an observer called after every mutation.
func (c *Controller) OnChange(fn func(Snapshot)) {
	if fn != nil {
		c.observers = append(c.observers, fn)
	}
}

// HandleChange formats and validates a new value for field. Input events
// update the value and its validity; blur events also surface the error.
func (c *Controller) HandleChange(field string, kind EventKind, raw string) {
	value := raw
	if kind == EventBlur && c.trimOnBlur {
		value = strings.TrimSpace(value)
	}
	value = c.engine.Format(field, value, c.context())
	c.data[field] = value

	result := c.engine.Validate(field, value, kind.Mode(), c.context())
	c.valid[field] = result.Valid
	if result.HasError(false) {
		c.errors[field] = result
	} else {
		delete(c.errors, field)
	}

	c.logger.Debug("field changed",
		"field", field,
		"event", kind.String(),
		"valid", result.Valid,
		"error", result.HasError(false),
	)
	c.notify()
}

// TriggerValidation validates every schema field in blur mode and replaces the
// validity and error maps in one step.
func (c *Controller) TriggerValidation() {
	valid := make(map[string]bool, len(c.valid))
	for k, v := range c.valid {
		valid[k] = v
	}
	errs := make(map[string]rules.Result, len(c.errors))
	for k, v := range c.errors {
		errs[k] = v
	}

	ctx := c.context()
	for _, field := range c.schema {
		result := c.engine.Validate(field, c.data[field], rules.ModeBlur, ctx)
		valid[field] = result.Valid
		if result.HasError(true) {
			errs[field] = result
		} else {
			delete(errs, field)
		}
	}

	c.valid = valid
	c.errors = errs
	c.logger.Debug("form validated", "valid", c.IsValid(), "errors", len(errs))
	c.notify()
}

// MergeData shallow-merges partial into the form data. Values are coerced to
// strings and nil values are skipped. Validity is not recomputed.
func (c *Controller) MergeData(partial map[string]any) {
	for field, value := range partial {
		if value == nil {
			continue
		}
		c.data[field] = coerce(value)
	}
	c.notify()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Data:    c.Data(),
		Valid:   c.Valid(),
		Errors:  c.Errors(),
		IsValid: c.IsValid(),
	}
}

// initField seeds and validates a schema field. Fields with a value
// are checked in blur mode; empty ones only get their validity computed.
func (c *Controller) initField(field string) {
	value, ok := c.data[field]
	if !ok {
		value, ok = c.defaults[field]
	}
	mode := rules.ModeInput
	if ok {
		value = c.engine.Format(field, value, c.context())
		c.data[field] = value
		mode = rules.ModeBlur
	}

	result := c.engine.Validate(field, value, mode, c.context())
	c.valid[field] = result.Valid
	if result.HasError(false) {
		c.errors[field] = result
	} else {
		delete(c.errors, field)
	}
}

func (c *Controller) context() rules.Context {
	return rules.Context{Data: c.data}
}

func (c *Controller) notify() {
	if len(c.observers) == 0 {
		return
	}
	snap := c.Snapshot()
	for _, fn := range c.observers {
		fn(snap)
	}
}

func coerce(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func cloneStrings(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
