package rules

// Engine applies a rule set and formatters to field values.
type Engine struct {
	rules      Set
	formatters Formatters
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithFormatters merges formatters over the engine's current ones.
func WithFormatters(f Formatters) EngineOption {
	return func(e *Engine) {
		e.formatters = MergeFormatters(e.formatters, f)
	}
}

// NewEngine builds an engine for rules.
func NewEngine(rules Set, opts ...EngineOption) *Engine {
	e := &Engine{
		rules:      Merge(rules),
		formatters: Formatters{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Rules returns a copy of the engine's rule set.
func (e *Engine) Rules() Set {
	return Merge(e.rules)
}

// Format runs the field formatter against value.
func (e *Engine) Format(field, value string, ctx Context) string {
	ctx.Field = field
	return e.formatters.Apply(field, value, ctx)
}

// Validate checks value against the rule for field. A field with no rule and
// no default rule is valid.
func (e *Engine) Validate(field, value string, mode Mode, ctx Context) Result {
	ctx.Field = field
	result := Result{Field: field, Value: value, Valid: true}

	rule, ok := e.rules.For(field)
	if !ok {
		return result
	}
	result.ShouldValidate = rule.appliesTo(mode)
	if rule.Validate != nil {
		result.Valid = rule.Validate(value, ctx)
	}
	if !result.Valid {
		result.Message = rule.message(value, ctx)
	}
	return result
}
