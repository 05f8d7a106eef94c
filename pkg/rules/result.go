package rules

// Result is the outcome of validating one field. Results are values and are
// never updated in place.
type Result struct {
	Field string
	Value string
	// Valid is computed on every pass, whatever the mode.
	Valid bool
	// ShouldValidate reports whether the rule surfaces errors in this mode.
	ShouldValidate bool
	Message        ErrorMessage
}

// HasError reports whether the result should be displayed as an error. A
// form-wide validation surfaces every invalid field; otherwise only fields
// whose rule applies to the triggering mode do.
func (r Result) HasError(validatingForm bool) bool {
	if r.Valid {
		return false
	}
	return validatingForm || r.ShouldValidate
}

// Error returns the message when HasError is true.
func (r Result) Error(validatingForm bool) (ErrorMessage, bool) {
	if !r.HasError(validatingForm) {
		return ErrorMessage{}, false
	}
	return r.Message, true
}
