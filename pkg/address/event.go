package address

import (
	"slices"

	"github.com/goliatone/go-addressform/pkg/rules"
	"github.com/goliatone/go-addressform/pkg/specifications"
)

// ChangeEvent is emitted after every public mutation.
type ChangeEvent struct {
	Data    map[string]string       `json:"data"`
	Valid   map[string]bool         `json:"valid"`
	Errors  map[string]rules.Result `json:"-"`
	IsValid bool                    `json:"isValid"`
}

// ChangeEvent builds the event for the current state. Fields that are not
// collected, or optional and empty, carry their initial value when one was
// provided and the N/A fallback otherwise.
func (a *Address) ChangeEvent() ChangeEvent {
	return ChangeEvent{
		Data:    a.outputData(),
		Valid:   a.form.Valid(),
		Errors:  a.form.Errors(),
		IsValid: a.form.IsValid(),
	}
}

func (a *Address) outputData() map[string]string {
	data := a.form.Data()
	optional := a.specs.OptionalFieldsFor(data[specifications.FieldCountry])

	out := make(map[string]string, len(specifications.AddressSchema))
	for _, field := range specifications.AddressSchema {
		isOptional := slices.Contains(optional, field)
		isRequired := slices.Contains(a.requiredFields, field)
		current := data[field]
		initial := a.defaultData[field]

		fallback := specifications.FallbackValue
		if !isRequired && current == "" && initial != "" {
			fallback = initial
		}
		value := current
		if (isOptional && current == "") || !isRequired {
			value = fallback
		}
		if value != "" {
			out[field] = value
		}
	}
	return out
}
