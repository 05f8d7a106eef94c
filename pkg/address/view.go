package address

import (
	"slices"

	"github.com/goliatone/go-addressform/pkg/rules"
	"github.com/goliatone/go-addressform/pkg/specifications"
)

// FieldView is the presentation state of one field.
type FieldView struct {
	Name        string
	Label       string
	Placeholder string
	Value       string
	Error       string
	Valid       bool
	Width       int
	MaxLength   int
	Disabled    bool
	HasOptions  bool
}

// Row groups the fields rendered side by side.
type Row []FieldView

// EnabledFields returns the collected fields that accept input.
func (a *Address) EnabledFields() []string {
	out := make([]string, 0, len(a.requiredFields))
	for _, field := range a.form.Schema() {
		if a.focusedField == "" || field == a.focusedField {
			out = append(out, field)
		}
	}
	return out
}

// MaxLength returns the input limit of field for the selected country.
func (a *Address) MaxLength(field string) int {
	return rules.MaxLengthFor(field, a.country)
}

// Rows lays out the collected fields for the selected country. It is empty
// unless the address is editable and its fields are shown.
func (a *Address) Rows() []Row {
	if a.visibility != VisibilityEditable || !a.ShowAddressFields() {
		return nil
	}

	data := a.form.Data()
	valid := a.form.Valid()
	enabled := a.EnabledFields()
	placeholders := a.specs.PlaceholdersFor(a.country)
	inline := map[string]string{}
	for _, record := range a.ErrorRecords(false) {
		inline[record.Field] = record.ErrorMessage
	}

	view := func(field string, width int) FieldView {
		placeholder := ""
		if key := placeholders[field]; key != "" {
			placeholder = a.translator.Get(key, nil)
		}
		return FieldView{
			Name:        field,
			Label:       a.translator.Get(a.specs.KeyForField(field, a.country), nil),
			Placeholder: placeholder,
			Value:       data[field],
			Error:       inline[field],
			Valid:       valid[field],
			Width:       width,
			MaxLength:   a.MaxLength(field),
			Disabled:    !slices.Contains(enabled, field),
			HasOptions:  field == specifications.FieldCountry || (field == specifications.FieldStateOrProvince && a.specs.HasRegionDataset(a.country)),
		}
	}

	var rows []Row
	for _, entry := range a.specs.SchemaFor(a.country) {
		var row Row
		if entry.IsGroup() {
			for _, col := range entry.Group {
				if slices.Contains(a.requiredFields, col.Field) {
					row = append(row, view(col.Field, col.Width))
				}
			}
		} else if slices.Contains(a.requiredFields, entry.Field) {
			row = append(row, view(entry.Field, 100))
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}
