package render

import (
	"io"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-addressform/pkg/ach"
	"github.com/goliatone/go-addressform/pkg/address"
)

const achTitleKey = "ach.accountNumberField.title"

// Ach renders the bank account fields followed by the billing address. A
// stored account renders its masked number only.
func (e *Engine) Ach(w io.Writer, a *ach.Ach) error {
	if a.Configuration().IsStored() {
		return e.Render(w, TemplateReadOnly, pongo2.Context{
			"title": e.title(achTitleKey),
			"lines": []string{a.DisplayAccountNumber()},
		})
	}

	inline := map[string]string{}
	for _, record := range a.ErrorRecords(false) {
		inline[record.Field] = record.ErrorMessage
	}
	data := a.Data()

	rows := make([]address.Row, 0, len(a.Layout()))
	for _, field := range a.Layout() {
		rows = append(rows, address.Row{{
			Name:        field,
			Label:       a.Title(field),
			Placeholder: a.Placeholder(field),
			Value:       data[field],
			Error:       inline[field],
			Width:       100,
			HasOptions:  field == ach.FieldAccountType,
		}})
	}
	if err := e.Render(w, TemplateFields, pongo2.Context{"rows": rows}); err != nil {
		return err
	}

	if billing := a.Billing(); billing != nil {
		return e.Address(w, billing)
	}
	return nil
}
