package render

import (
	"io"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-addressform/pkg/address"
	"github.com/goliatone/go-addressform/pkg/specifications"
)

// Address renders a according to its visibility: a summary when read-only,
// the field rows when editable and nothing when hidden.
func (e *Engine) Address(w io.Writer, a *address.Address) error {
	switch a.Visibility() {
	case address.VisibilityHidden:
		return nil
	case address.VisibilityReadOnly:
		return e.ReadOnlyAddress(w, a.Label(), a.ChangeEvent().Data)
	}
	return e.Render(w, TemplateFields, pongo2.Context{
		"title": e.title(a.Label()),
		"rows":  a.Rows(),
	})
}

// ReadOnlyAddress renders the compact summary of data under the label key.
func (e *Engine) ReadOnlyAddress(w io.Writer, label string, data map[string]string) error {
	return e.Render(w, TemplateReadOnly, pongo2.Context{
		"title": e.title(label),
		"lines": SummaryLines(data),
	})
}

// SummaryLines formats an address as street line and locality line.
// Placeholder values are left out.
func SummaryLines(data map[string]string) []string {
	street := joinPresent(" ",
		data[specifications.FieldStreet],
		data[specifications.FieldHouseNumberOrName],
	)
	locality := joinPresent(", ",
		data[specifications.FieldPostalCode],
		data[specifications.FieldCity],
		data[specifications.FieldStateOrProvince],
		data[specifications.FieldCountry],
	)

	var lines []string
	if street != "" {
		if locality != "" {
			street += ","
		}
		lines = append(lines, street)
	}
	if locality != "" {
		lines = append(lines, locality)
	}
	return lines
}

func joinPresent(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || v == specifications.FallbackValue {
			continue
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, sep)
}

// Messages renders a bulleted list, typically the screen-reader messages.
func (e *Engine) Messages(w io.Writer, messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return e.Render(w, TemplateMessages, pongo2.Context{"messages": messages})
}
