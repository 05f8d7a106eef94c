package specifications

import "strings"

// Address field identifiers.
const (
	FieldStreet            = "street"
	FieldHouseNumberOrName = "houseNumberOrName"
	FieldPostalCode        = "postalCode"
	FieldCity              = "city"
	FieldStateOrProvince   = "stateOrProvince"
	FieldCountry           = "country"
)

// DefaultKey indexes the entry used when a country has no specification.
const DefaultKey = "default"

// FallbackValue is substituted for optional empty fields before data leaves
// the address form.
const FallbackValue = "N/A"

// AddressSchema lists every address field in canonical order.
var AddressSchema = []string{
	FieldStreet,
	FieldHouseNumberOrName,
	FieldPostalCode,
	FieldCity,
	FieldStateOrProvince,
	FieldCountry,
}

// Column is one member of a same-row group. Width is a relative column size
// hint (the original layout uses values such as 30, 50 and 70).
type Column struct {
	Field string `yaml:"field" json:"field"`
	Width int    `yaml:"width" json:"width"`
}

// Entry is either a single field or a group of fields rendered on one row.
type Entry struct {
	Field string
	Group []Column
}

// Single builds an entry for a standalone field.
func Single(field string) Entry {
	return Entry{Field: field}
}

// Row builds a grouped entry from the supplied columns.
func Row(columns ...Column) Entry {
	return Entry{Group: append([]Column(nil), columns...)}
}

// Col is shorthand for a Column literal.
func Col(field string, width int) Column {
	return Column{Field: field, Width: width}
}

// IsGroup reports whether the entry renders several fields on one row.
func (e Entry) IsGroup() bool {
	return len(e.Group) > 0
}

// Fields returns the field identifiers referenced by the entry.
func (e Entry) Fields() []string {
	if !e.IsGroup() {
		if strings.TrimSpace(e.Field) == "" {
			return nil
		}
		return []string{e.Field}
	}
	out := make([]string, 0, len(e.Group))
	for _, col := range e.Group {
		out = append(out, col.Field)
	}
	return out
}

// Schema is the ordered layout of an address form for one country.
type Schema []Entry

// Flatten returns every field referenced by the schema, in layout order.
func (s Schema) Flatten() []string {
	out := make([]string, 0, len(s))
	for _, entry := range s {
		out = append(out, entry.Fields()...)
	}
	return out
}

// Specification configures the address form for one country.
type Specification struct {
	HasDataset     bool              `yaml:"hasDataset" json:"hasDataset"`
	Labels         map[string]string `yaml:"labels" json:"labels"`
	Placeholders   map[string]string `yaml:"placeholders" json:"placeholders"`
	OptionalFields []string          `yaml:"optionalFields" json:"optionalFields"`
	Schema         Schema            `yaml:"schema" json:"schema"`
}

func (s Specification) clone() Specification {
	out := Specification{
		HasDataset:     s.HasDataset,
		Labels:         cloneStrings(s.Labels),
		Placeholders:   cloneStrings(s.Placeholders),
		OptionalFields: append([]string(nil), s.OptionalFields...),
	}
	if s.Schema != nil {
		out.Schema = make(Schema, len(s.Schema))
		for i, entry := range s.Schema {
			out.Schema[i] = Entry{Field: entry.Field, Group: append([]Column(nil), entry.Group...)}
		}
	}
	return out
}

func cloneStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
