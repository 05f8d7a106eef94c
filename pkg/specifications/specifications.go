package specifications

import (
	"fmt"
	"sort"
	"strings"
)

// Specifications resolves per-country address layouts. The zero value is not
// usable; construct one with New or Default.
type Specifications struct {
	table map[string]Specification
}

// Default returns the built-in specifications without overrides.
func Default() *Specifications {
	return &Specifications{table: defaultTable()}
}

// New merges overrides over the built-in table. Overrides replace whole
// country entries; the "default" entry can be overridden too. Overrides whose
// schema references a field more than once are rejected.
func New(overrides map[string]Specification) (*Specifications, error) {
	if err := Validate(overrides); err != nil {
		return nil, err
	}
	table := defaultTable()
	for country, spec := range overrides {
		key := normalizeCountry(country)
		if key == "" {
			return nil, fmt.Errorf("%w: empty country code", ErrInvalidEntry)
		}
		table[key] = spec.clone()
	}
	return &Specifications{table: table}, nil
}

// Countries lists every country with an explicit entry, excluding the default.
func (s *Specifications) Countries() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.table))
	for key := range s.table {
		if key == DefaultKey {
			continue
		}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the entry registered for country without falling back.
func (s *Specifications) Lookup(country string) (Specification, bool) {
	if s == nil {
		return Specification{}, false
	}
	spec, ok := s.table[normalizeCountry(country)]
	if !ok {
		return Specification{}, false
	}
	return spec.clone(), true
}

// SchemaFor returns the grouped layout for country, or the default layout
// when the country has none.
func (s *Specifications) SchemaFor(country string) Schema {
	if spec, ok := s.entry(country); ok && len(spec.Schema) > 0 {
		return spec.clone().Schema
	}
	return s.defaults().clone().Schema
}

// FlatSchemaFor returns the fields of SchemaFor(country) in layout order.
func (s *Specifications) FlatSchemaFor(country string) []string {
	return s.SchemaFor(country).Flatten()
}

// OptionalFieldsFor returns the fields that may be left empty for country.
func (s *Specifications) OptionalFieldsFor(country string) []string {
	if spec, ok := s.entry(country); ok && spec.OptionalFields != nil {
		return append([]string(nil), spec.OptionalFields...)
	}
	if fields := s.defaults().OptionalFields; fields != nil {
		return append([]string(nil), fields...)
	}
	return []string{}
}

// IsOptional reports whether field is optional for country.
func (s *Specifications) IsOptional(field, country string) bool {
	for _, optional := range s.OptionalFieldsFor(country) {
		if optional == field {
			return true
		}
	}
	return false
}

// HasRegionDataset reports whether a state/province list exists for country.
func (s *Specifications) HasRegionDataset(country string) bool {
	spec, ok := s.entry(country)
	return ok && spec.HasDataset
}

// LabelsFor returns the country-specific label keys, or nil.
func (s *Specifications) LabelsFor(country string) map[string]string {
	spec, ok := s.entry(country)
	if !ok {
		return nil
	}
	return cloneStrings(spec.Labels)
}

// PlaceholdersFor returns placeholder keys for country, falling back to the
// default entry.
func (s *Specifications) PlaceholdersFor(country string) map[string]string {
	if spec, ok := s.entry(country); ok && spec.Placeholders != nil {
		return cloneStrings(spec.Placeholders)
	}
	return cloneStrings(s.defaults().Placeholders)
}

// KeyForField returns the translation key used to label field in country.
func (s *Specifications) KeyForField(field, country string) string {
	if spec, ok := s.entry(country); ok {
		if key := strings.TrimSpace(spec.Labels[field]); key != "" {
			return key
		}
	}
	if key := strings.TrimSpace(s.defaults().Labels[field]); key != "" {
		return key
	}
	return field
}

func (s *Specifications) entry(country string) (Specification, bool) {
	if s == nil {
		return Specification{}, false
	}
	key := normalizeCountry(country)
	if key == "" || key == DefaultKey {
		return Specification{}, false
	}
	spec, ok := s.table[key]
	return spec, ok
}

func (s *Specifications) defaults() Specification {
	if s == nil {
		return defaultTable()[DefaultKey]
	}
	if spec, ok := s.table[DefaultKey]; ok {
		return spec
	}
	return defaultTable()[DefaultKey]
}

func normalizeCountry(country string) string {
	trimmed := strings.TrimSpace(country)
	if strings.EqualFold(trimmed, DefaultKey) {
		return DefaultKey
	}
	return strings.ToUpper(trimmed)
}
