package specifications_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-addressform/pkg/specifications"
)

func TestFlatSchemaIsSubsetOfGroupedSchema(t *testing.T) {
	specs := specifications.Default()
	countries := append(specs.Countries(), "NL", "", "zz")

	for _, country := range countries {
		referenced := make(map[string]struct{})
		for _, entry := range specs.SchemaFor(country) {
			for _, field := range entry.Fields() {
				referenced[field] = struct{}{}
			}
		}
		for _, field := range specs.FlatSchemaFor(country) {
			if _, ok := referenced[field]; !ok {
				t.Fatalf("country %q: flat field %q missing from grouped schema", country, field)
			}
		}
	}
}

func TestSchemaEntriesAreUnique(t *testing.T) {
	specs := specifications.Default()
	for _, country := range append(specs.Countries(), specifications.DefaultKey) {
		seen := map[string]bool{}
		for _, field := range specs.FlatSchemaFor(country) {
			if seen[field] {
				t.Fatalf("country %q: duplicate field %q", country, field)
			}
			seen[field] = true
		}
	}
}

func TestSchemaFor_UnknownCountryFallsBackToDefault(t *testing.T) {
	specs := specifications.Default()

	want := []string{"country", "street", "houseNumberOrName", "postalCode", "city", "stateOrProvince"}
	if diff := cmp.Diff(want, specs.FlatSchemaFor("NL")); diff != "" {
		t.Fatalf("default schema mismatch (-want +got):\n%s", diff)
	}

	// BR has an entry but no schema of its own.
	if diff := cmp.Diff(want, specs.FlatSchemaFor("BR")); diff != "" {
		t.Fatalf("BR schema mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaFor_US(t *testing.T) {
	specs := specifications.Default()
	schema := specs.SchemaFor("us")

	if len(schema) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(schema))
	}
	last := schema[len(schema)-1]
	if !last.IsGroup() {
		t.Fatalf("expected last entry to be a group: %#v", last)
	}
	if diff := cmp.Diff([]string{"stateOrProvince", "postalCode"}, last.Fields()); diff != "" {
		t.Fatalf("group mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionalFieldsAndDatasets(t *testing.T) {
	specs := specifications.Default()

	if diff := cmp.Diff([]string{"houseNumberOrName"}, specs.OptionalFieldsFor("US")); diff != "" {
		t.Fatalf("US optional fields mismatch (-want +got):\n%s", diff)
	}
	if got := specs.OptionalFieldsFor("NL"); len(got) != 0 {
		t.Fatalf("expected no optional fields for NL, got %v", got)
	}
	if !specs.HasRegionDataset("US") || !specs.HasRegionDataset("br") {
		t.Fatalf("expected US and BR to have region datasets")
	}
	if specs.HasRegionDataset("GB") || specs.HasRegionDataset("NL") {
		t.Fatalf("did not expect GB/NL region datasets")
	}
}

func TestKeyForField(t *testing.T) {
	specs := specifications.Default()

	cases := map[string]struct {
		field, country, want string
	}{
		"us zip":        {"postalCode", "US", "zipCode"},
		"gb city":       {"city", "GB", "cityTown"},
		"default field": {"city", "NL", "city"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := specs.KeyForField(tc.field, tc.country); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNew_OverridesReplaceCountryEntry(t *testing.T) {
	specs, err := specifications.New(map[string]specifications.Specification{
		"nl": {
			OptionalFields: []string{"houseNumberOrName"},
			Schema: specifications.Schema{
				specifications.Single("country"),
				specifications.Row(specifications.Col("postalCode", 30), specifications.Col("houseNumberOrName", 70)),
			},
		},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if diff := cmp.Diff([]string{"country", "postalCode", "houseNumberOrName"}, specs.FlatSchemaFor("NL")); diff != "" {
		t.Fatalf("override schema mismatch (-want +got):\n%s", diff)
	}
	if !specs.IsOptional("houseNumberOrName", "NL") {
		t.Fatalf("expected override optional field")
	}
	if !specs.HasRegionDataset("US") {
		t.Fatalf("built-in entries must survive overrides")
	}
}

func TestLoadYAML(t *testing.T) {
	doc := `
specifications:
  nl:
    optionalFields: [houseNumberOrName]
    labels:
      postalCode: postcode
    schema:
      - country
      - [[street, 70], [houseNumberOrName, 30]]
      - - field: postalCode
          width: 30
        - city
`
	specs, err := specifications.LoadYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	nl, ok := specs["NL"]
	if !ok {
		t.Fatalf("expected NL entry, got %v", specs)
	}
	want := specifications.Schema{
		{Field: "country"},
		{Group: []specifications.Column{{Field: "street", Width: 70}, {Field: "houseNumberOrName", Width: 30}}},
		{Group: []specifications.Column{{Field: "postalCode", Width: 30}, {Field: "city"}}},
	}
	if diff := cmp.Diff(want, nl.Schema); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
	if nl.Labels["postalCode"] != "postcode" {
		t.Fatalf("labels not parsed: %#v", nl.Labels)
	}
}

func TestLoadYAML_RejectsDuplicateFields(t *testing.T) {
	doc := `
specifications:
  NL:
    schema:
      - city
      - [[city, 30], [street, 70]]
`
	_, err := specifications.LoadYAML(strings.NewReader(doc))
	if !errors.Is(err, specifications.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
}

func TestLoadFS_DuplicateCountryAcrossFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("specifications:\n  NL:\n    schema: [country]\n")},
		"b.json": {Data: []byte(`{"specifications": {"nl": {"schema": ["city"]}}}`)},
	}
	if _, err := specifications.LoadFS(fsys); err == nil {
		t.Fatalf("expected duplicate country error")
	}

	delete(fsys, "b.json")
	fsys["c.yml"] = &fstest.MapFile{Data: []byte("specifications:\n  BE:\n    hasDataset: true\n")}
	specs, err := specifications.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	merged, err := specifications.New(specs)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !merged.HasRegionDataset("BE") {
		t.Fatalf("expected BE dataset from file")
	}
}

func TestNew_RejectsDuplicateFields(t *testing.T) {
	specs, err := specifications.New(map[string]specifications.Specification{
		"XX": {
			Schema: specifications.Schema{
				specifications.Single("country"),
				specifications.Single("city"),
				specifications.Row(specifications.Col("city", 50), specifications.Col("street", 50)),
			},
		},
	})
	if !errors.Is(err, specifications.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
	if specs != nil {
		t.Fatalf("expected no specifications on error")
	}
}

func TestNew_RejectsEmptyCountry(t *testing.T) {
	_, err := specifications.New(map[string]specifications.Specification{
		" ": {Schema: specifications.Schema{specifications.Single("country")}},
	})
	if !errors.Is(err, specifications.ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
}
