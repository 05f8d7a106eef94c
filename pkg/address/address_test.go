package address

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-addressform/pkg/form"
	"github.com/goliatone/go-addressform/pkg/i18n"
	"github.com/goliatone/go-addressform/pkg/lookup"
	"github.com/goliatone/go-addressform/pkg/rules"
	"github.com/goliatone/go-addressform/pkg/specifications"
	"github.com/goliatone/go-addressform/pkg/srerrors"
	"github.com/goliatone/go-addressform/pkg/srpanel"
)

func translator(t *testing.T) i18n.Translator {
	t.Helper()
	catalog, err := i18n.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return catalog.Localizer("en-US")
}

func noopLookup(context.Context, string) ([]lookup.Candidate, error) {
	return nil, nil
}

func completeUS() map[string]string {
	return map[string]string{
		"country":         "US",
		"street":          "Main St",
		"city":            "Boston",
		"stateOrProvince": "MA",
		"postalCode":      "02110",
	}
}

func TestUSPostalCodeReportsExpectedFormat(t *testing.T) {
	a := New(WithCountryCode("US"), WithData(map[string]string{"country": "US"}), WithTranslator(translator(t)))

	a.HandleChange("postalCode", form.EventBlur, "123")

	result, ok := a.Errors()["postalCode"]
	if !ok {
		t.Fatalf("expected postalCode error")
	}
	if result.Message.Kind != rules.MessageStructured || result.Message.Format() != "99999" {
		t.Fatalf("unexpected message %+v", result.Message)
	}

	want := []srerrors.Record{{
		Field:        "postalCode",
		ErrorMessage: "Zip code Invalid format. Expected format: 99999",
		ErrorCode:    "invalid.format.expects",
	}}
	if diff := cmp.Diff(want, a.ErrorRecords(false)); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	if got := a.Decision().Action; got != srpanel.ActionBlurScenario {
		t.Fatalf("action = %q, want blur scenario", got)
	}
}

func TestCountryChangeResetsRegionAndRevalidatesPostalCode(t *testing.T) {
	a := New(WithData(map[string]string{
		"country":           "NL",
		"street":            "Damrak",
		"houseNumberOrName": "1",
		"postalCode":        "1012AB",
		"city":              "Amsterdam",
	}))
	if got := a.Data()["stateOrProvince"]; got != "N/A" {
		t.Fatalf("initial region = %q, want N/A", got)
	}

	a.HandleChange("country", form.EventBlur, "us")
	if a.Country() != "US" {
		t.Fatalf("country = %q", a.Country())
	}
	if got := a.Data()["stateOrProvince"]; got != "" {
		t.Fatalf("region = %q, want empty for a country with a dataset", got)
	}
	if _, ok := a.Errors()["postalCode"]; !ok {
		t.Fatalf("filled postal code must be revalidated for the new country")
	}
	if _, ok := a.Errors()["street"]; ok {
		t.Fatalf("other fields must only be revalidated in input mode")
	}

	a.HandleChange("country", form.EventBlur, "NL")
	if got := a.Data()["stateOrProvince"]; got != "N/A" {
		t.Fatalf("region = %q, want N/A for a country without a dataset", got)
	}
	result := a.Errors()["postalCode"]
	if result.Message.Format() != "9999AA" {
		t.Fatalf("format = %q, want 9999AA", result.Message.Format())
	}
}

func TestCountryChangeKeepsValidatedSchema(t *testing.T) {
	specs, err := specifications.New(map[string]specifications.Specification{
		"XX": {Schema: specifications.Schema{
			specifications.Single("country"),
			specifications.Single("street"),
			specifications.Row(specifications.Col("postalCode", 30), specifications.Col("city", 70)),
		}},
	})
	if err != nil {
		t.Fatalf("specifications: %v", err)
	}
	a := New(WithCountryCode("US"), WithData(map[string]string{"country": "US"}), WithSpecifications(specs))
	schema := a.form.Schema()

	a.HandleChange("country", form.EventBlur, "XX")

	if diff := cmp.Diff([]string{"country", "street", "postalCode", "city"}, a.Layout()); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(schema, a.form.Schema()); diff != "" {
		t.Fatalf("validated schema changed (-want +got):\n%s", diff)
	}
}

func TestSelectAddressSuppressesCountryReaction(t *testing.T) {
	a := New(WithCountryCode("US"), WithData(completeUS()), WithAddressLookup(noopLookup))
	defer a.Close()

	if a.ShowAddressFields() {
		t.Fatalf("fields must be hidden until an address is selected")
	}

	a.SelectAddress(context.Background(), lookup.Candidate{
		ID: "1",
		Address: map[string]any{
			"country":           "CA",
			"street":            "Rue Sainte-Catherine",
			"houseNumberOrName": 5,
			"city":              "Montreal",
			"stateOrProvince":   "QC",
			"postalCode":        "H2X 1Y4",
			"ignored":           "x",
		},
	})

	data := a.Data()
	if data["stateOrProvince"] != "QC" {
		t.Fatalf("selected region must survive, got %q", data["stateOrProvince"])
	}
	if data["houseNumberOrName"] != "5" {
		t.Fatalf("houseNumberOrName = %q, want coerced 5", data["houseNumberOrName"])
	}
	if _, ok := data["ignored"]; ok {
		t.Fatalf("fields outside the address schema must not be merged")
	}
	if !a.IsValid() || !a.ShowAddressFields() {
		t.Fatalf("selected address must be valid and shown, errors=%v", a.Errors())
	}

	a.HandleChange("country", form.EventBlur, "US")
	if got := a.Data()["stateOrProvince"]; got != "" {
		t.Fatalf("user country change must reset the region, got %q", got)
	}
}

func TestSelectAddressWithoutCountryChangeDoesNotSwallowNextChange(t *testing.T) {
	a := New(WithCountryCode("US"), WithData(completeUS()), WithAddressLookup(noopLookup))
	defer a.Close()

	a.SelectAddress(context.Background(), lookup.Candidate{Address: map[string]any{
		"country": "US",
		"city":    123,
		"street":  nil,
	}})
	data := a.Data()
	if data["city"] != "123" || data["street"] != "Main St" {
		t.Fatalf("unexpected merge result %v", data)
	}

	a.HandleChange("country", form.EventBlur, "CA")
	if got := a.Data()["stateOrProvince"]; got != "" {
		t.Fatalf("country change after selection must react, region = %q", got)
	}
}

func TestSelectAddressEnrichmentFailure(t *testing.T) {
	tr := translator(t)
	a := New(
		WithAddressLookup(noopLookup),
		WithTranslator(tr),
		WithAddressSelected(func(context.Context, lookup.Candidate) (lookup.Candidate, error) {
			return lookup.Candidate{}, errors.New("details unavailable")
		}),
	)
	defer a.Close()

	a.SelectAddress(context.Background(), lookup.Candidate{ID: "1"})
	if a.SearchError() != tr.Get(KeySearchLookupFailed, nil) {
		t.Fatalf("search error = %q", a.SearchError())
	}
	if a.ShowAddressFields() {
		t.Fatalf("failed selection must not reveal the fields")
	}
	a.DismissSearchError()
	if a.SearchError() != "" {
		t.Fatalf("search error must be dismissable")
	}
}

func TestShowValidationAnnouncesErrorsAndFlagsIncompleteSearch(t *testing.T) {
	tr := translator(t)
	panel := srpanel.NewPanel("sr")
	a := New(
		WithCountryCode("US"),
		WithData(map[string]string{"country": "US"}),
		WithTranslator(tr),
		WithLiveRegion(panel),
		WithAddressLookup(noopLookup),
	)
	defer a.Close()

	a.ShowValidation()

	if got, want := a.SearchError(), "Enter an address to continue"; got != want {
		t.Fatalf("search error = %q, want %q", got, want)
	}
	decision := a.Decision()
	if decision.Action != srpanel.ActionFocusField || decision.FieldToFocus != "street" {
		t.Fatalf("decision = %+v", decision)
	}
	want := []string{
		"Enter the Address",
		"Enter the City",
		"Enter the State",
		"Zip code Invalid format. Expected format: 99999",
	}
	if diff := cmp.Diff(want, panel.Messages()); diff != "" {
		t.Fatalf("announced messages mismatch (-want +got):\n%s", diff)
	}

	a.UseManualAddress()
	a.ShowValidation()
	if a.SearchError() != "" {
		t.Fatalf("search error must clear once fields are shown")
	}

	a.HandleChange("city", form.EventInput, "Boston")
	if len(panel.Messages()) != 0 {
		t.Fatalf("editing must clear the live region")
	}
}

func TestAnnotatedMessages(t *testing.T) {
	panel := srpanel.NewPanel("sr")
	a := New(WithData(map[string]string{"country": "US"}), WithLiveRegion(panel), WithAnnotatedMessages(true))
	a.ShowValidation()
	for _, msg := range panel.Messages() {
		if msg[len(msg)-3:] != srerrors.AnnotationSuffix {
			t.Fatalf("message %q lacks the annotation suffix", msg)
		}
	}
}

func TestChangeEventRoundTrip(t *testing.T) {
	first := New(WithCountryCode("US"), WithData(completeUS()))
	event := first.ChangeEvent()

	want := map[string]string{
		"country":           "US",
		"street":            "Main St",
		"houseNumberOrName": "N/A",
		"city":              "Boston",
		"stateOrProvince":   "MA",
		"postalCode":        "02110",
	}
	if diff := cmp.Diff(want, event.Data); diff != "" {
		t.Fatalf("event data mismatch (-want +got):\n%s", diff)
	}
	if !event.IsValid {
		t.Fatalf("complete address must be valid, errors=%v", event.Errors)
	}

	second := New(WithCountryCode("US"), WithData(event.Data))
	if diff := cmp.Diff(event.Data, second.ChangeEvent().Data); diff != "" {
		t.Fatalf("round trip mismatch (-first +second):\n%s", diff)
	}
}

func TestChangeEventRecoversUncollectedDefaults(t *testing.T) {
	a := New(
		WithRequiredFields("country", "postalCode"),
		WithData(map[string]string{"country": "US", "postalCode": "02110", "street": "Main St"}),
	)
	got := a.ChangeEvent().Data
	want := map[string]string{
		"country":           "US",
		"postalCode":        "02110",
		"street":            "Main St",
		"houseNumberOrName": "N/A",
		"city":              "N/A",
		"stateOrProvince":   "N/A",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("event data mismatch (-want +got):\n%s", diff)
	}
	if !a.IsValid() {
		t.Fatalf("only collected fields are validated")
	}
}

func TestInitialRegion(t *testing.T) {
	cases := []struct {
		name string
		opts []Option
		want string
	}{
		{"dataset country", []Option{WithData(map[string]string{"country": "US"})}, ""},
		{"no dataset", []Option{WithData(map[string]string{"country": "NL"})}, "N/A"},
		{"provided value", []Option{WithData(map[string]string{"country": "US", "stateOrProvince": "CA"})}, "CA"},
		{"region not collected", []Option{
			WithRequiredFields("country", "street"),
			WithData(map[string]string{"country": "US"}),
		}, "N/A"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := New(tc.opts...).Data()["stateOrProvince"]; got != tc.want {
				t.Fatalf("region = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestOnChangeEmittedPerOperation(t *testing.T) {
	var events []ChangeEvent
	a := New(WithData(map[string]string{"country": "NL"}), WithOnChange(func(e ChangeEvent) {
		events = append(events, e)
	}))
	if len(events) != 1 {
		t.Fatalf("expected initial event, got %d", len(events))
	}

	a.HandleChange("city", form.EventInput, "Utrecht")
	if len(events) != 2 || events[1].Data["city"] != "Utrecht" {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestFocusedFieldAndRows(t *testing.T) {
	a := New(WithData(map[string]string{"country": "US"}), WithFocusedField("city"))
	if diff := cmp.Diff([]string{"city"}, a.EnabledFields()); diff != "" {
		t.Fatalf("enabled fields mismatch (-want +got):\n%s", diff)
	}

	rows := a.Rows()
	if len(rows) != 5 {
		t.Fatalf("expected 5 US rows, got %d", len(rows))
	}
	last := rows[4]
	if len(last) != 2 || last[0].Name != "stateOrProvince" || last[1].Name != "postalCode" {
		t.Fatalf("unexpected last row %+v", last)
	}
	if last[1].MaxLength != 10 || !last[1].Disabled {
		t.Fatalf("postalCode view = %+v", last[1])
	}
	if !last[0].HasOptions {
		t.Fatalf("US region must be a select")
	}
}

func TestRowsRespectVisibility(t *testing.T) {
	for _, v := range []Visibility{VisibilityHidden, VisibilityReadOnly} {
		if rows := New(WithVisibility(v)).Rows(); rows != nil {
			t.Fatalf("%s: expected no rows, got %d", v, len(rows))
		}
	}
	if got := ParseVisibility("readOnly"); got != VisibilityReadOnly {
		t.Fatalf("ParseVisibility = %q", got)
	}
	if got := ParseVisibility("bogus"); got != VisibilityEditable {
		t.Fatalf("ParseVisibility = %q", got)
	}
}

func TestFieldAnalytics(t *testing.T) {
	var focused, blurred []FieldEvent
	a := New(WithFieldAnalytics(
		func(e FieldEvent) { focused = append(focused, e) },
		func(e FieldEvent) { blurred = append(blurred, e) },
	))

	a.HandleFocus("city")
	a.HandleChange("city", form.EventInput, "Bost")
	a.HandleChange("city", form.EventBlur, " Boston ")

	if diff := cmp.Diff([]FieldEvent{{Field: "city"}}, focused); diff != "" {
		t.Fatalf("focus events mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]FieldEvent{{Field: "city", Value: "Boston"}}, blurred); diff != "" {
		t.Fatalf("blur events mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchWithoutLookup(t *testing.T) {
	a := New()
	if err := a.Search(context.Background(), "main"); !errors.Is(err, ErrSearchDisabled) {
		t.Fatalf("expected ErrSearchDisabled, got %v", err)
	}
	if !a.ShowAddressFields() {
		t.Fatalf("fields are always shown without search")
	}
}

func TestHandleLookupResult(t *testing.T) {
	tr := translator(t)
	a := New(WithAddressLookup(noopLookup), WithTranslator(tr))
	defer a.Close()

	a.HandleLookupResult(lookup.Result{Query: "x", Err: errors.New("timeout")})
	if a.SearchError() != tr.Get(KeySearchLookupFailed, nil) {
		t.Fatalf("search error = %q", a.SearchError())
	}
	a.HandleLookupResult(lookup.Result{Query: "x"})
	if a.SearchError() != "" {
		t.Fatalf("successful lookup must clear the error")
	}
}
