package render

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-addressform/pkg/ach"
	"github.com/goliatone/go-addressform/pkg/address"
	"github.com/goliatone/go-addressform/pkg/form"
	"github.com/goliatone/go-addressform/pkg/i18n"
	"github.com/goliatone/go-addressform/pkg/testsupport"
)

func catalog(t *testing.T) i18n.Translator {
	t.Helper()
	c, err := i18n.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c.Localizer("en-US")
}

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	engine, err := New(opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func usAddress() map[string]string {
	return map[string]string{
		"street":            "Main St",
		"houseNumberOrName": "4B",
		"postalCode":        "12345",
		"city":              "Springfield",
		"stateOrProvince":   "IL",
		"country":           "US",
	}
}

func TestSummaryLines(t *testing.T) {
	cases := []struct {
		name string
		data map[string]string
		want []string
	}{
		{"complete", usAddress(), []string{"Main St 4B,", "12345, Springfield, IL, US"}},
		{
			"fallback values skipped",
			map[string]string{"street": "Damrak", "houseNumberOrName": "N/A", "postalCode": "1012LG", "city": "Amsterdam", "stateOrProvince": "N/A", "country": "NL"},
			[]string{"Damrak,", "1012LG, Amsterdam, NL"},
		},
		{"locality only", map[string]string{"city": "Paris", "country": "FR"}, []string{"Paris, FR"}},
		{"street only", map[string]string{"street": "Main St"}, []string{"Main St"}},
		{"empty", map[string]string{}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, SummaryLines(tc.data)); diff != "" {
				t.Fatalf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadOnlyAddress(t *testing.T) {
	engine := newEngine(t, WithTranslator(catalog(t)))

	var buf bytes.Buffer
	if err := engine.ReadOnlyAddress(&buf, "billingAddress", usAddress()); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "Billing address\nMain St 4B,\n12345, Springfield, IL, US\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestReadOnlyAddressWithoutLabel(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	if err := engine.ReadOnlyAddress(&buf, "", map[string]string{"city": "Paris", "country": "FR"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := buf.String(); got != "Paris, FR\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestAddressFollowsVisibility(t *testing.T) {
	tr := catalog(t)
	engine := newEngine(t, WithTranslator(tr))

	hidden := address.New(address.WithData(usAddress()), address.WithVisibility(address.VisibilityHidden))
	var buf bytes.Buffer
	if err := engine.Address(&buf, hidden); err != nil {
		t.Fatalf("render hidden: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("hidden address rendered %q", buf.String())
	}

	readOnly := address.New(
		address.WithData(usAddress()),
		address.WithVisibility(address.VisibilityReadOnly),
		address.WithLabel("billingAddress"),
		address.WithTranslator(tr),
	)
	buf.Reset()
	if err := engine.Address(&buf, readOnly); err != nil {
		t.Fatalf("render read-only: %v", err)
	}
	if got, want := buf.String(), "Billing address\nMain St 4B,\n12345, Springfield, IL, US\n"; got != want {
		t.Fatalf("read-only output = %q, want %q", got, want)
	}
}

func TestEditableAddressRows(t *testing.T) {
	tr := catalog(t)
	engine := newEngine(t, WithTranslator(tr))

	a := address.New(address.WithCountryCode("US"), address.WithData(usAddress()), address.WithTranslator(tr))
	var buf bytes.Buffer
	if err := engine.Address(&buf, a); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Country/Region: US\n",
		"Address: Main St\n",
		"City: Springfield\n",
		"State: IL | Zip code: 12345\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "!") {
		t.Fatalf("valid address rendered errors:\n%s", out)
	}
}

func TestEditableAddressShowsErrors(t *testing.T) {
	tr := catalog(t)
	engine := newEngine(t, WithTranslator(tr))

	a := address.New(
		address.WithCountryCode("US"),
		address.WithData(map[string]string{"country": "US"}),
		address.WithTranslator(tr),
	)
	a.ShowValidation()

	var buf bytes.Buffer
	if err := engine.Address(&buf, a); err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "address_us_errors.golden"), buf.Bytes())
}

func TestMessages(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	if err := engine.Messages(&buf, []string{"Enter the City", "Enter the State"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := buf.String(), "- Enter the City\n- Enter the State\n"; got != want {
		t.Fatalf("messages = %q, want %q", got, want)
	}

	buf.Reset()
	if err := engine.Messages(&buf, nil); err != nil || buf.Len() != 0 {
		t.Fatalf("empty messages rendered %q (err %v)", buf.String(), err)
	}
}

func TestMarkupIsNotEscaped(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	if err := engine.ReadOnlyAddress(&buf, "", map[string]string{"street": "Smith & Sons"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := buf.String(); got != "Smith & Sons\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestCustomTemplates(t *testing.T) {
	engine := newEngine(t, WithFS(fstest.MapFS{
		"messages.tpl": {Data: []byte("{{ messages|length }} errors")},
	}))

	var buf bytes.Buffer
	if err := engine.Messages(&buf, []string{"a", "b"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := buf.String(); got != "2 errors" {
		t.Fatalf("output = %q", got)
	}

	err := engine.Render(&buf, "missing", nil)
	if err == nil || !strings.Contains(err.Error(), `render: load template "missing.tpl"`) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestStoredAch(t *testing.T) {
	engine := newEngine(t, WithTranslator(catalog(t)))

	cfg := ach.DefaultConfiguration()
	cfg.StoredPaymentMethodID = "stored-1"
	cfg.BankAccountNumber = "•••• 3211"

	var buf bytes.Buffer
	if err := engine.Ach(&buf, ach.New(cfg)); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := buf.String(), "Account number\n•••• 3211\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestAchWithBillingAddress(t *testing.T) {
	tr := catalog(t)
	engine := newEngine(t, WithTranslator(tr))

	a := ach.New(ach.DefaultConfiguration(), ach.WithTranslator(tr))
	a.HandleChange(ach.FieldOwnerName, form.EventBlur, "Jane Doe")
	a.ShowValidation()

	var buf bytes.Buffer
	if err := engine.Ach(&buf, a); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Account type: checking\n",
		"Account holder name: Jane Doe\n",
		"ABA routing number: -\n  ! Enter the ABA routing number\n",
		"== Billing address ==\n",
		"  ! Enter the Address\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
