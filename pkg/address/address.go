package address

import (
	"log/slog"
	"slices"
	"time"

	"github.com/goliatone/go-addressform/pkg/form"
	"github.com/goliatone/go-addressform/pkg/i18n"
	"github.com/goliatone/go-addressform/pkg/lookup"
	"github.com/goliatone/go-addressform/pkg/rules"
	"github.com/goliatone/go-addressform/pkg/specifications"
	"github.com/goliatone/go-addressform/pkg/srerrors"
	"github.com/goliatone/go-addressform/pkg/srpanel"
)

// Translation keys surfaced on the search control.
const (
	KeySearchIncomplete   = "address.errors.incomplete"
	KeySearchLookupFailed = "address.errors.lookupFailed"
	KeySearchContextual   = "address.search.contextualText"
)

// Address is one address form instance.
type Address struct {
	specs            *specifications.Specifications
	translator       i18n.Translator
	logger           *slog.Logger
	countryCode      string
	requiredFields   []string
	defaultData      map[string]string
	customRules      rules.Set
	visibility       Visibility
	allowedCountries []string
	focusedField     string
	label            string
	annotate         bool

	onChange     func(ChangeEvent)
	onFieldFocus func(FieldEvent)
	onFieldBlur  func(FieldEvent)

	lookupFn        lookup.Func
	onSelected      SelectedFunc
	onSearchResults func(lookup.Result)
	searchDebounce  time.Duration
	searcher        *lookup.Searcher

	form       *form.Controller
	dispatcher *srpanel.Dispatcher
	decision   srpanel.Decision

	hasSelectedAddress  bool
	useManualAddress    bool
	searchError         string
	ignoreCountryChange bool
	validating          bool
	country             string
}

// New builds an address form and runs the initial country and region
// reactions.
func New(opts ...Option) *Address {
	a := &Address{
		specs:          specifications.Default(),
		translator:     i18n.KeyTranslator,
		logger:         slog.New(slog.DiscardHandler),
		requiredFields: append([]string(nil), specifications.AddressSchema...),
		defaultData:    map[string]string{},
		customRules:    rules.Set{},
		visibility:     VisibilityEditable,
		dispatcher:     srpanel.NewDispatcher(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	schema := make([]string, 0, len(a.requiredFields))
	for _, field := range a.specs.FlatSchemaFor(a.countryCode) {
		if slices.Contains(a.requiredFields, field) {
			schema = append(schema, field)
		}
	}

	a.form = form.New(
		form.WithSchema(schema...),
		form.WithDefaultData(a.defaultData),
		form.WithRules(rules.Merge(rules.AddressRules(a.specs), a.customRules)),
		form.WithFormatters(rules.AddressFormatters()),
		form.WithLogger(a.logger),
	)
	a.logger = a.logger.With("address", a.form.ID())

	if a.lookupFn != nil {
		a.searcher = lookup.NewSearcher(a.lookupFn, a.onSearchResults,
			lookup.WithDelay(a.searchDebounce),
			lookup.WithLogger(a.logger),
		)
	}

	a.country = a.form.Value(specifications.FieldCountry)
	a.applyCountryChange()
	a.initRegion()
	a.publish()
	return a
}

// ID returns the form instance id.
func (a *Address) ID() string {
	return a.form.ID()
}

// Data returns a copy of the raw form data.
func (a *Address) Data() map[string]string {
	return a.form.Data()
}

// Valid returns per-field validity.
func (a *Address) Valid() map[string]bool {
	return a.form.Valid()
}

// Errors returns the errors currently displayed.
func (a *Address) Errors() map[string]rules.Result {
	return a.form.Errors()
}

// IsValid reports whether every validated field is valid.
func (a *Address) IsValid() bool {
	return a.form.IsValid()
}

// Country returns the selected country.
func (a *Address) Country() string {
	return a.country
}

// Visibility returns the presentation mode.
func (a *Address) Visibility() Visibility {
	return a.visibility
}

// Label returns the fieldset label key.
func (a *Address) Label() string {
	return a.label
}

// AllowedCountries returns the selectable countries; empty means all.
func (a *Address) AllowedCountries() []string {
	return append([]string(nil), a.allowedCountries...)
}

// Layout returns the field order for the selected country.
func (a *Address) Layout() []string {
	return a.specs.FlatSchemaFor(a.country)
}

// Labels returns the country-specific label keys for the selected country.
func (a *Address) Labels() map[string]string {
	return a.specs.LabelsFor(a.country)
}

// Decision returns the last screen-reader dispatch.
func (a *Address) Decision() srpanel.Decision {
	return a.decision
}

// HandleFocus reports a field focus to analytics.
func (a *Address) HandleFocus(field string) {
	if a.onFieldFocus != nil {
		a.onFieldFocus(FieldEvent{Field: field, Value: a.form.Value(field)})
	}
}

// HandleChange applies a user edit.
func (a *Address) HandleChange(field string, kind form.EventKind, value string) {
	a.validating = false
	a.form.HandleChange(field, kind, value)
	if kind == form.EventBlur && a.onFieldBlur != nil {
		a.onFieldBlur(FieldEvent{Field: field, Value: a.form.Value(field)})
	}
	a.reactToCountry()
	a.publish()
}

// ShowValidation validates every field and surfaces all errors, announcing
// them on the live region. When the fields are hidden behind the search
// control an incomplete address is reported on the search control instead.
func (a *Address) ShowValidation() {
	a.validating = true
	a.form.TriggerValidation()
	if a.ShowAddressSearch() && !a.ShowAddressFields() && !a.form.IsValid() {
		a.searchError = a.translator.Get(KeySearchIncomplete, nil)
	} else {
		a.searchError = ""
	}
	a.publish()
}

// reactToCountry resets the form after the country changed, unless the
// change came from a selected search candidate.
func (a *Address) reactToCountry() {
	country := a.form.Value(specifications.FieldCountry)
	if country == a.country {
		return
	}
	a.country = country
	if a.ignoreCountryChange {
		a.ignoreCountryChange = false
		a.logger.Debug("country change from selected address", "country", country)
		return
	}
	a.applyCountryChange()
}

// applyCountryChange re-runs every required field in input mode, resetting the
// region, and re-validates a postal code that is already filled in.
func (a *Address) applyCountryChange() {
	region := specifications.FallbackValue
	if a.specs.HasRegionDataset(a.country) {
		region = ""
	}
	data := a.form.Data()
	data[specifications.FieldStateOrProvince] = region

	for _, field := range a.requiredFields {
		a.form.HandleChange(field, form.EventInput, data[field])
	}
	if postal := data[specifications.FieldPostalCode]; postal != "" {
		a.form.HandleChange(specifications.FieldPostalCode, form.EventBlur, postal)
	}
	a.logger.Debug("country changed", "country", a.country, "region", region)
}

// initRegion restores a provided region, or uses the fallback when the
// country has no dataset or the region is not collected.
func (a *Address) initRegion() {
	region := a.defaultData[specifications.FieldStateOrProvince]
	if region == "" {
		required := slices.Contains(a.requiredFields, specifications.FieldStateOrProvince)
		if !(required && a.country != "" && a.specs.HasRegionDataset(a.country)) {
			region = specifications.FallbackValue
		}
	}
	a.form.HandleChange(specifications.FieldStateOrProvince, form.EventInput, region)
}

// publish refreshes the live region and emits a change event.
func (a *Address) publish() {
	records := a.ErrorRecords(a.annotate)
	a.decision = a.dispatcher.Dispatch(records, a.validating)
	if a.onChange != nil {
		a.onChange(a.ChangeEvent())
	}
}

// ErrorRecords returns the displayed errors translated and in layout order.
func (a *Address) ErrorRecords(annotate bool) []srerrors.Record {
	return srerrors.SortErrorsByLayout(srerrors.FromResults(a.form.Errors()), srerrors.SortOptions{
		Layout:        a.Layout(),
		Translator:    a.translator,
		Labels:        a.Labels(),
		LabelResolver: srerrors.AddressLabelResolver,
		Annotate:      annotate,
	})
}

// Close stops background searches.
func (a *Address) Close() {
	if a.searcher != nil {
		a.searcher.Close()
	}
}
