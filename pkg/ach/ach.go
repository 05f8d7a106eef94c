package ach

import (
	"log/slog"
	"strings"

	"github.com/goliatone/go-addressform/pkg/address"
	"github.com/goliatone/go-addressform/pkg/form"
	"github.com/goliatone/go-addressform/pkg/i18n"
	"github.com/goliatone/go-addressform/pkg/srerrors"
	"github.com/goliatone/go-addressform/pkg/srpanel"
)

// BillingPrefix prefixes billing address fields in combined error records.
const BillingPrefix = "billingAddress-"

// PaymentType is the payment method type sent in the payload.
const PaymentType = "ach"

var fieldTitles = map[string]string{
	FieldAccountType:               "ach.accountTypeSelectorField.title",
	FieldOwnerName:                 "ach.accountHolderNameField.title",
	FieldBankLocationID:            "ach.accountLocationField.title",
	FieldBankAccountNumber:         "ach.accountNumberField.title",
	FieldBankAccountNumberVerified: "ach.accountNumberVerificationField.title",
}

// Option customises an Ach form.
type Option func(*Ach)

// WithTranslator injects the i18n collaborator.
func WithTranslator(t i18n.Translator) Option {
	return func(a *Ach) {
		if t != nil {
			a.translator = t
		}
	}
}

// WithLogger injects a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Ach) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithLiveRegion routes screen-reader announcements to region.
func WithLiveRegion(region srpanel.LiveRegion) Option {
	return func(a *Ach) {
		a.dispatcher = srpanel.NewDispatcher(region)
	}
}

// WithAnnotatedMessages appends the "-sr" marker to live-region messages.
func WithAnnotatedMessages(enabled bool) Option {
	return func(a *Ach) {
		a.annotate = enabled
	}
}

// WithData seeds the bank account fields.
func WithData(data map[string]string) Option {
	return func(a *Ach) {
		a.defaults = data
	}
}

// WithBillingAddressOptions passes extra options to the billing address.
func WithBillingAddressOptions(opts ...address.Option) Option {
	return func(a *Ach) {
		a.billingOpts = append(a.billingOpts, opts...)
	}
}

// Ach is one bank account form instance. It is not safe for concurrent use.
type Ach struct {
	cfg         Configuration
	translator  i18n.Translator
	logger      *slog.Logger
	dispatcher  *srpanel.Dispatcher
	annotate    bool
	defaults    map[string]string
	billingOpts []address.Option

	form         *form.Controller
	billing      *address.Address
	decision     srpanel.Decision
	validating   bool
	storeDetails bool
}

// New builds an ACH form for cfg.
func New(cfg Configuration, opts ...Option) *Ach {
	a := &Ach{
		cfg:        cfg,
		translator: i18n.KeyTranslator,
		logger:     slog.New(slog.DiscardHandler),
		dispatcher: srpanel.NewDispatcher(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	defaults := map[string]string{FieldAccountType: AccountChecking}
	for k, v := range a.defaults {
		defaults[k] = v
	}
	a.form = form.New(
		form.WithSchema(a.Layout()...),
		form.WithRules(Rules()),
		form.WithFormatters(Formatters()),
		form.WithDefaultData(defaults),
		form.WithLogger(a.logger),
	)
	a.logger = a.logger.With("ach", a.form.ID())

	if cfg.BillingAddressRequired && !cfg.IsStored() {
		billingOpts := []address.Option{
			address.WithCountryCode("US"),
			address.WithData(map[string]string{"country": "US"}),
			address.WithAllowedCountries(cfg.BillingAddressAllowedCountries...),
			address.WithTranslator(a.translator),
			address.WithLogger(a.logger),
			address.WithLabel("billingAddress"),
		}
		if len(cfg.BillingAddressRequiredFields) > 0 {
			billingOpts = append(billingOpts, address.WithRequiredFields(cfg.BillingAddressRequiredFields...))
		}
		a.billing = address.New(append(billingOpts, a.billingOpts...)...)
	}
	return a
}

// Configuration returns the form configuration.
func (a *Ach) Configuration() Configuration {
	return a.cfg
}

// Layout returns the collected bank account fields in display order. Stored
// accounts collect nothing.
func (a *Ach) Layout() []string {
	if a.cfg.IsStored() {
		return nil
	}
	fields := []string{FieldAccountType}
	if a.cfg.HasHolderName {
		fields = append(fields, FieldOwnerName)
	}
	return append(fields, FieldBankLocationID, FieldBankAccountNumber, FieldBankAccountNumberVerified)
}

// Billing returns the billing address, or nil when not collected.
func (a *Ach) Billing() *address.Address {
	return a.billing
}

// Title returns the translated label of an ACH field.
func (a *Ach) Title(field string) string {
	if key, ok := fieldTitles[field]; ok {
		return a.translator.Get(key, nil)
	}
	return field
}

// Placeholder returns the configured placeholder of an ACH field.
func (a *Ach) Placeholder(field string) string {
	p := a.cfg.Placeholders
	switch field {
	case FieldAccountType:
		return p.AccountTypeSelector
	case FieldOwnerName:
		return p.OwnerName
	case FieldBankLocationID:
		return p.RoutingNumber
	case FieldBankAccountNumber:
		return p.AccountNumber
	case FieldBankAccountNumberVerified:
		return p.AccountNumberVerification
	}
	return ""
}

// Data returns a copy of the bank account data.
func (a *Ach) Data() map[string]string {
	return a.form.Data()
}

// HandleChange applies a user edit. Editing the account number re-checks a
// filled-in confirmation.
func (a *Ach) HandleChange(field string, kind form.EventKind, value string) {
	a.validating = false
	a.form.HandleChange(field, kind, value)
	if field == FieldBankAccountNumber {
		if confirm := a.form.Value(FieldBankAccountNumberVerified); confirm != "" {
			a.form.HandleChange(FieldBankAccountNumberVerified, form.EventInput, confirm)
		}
	}
	a.publish()
}

// HandleBillingChange applies a user edit to the billing address.
func (a *Ach) HandleBillingChange(field string, kind form.EventKind, value string) {
	if a.billing == nil {
		return
	}
	a.validating = false
	a.billing.HandleChange(field, kind, value)
	a.publish()
}

// SetStorePaymentMethod records the store-details choice. It is ignored
// unless storing is enabled.
func (a *Ach) SetStorePaymentMethod(store bool) {
	a.storeDetails = store && a.cfg.EnableStoreDetails
}

// IsValid reports whether the form can be submitted.
func (a *Ach) IsValid() bool {
	if a.cfg.IsStored() {
		return true
	}
	if !a.form.IsValid() {
		return false
	}
	return a.billing == nil || a.billing.IsValid()
}

// ShowValidation validates everything and announces every error.
func (a *Ach) ShowValidation() {
	a.validating = true
	a.form.TriggerValidation()
	if a.billing != nil {
		a.billing.ShowValidation()
	}
	a.publish()
}

// Decision returns the last screen-reader dispatch.
func (a *Ach) Decision() srpanel.Decision {
	return a.decision
}

// ErrorRecords returns the bank account and billing errors in display order.
// Billing fields carry BillingPrefix.
func (a *Ach) ErrorRecords(annotate bool) []srerrors.Record {
	entries := srerrors.FromResults(a.form.Errors())
	layout := a.Layout()
	var billingLabels map[string]string

	if a.billing != nil {
		for field, entry := range srerrors.PrefixKeys(srerrors.FromResults(a.billing.Errors()), BillingPrefix) {
			entries[field] = entry
		}
		for _, field := range a.billing.Layout() {
			layout = append(layout, BillingPrefix+field)
		}
		billingLabels = a.billing.Labels()
	}

	return srerrors.SortErrorsByLayout(entries, srerrors.SortOptions{
		Layout:        layout,
		Translator:    a.translator,
		Labels:        billingLabels,
		LabelResolver: a.resolveLabel,
		Annotate:      annotate,
	})
}

func (a *Ach) resolveLabel(field string, t i18n.Translator, labels map[string]string) string {
	if strings.HasPrefix(field, BillingPrefix) {
		return srerrors.AddressLabelResolver(strings.TrimPrefix(field, BillingPrefix), t, labels)
	}
	if key, ok := fieldTitles[field]; ok {
		return t.Get(key, nil)
	}
	return ""
}

func (a *Ach) publish() {
	a.decision = a.dispatcher.Dispatch(a.ErrorRecords(a.annotate), a.validating)
	a.logger.Debug("ach state", "valid", a.IsValid(), "action", string(a.decision.Action))
}
