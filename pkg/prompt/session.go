package prompt

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-addressform/components/countries"
	"github.com/goliatone/go-addressform/pkg/ach"
	"github.com/goliatone/go-addressform/pkg/address"
	"github.com/goliatone/go-addressform/pkg/form"
	"github.com/goliatone/go-addressform/pkg/i18n"
	"github.com/goliatone/go-addressform/pkg/specifications"
	"github.com/goliatone/go-addressform/pkg/srerrors"
)

const (
	defaultMaxAttempts = 3
	keyStoreDetails    = "ach.storeDetails"
)

var accountTypeKeys = map[string]string{
	ach.AccountChecking: "ach.checking",
	ach.AccountSavings:  "ach.savings",
}

// Option configures a Session.
type Option func(*Session)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithDataset sets the country and region lists offered by select prompts.
func WithDataset(ds countries.Dataset) Option {
	return func(s *Session) {
		s.dataset = &ds
	}
}

// WithTranslator sets the translator used for option labels.
func WithTranslator(t i18n.Translator) Option {
	return func(s *Session) {
		if t != nil {
			s.translator = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxAttempts limits how often an invalid answer is asked again. The
// field keeps its error once the limit is reached.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// Session asks for the fields of a form one at a time.
type Session struct {
	driver      Driver
	dataset     *countries.Dataset
	translator  i18n.Translator
	logger      *slog.Logger
	maxAttempts int
}

// New builds a session. Without WithDataset the embedded country list is
// used.
func New(opts ...Option) (*Session, error) {
	s := &Session{
		translator:  i18n.KeyTranslator,
		logger:      slog.New(slog.DiscardHandler),
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	if s.dataset == nil {
		ds, err := countries.DefaultDataset()
		if err != nil {
			return nil, fmt.Errorf("prompt: load countries: %w", err)
		}
		s.dataset = &ds
	}
	return s, nil
}

type changeFunc func(field string, kind form.EventKind, value string)

// FillAddress asks for every enabled field of an editable address and then
// validates the whole form.
func (s *Session) FillAddress(ctx context.Context, a *address.Address) error {
	if err := s.fillAddress(ctx, a, a.HandleChange); err != nil {
		return err
	}
	a.ShowValidation()
	return nil
}

func (s *Session) fillAddress(ctx context.Context, a *address.Address, change changeFunc) error {
	if s.driver == nil {
		return ErrNoDriver
	}
	if a.Visibility() != address.VisibilityEditable {
		return nil
	}
	if !a.ShowAddressFields() {
		a.UseManualAddress()
	}

	// The country comes first since it decides the remaining layout.
	if view, ok := findView(a.Rows(), specifications.FieldCountry); ok && !view.Disabled {
		if err := s.askAddressField(ctx, a, change, specifications.FieldCountry); err != nil {
			return err
		}
	}
	for _, row := range a.Rows() {
		for _, view := range row {
			if view.Name == specifications.FieldCountry || view.Disabled {
				continue
			}
			// Regions are only collected from a list.
			if view.Name == specifications.FieldStateOrProvince && !view.HasOptions {
				continue
			}
			if err := s.askAddressField(ctx, a, change, view.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) askAddressField(ctx context.Context, a *address.Address, change changeFunc, field string) error {
	for attempt := 1; ; attempt++ {
		view, ok := findView(a.Rows(), field)
		if !ok {
			return nil
		}
		value, err := s.addressValue(ctx, a, view)
		if err != nil {
			return err
		}
		change(field, form.EventInput, value)
		change(field, form.EventBlur, value)

		msg := recordMessage(a.ErrorRecords(false), field)
		if msg == "" {
			return nil
		}
		s.logger.Debug("invalid answer", "field", field, "attempt", attempt)
		if err := s.driver.Info(ctx, msg); err != nil {
			return err
		}
		if attempt >= s.maxAttempts {
			return nil
		}
	}
}

func (s *Session) addressValue(ctx context.Context, a *address.Address, view address.FieldView) (string, error) {
	var options []countries.Entry
	switch view.Name {
	case specifications.FieldCountry:
		options = s.dataset.Filter(a.AllowedCountries())
	case specifications.FieldStateOrProvince:
		if view.HasOptions {
			options = s.dataset.RegionsFor(a.Country())
		}
	}
	if len(options) > 0 {
		return s.selectEntry(ctx, view, options)
	}

	current := view.Value
	if current == specifications.FallbackValue {
		current = ""
	}
	return s.driver.Input(ctx, InputConfig{
		Message: view.Label,
		Default: current,
		Help:    view.Placeholder,
	})
}

func (s *Session) selectEntry(ctx context.Context, view address.FieldView, entries []countries.Entry) (string, error) {
	labels := make([]string, len(entries))
	current := -1
	for i, e := range entries {
		labels[i] = fmt.Sprintf("%s (%s)", e.Name, e.Code)
		if e.Code == view.Value {
			current = i
		}
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      view.Label,
		Options:      labels,
		DefaultIndex: current,
		Help:         view.Placeholder,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(entries) {
		return "", nil
	}
	return entries[idx].Code, nil
}

// FillAch asks for the bank account fields, the store opt-in and the billing
// address, then validates the whole form. Stored accounts only print the
// masked number.
func (s *Session) FillAch(ctx context.Context, a *ach.Ach) error {
	if s.driver == nil {
		return ErrNoDriver
	}
	cfg := a.Configuration()
	if cfg.IsStored() {
		return s.driver.Info(ctx, fmt.Sprintf("%s: %s", a.Title(ach.FieldBankAccountNumber), a.DisplayAccountNumber()))
	}

	for _, field := range a.Layout() {
		if err := s.askAchField(ctx, a, field); err != nil {
			return err
		}
	}
	if cfg.EnableStoreDetails {
		store, err := s.driver.Confirm(ctx, ConfirmConfig{Message: s.translator.Get(keyStoreDetails, nil)})
		if err != nil {
			return err
		}
		a.SetStorePaymentMethod(store)
	}
	if billing := a.Billing(); billing != nil {
		if err := s.fillAddress(ctx, billing, a.HandleBillingChange); err != nil {
			return err
		}
	}
	a.ShowValidation()
	return nil
}

func (s *Session) askAchField(ctx context.Context, a *ach.Ach, field string) error {
	for attempt := 1; ; attempt++ {
		value, err := s.achValue(ctx, a, field)
		if err != nil {
			return err
		}
		a.HandleChange(field, form.EventInput, value)
		a.HandleChange(field, form.EventBlur, value)

		msg := recordMessage(a.ErrorRecords(false), field)
		if msg == "" {
			return nil
		}
		if err := s.driver.Info(ctx, msg); err != nil {
			return err
		}
		if attempt >= s.maxAttempts {
			return nil
		}
	}
}

func (s *Session) achValue(ctx context.Context, a *ach.Ach, field string) (string, error) {
	cfg := InputConfig{Message: a.Title(field)}
	if key := a.Placeholder(field); key != "" {
		cfg.Help = s.translator.Get(key, nil)
	}

	switch field {
	case ach.FieldAccountType:
		labels := make([]string, len(ach.AccountTypes))
		current := -1
		for i, t := range ach.AccountTypes {
			labels[i] = s.translator.Get(accountTypeKeys[t], nil)
			if t == a.Data()[field] {
				current = i
			}
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      cfg.Message,
			Options:      labels,
			DefaultIndex: current,
			Help:         cfg.Help,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(ach.AccountTypes) {
			return "", nil
		}
		return ach.AccountTypes[idx], nil
	case ach.FieldBankAccountNumber, ach.FieldBankAccountNumberVerified:
		return s.driver.Password(ctx, cfg)
	}
	cfg.Default = a.Data()[field]
	return s.driver.Input(ctx, cfg)
}

func findView(rows []address.Row, field string) (address.FieldView, bool) {
	for _, row := range rows {
		for _, view := range row {
			if view.Name == field {
				return view, true
			}
		}
	}
	return address.FieldView{}, false
}

func recordMessage(records []srerrors.Record, field string) string {
	for _, r := range records {
		if r.Field == field {
			return r.ErrorMessage
		}
	}
	return ""
}
