package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/goliatone/go-addressform/components/countries"
	"github.com/goliatone/go-addressform/internal/config"
	"github.com/goliatone/go-addressform/internal/logging"
	"github.com/goliatone/go-addressform/pkg/ach"
	"github.com/goliatone/go-addressform/pkg/address"
	"github.com/goliatone/go-addressform/pkg/i18n"
	"github.com/goliatone/go-addressform/pkg/prompt"
	"github.com/goliatone/go-addressform/pkg/render"
	"github.com/goliatone/go-addressform/pkg/specifications"
	"github.com/goliatone/go-addressform/pkg/srerrors"
	"github.com/goliatone/go-addressform/pkg/srpanel"
)

var errIncomplete = errors.New("form is incomplete")

const shutdownTimeout = 5 * time.Second

type app struct {
	cfg    config.Config
	driver prompt.Driver
	stdout io.Writer
	stderr io.Writer

	logger     *slog.Logger
	translator i18n.Translator
	engine     *render.Engine
	session    *prompt.Session
	panel      *srpanel.Panel
}

type addressOutput struct {
	Data    map[string]string `json:"data"`
	IsValid bool              `json:"isValid"`
	Errors  []srerrors.Record `json:"errors,omitempty"`
}

type achOutput struct {
	PaymentData ach.PaymentData   `json:"data"`
	IsValid     bool              `json:"isValid"`
	Errors      []srerrors.Record `json:"errors,omitempty"`
}

func (a *app) run(ctx context.Context) error {
	logger, err := logging.New(a.stderr, logging.Format(a.cfg.LogFormat), a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger

	if a.cfg.ServeAddr != "" {
		return a.serve(ctx)
	}

	catalog, err := i18n.Default(i18n.WithLogger(logger), i18n.WithMissingKeyLogging(true))
	if err != nil {
		return err
	}
	a.translator = catalog.Localizer(a.cfg.Locale)

	a.engine, err = render.New(render.WithTranslator(a.translator), render.WithLogger(logger))
	if err != nil {
		return err
	}
	a.session, err = prompt.New(
		prompt.WithDriver(a.driver),
		prompt.WithTranslator(a.translator),
		prompt.WithLogger(logger),
		prompt.WithMaxAttempts(a.cfg.MaxAttempts),
	)
	if err != nil {
		return err
	}
	a.panel = srpanel.NewPanel("")

	if a.cfg.Form == "ach" {
		return a.runAch(ctx)
	}
	return a.runAddress(ctx)
}

func (a *app) runAddress(ctx context.Context) error {
	opts := []address.Option{
		address.WithCountryCode(a.cfg.Country),
		address.WithData(map[string]string{specifications.FieldCountry: a.cfg.Country}),
		address.WithAllowedCountries(a.cfg.AllowedCountries...),
		address.WithVisibility(address.ParseVisibility(a.cfg.Visibility)),
		address.WithTranslator(a.translator),
		address.WithLogger(a.logger),
		address.WithLabel(a.cfg.Label),
		address.WithLiveRegion(a.panel),
		address.WithAnnotatedMessages(a.cfg.Annotate),
	}
	if len(a.cfg.RequiredFields) > 0 {
		opts = append(opts, address.WithRequiredFields(a.cfg.RequiredFields...))
	}
	form := address.New(opts...)
	defer form.Close()

	if err := a.session.FillAddress(ctx, form); err != nil {
		return err
	}
	if err := a.engine.Messages(a.stderr, a.panel.Messages()); err != nil {
		return err
	}

	event := form.ChangeEvent()
	if a.cfg.Output == "text" {
		if err := a.engine.ReadOnlyAddress(a.stdout, a.cfg.Label, event.Data); err != nil {
			return err
		}
	} else if err := a.writeJSON(addressOutput{
		Data:    event.Data,
		IsValid: event.IsValid,
		Errors:  form.ErrorRecords(false),
	}); err != nil {
		return err
	}

	if !event.IsValid {
		return errIncomplete
	}
	return nil
}

func (a *app) runAch(ctx context.Context) error {
	cfg, err := a.achConfiguration()
	if err != nil {
		return err
	}
	form := ach.New(cfg,
		ach.WithTranslator(a.translator),
		ach.WithLogger(a.logger),
		ach.WithLiveRegion(a.panel),
		ach.WithAnnotatedMessages(a.cfg.Annotate),
	)
	if billing := form.Billing(); billing != nil {
		defer billing.Close()
	}

	if err := a.session.FillAch(ctx, form); err != nil {
		return err
	}
	if err := a.engine.Messages(a.stderr, a.panel.Messages()); err != nil {
		return err
	}

	if a.cfg.Output == "text" {
		if err := a.engine.Ach(a.stdout, form); err != nil {
			return err
		}
	} else if err := a.writeJSON(achOutput{
		PaymentData: form.PaymentData(),
		IsValid:     form.IsValid(),
		Errors:      form.ErrorRecords(false),
	}); err != nil {
		return err
	}

	if !form.IsValid() {
		return errIncomplete
	}
	return nil
}

func (a *app) achConfiguration() (ach.Configuration, error) {
	cfg := ach.DefaultConfiguration()
	if a.cfg.AchConfigFile != "" {
		f, err := os.Open(a.cfg.AchConfigFile)
		if err != nil {
			return ach.Configuration{}, fmt.Errorf("open ach configuration: %w", err)
		}
		defer func() { _ = f.Close() }()
		if cfg, err = ach.LoadConfiguration(f); err != nil {
			return ach.Configuration{}, err
		}
	}
	if len(a.cfg.AllowedCountries) > 0 {
		cfg.BillingAddressAllowedCountries = a.cfg.AllowedCountries
	}
	return cfg, nil
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) mux() (*http.ServeMux, []string, error) {
	mux := http.NewServeMux()
	component := countries.New(countries.WithAllowed(a.cfg.AllowedCountries...))
	routes, err := component.RegisterRoutes(mux, "")
	if err != nil {
		return nil, nil, err
	}
	return mux, routes, nil
}

func (a *app) serve(ctx context.Context) error {
	mux, routes, err := a.mux()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              a.cfg.ServeAddr,
		Handler:           mux,
		ReadHeaderTimeout: shutdownTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	a.logger.Info("serving country data", "addr", a.cfg.ServeAddr, "routes", routes)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
