// Package config loads the command line configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct.
	ErrParsingConfig = errors.New("config: failed to parse environment variables")
	// ErrInvalidConfig is returned when a parsed value fails validation.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config drives the addressform command.
type Config struct {
	Form             string   `env:"ADDRESSFORM_FORM" envDefault:"address" validate:"oneof=address ach"`
	Country          string   `env:"ADDRESSFORM_COUNTRY" envDefault:"US" validate:"len=2,uppercase"`
	Locale           string   `env:"ADDRESSFORM_LOCALE" envDefault:"en-US" validate:"required"`
	Visibility       string   `env:"ADDRESSFORM_VISIBILITY" envDefault:"editable" validate:"oneof=editable readOnly hidden"`
	Label            string   `env:"ADDRESSFORM_LABEL"`
	RequiredFields   []string `env:"ADDRESSFORM_REQUIRED_FIELDS" envSeparator:"," validate:"dive,oneof=street houseNumberOrName postalCode city stateOrProvince country"`
	AllowedCountries []string `env:"ADDRESSFORM_ALLOWED_COUNTRIES" envSeparator:"," validate:"dive,len=2,uppercase"`
	AchConfigFile    string   `env:"ADDRESSFORM_ACH_CONFIG"`
	Annotate         bool     `env:"ADDRESSFORM_ANNOTATE"`
	MaxAttempts      int      `env:"ADDRESSFORM_MAX_ATTEMPTS" envDefault:"3" validate:"min=1,max=10"`
	Output           string   `env:"ADDRESSFORM_OUTPUT" envDefault:"json" validate:"oneof=json text"`
	ServeAddr        string   `env:"ADDRESSFORM_SERVE_ADDR" validate:"omitempty,hostname_port"`
	LogFormat        string   `env:"ADDRESSFORM_LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogLevel         string   `env:"ADDRESSFORM_LOG_LEVEL" envDefault:"warn" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// Load reads the given dotenv files (".env" when none are named), then parses
// and validates the process environment. Missing dotenv files are ignored.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load dotenv: %w", err)
	}
	return parse(env.Options{})
}

// FromMap parses and validates cfg from vars instead of the process
// environment.
func FromMap(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}
