package ach

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-addressform/pkg/specifications"
)

// Placeholders holds the placeholder keys of the ACH inputs.
type Placeholders struct {
	AccountTypeSelector       string `yaml:"accountTypeSelector" json:"accountTypeSelector,omitempty"`
	OwnerName                 string `yaml:"ownerName" json:"ownerName,omitempty"`
	RoutingNumber             string `yaml:"routingNumber" json:"routingNumber,omitempty"`
	AccountNumber             string `yaml:"accountNumber" json:"accountNumber,omitempty"`
	AccountNumberVerification string `yaml:"accountNumberVerification" json:"accountNumberVerification,omitempty"`
}

// Configuration describes an ACH form.
type Configuration struct {
	Placeholders Placeholders `yaml:"placeholders" json:"placeholders"`
	// HasHolderName shows and requires the account holder name.
	HasHolderName bool `yaml:"hasHolderName" json:"hasHolderName"`
	// EnableStoreDetails offers to store the account for later payments.
	EnableStoreDetails bool `yaml:"enableStoreDetails" json:"enableStoreDetails"`
	// StoredPaymentMethodID switches the form into stored mode.
	StoredPaymentMethodID string `yaml:"storedPaymentMethodId" json:"storedPaymentMethodId,omitempty"`
	// BankAccountNumber is the masked number of a stored account.
	BankAccountNumber string `yaml:"bankAccountNumber" json:"bankAccountNumber,omitempty"`

	BillingAddressRequired         bool     `yaml:"billingAddressRequired" json:"billingAddressRequired"`
	BillingAddressRequiredFields   []string `yaml:"billingAddressRequiredFields" json:"billingAddressRequiredFields,omitempty"`
	BillingAddressAllowedCountries []string `yaml:"billingAddressAllowedCountries" json:"billingAddressAllowedCountries,omitempty"`
}

// DefaultConfiguration returns the defaults: holder name shown, billing
// address required with every address field, US and PR allowed.
func DefaultConfiguration() Configuration {
	return Configuration{
		HasHolderName:                  true,
		BillingAddressRequired:         true,
		BillingAddressRequiredFields:   append([]string(nil), specifications.AddressSchema...),
		BillingAddressAllowedCountries: []string{"US", "PR"},
	}
}

// IsStored reports whether the configuration refers to a stored account.
func (c Configuration) IsStored() bool {
	return c.StoredPaymentMethodID != ""
}

// LoadConfiguration decodes a YAML configuration on top of the defaults.
func LoadConfiguration(r io.Reader) (Configuration, error) {
	cfg := DefaultConfiguration()
	if r == nil {
		return cfg, nil
	}
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return Configuration{}, fmt.Errorf("ach: decode configuration: %w", err)
	}
	return cfg, nil
}
