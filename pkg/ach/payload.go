package ach

// PaymentMethod is the bank account part of the payload.
type PaymentMethod struct {
	Type                  string `json:"type"`
	StoredPaymentMethodID string `json:"storedPaymentMethodId,omitempty"`
	BankAccountType       string `json:"bankAccountType,omitempty"`
	OwnerName             string `json:"ownerName,omitempty"`
	BankAccountNumber     string `json:"bankAccountNumber,omitempty"`
	BankLocationID        string `json:"bankLocationId,omitempty"`
}

// PaymentData is the submission payload.
type PaymentData struct {
	PaymentMethod      PaymentMethod     `json:"paymentMethod"`
	BillingAddress     map[string]string `json:"billingAddress,omitempty"`
	StorePaymentMethod bool              `json:"storePaymentMethod,omitempty"`
}

// PaymentData builds the payload from the current state. Stored accounts only
// send their id.
func (a *Ach) PaymentData() PaymentData {
	if a.cfg.IsStored() {
		return PaymentData{PaymentMethod: PaymentMethod{
			Type:                  PaymentType,
			StoredPaymentMethodID: a.cfg.StoredPaymentMethodID,
		}}
	}

	data := a.form.Data()
	out := PaymentData{
		PaymentMethod: PaymentMethod{
			Type:              PaymentType,
			BankAccountType:   data[FieldAccountType],
			BankAccountNumber: data[FieldBankAccountNumber],
			BankLocationID:    data[FieldBankLocationID],
		},
		StorePaymentMethod: a.storeDetails,
	}
	if a.cfg.HasHolderName {
		out.PaymentMethod.OwnerName = data[FieldOwnerName]
	}
	if a.billing != nil {
		out.BillingAddress = a.billing.ChangeEvent().Data
	}
	return out
}

// DisplayAccountNumber returns the masked number shown for a stored account,
// or the last four digits of the entered one.
func (a *Ach) DisplayAccountNumber() string {
	if a.cfg.IsStored() {
		return a.cfg.BankAccountNumber
	}
	number := a.form.Value(FieldBankAccountNumber)
	if len(number) <= 4 {
		return number
	}
	return "•••• " + number[len(number)-4:]
}
