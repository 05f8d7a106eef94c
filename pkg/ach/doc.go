// Package ach implements the US bank account (ACH) payment form: account type,
// holder name, ABA routing number and account number with its confirmation,
// plus an optional billing address backed by package address.
package ach
