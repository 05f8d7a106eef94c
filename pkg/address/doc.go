// Package address implements the checkout address form.
//
// An Address owns a form.Controller configured with the country-aware rules
// from package rules, reacts to country changes, supports an optional
// address-search flow and reports its state through ChangeEvents and a
// screen-reader live region. Like the controller it wraps, an Address is not
// safe for concurrent use; search results produced in the background are
// handed back through HandleLookupResult by the owner.
package address
