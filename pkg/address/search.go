package address

import (
	"context"
	"fmt"

	"github.com/goliatone/go-addressform/pkg/lookup"
	"github.com/goliatone/go-addressform/pkg/specifications"
)

// ShowAddressSearch reports whether the search control is enabled.
func (a *Address) ShowAddressSearch() bool {
	return a.lookupFn != nil
}

// ShowAddressFields reports whether the individual fields are shown. With
// search enabled they appear once an address is selected or manual entry is
// requested.
func (a *Address) ShowAddressFields() bool {
	if !a.ShowAddressSearch() {
		return true
	}
	return a.hasSelectedAddress || a.useManualAddress
}

// SearchError returns the message shown on the search control.
func (a *Address) SearchError() string {
	return a.searchError
}

// DismissSearchError clears the search control message.
func (a *Address) DismissSearchError() {
	a.searchError = ""
}

// ContextualText returns the hint shown under the search control.
func (a *Address) ContextualText() string {
	return a.translator.Get(KeySearchContextual, nil)
}

// Search schedules a debounced lookup. Results reach the WithSearchResults
// callback.
func (a *Address) Search(ctx context.Context, query string) error {
	if a.searcher == nil {
		return ErrSearchDisabled
	}
	return a.searcher.Search(ctx, query)
}

// HandleLookupResult records the outcome of a search on the search control.
// Call it from the goroutine that owns the Address.
func (a *Address) HandleLookupResult(res lookup.Result) {
	if res.Err != nil {
		a.searchError = a.translator.Get(KeySearchLookupFailed, nil)
		a.logger.Warn("address lookup failed", "query", res.Query, "error", res.Err)
		return
	}
	a.searchError = ""
}

// UseManualAddress reveals the fields for manual entry.
func (a *Address) UseManualAddress() {
	a.useManualAddress = true
	a.publish()
}

// SelectAddress applies a search candidate: its address values are coerced to
// strings and merged, the whole form is validated and the fields are
// revealed. The country reaction is suppressed for this merge only.
func (a *Address) SelectAddress(ctx context.Context, c lookup.Candidate) {
	if a.onSelected != nil {
		enriched, err := a.onSelected(ctx, c)
		if err != nil {
			a.searchError = a.translator.Get(KeySearchLookupFailed, nil)
			a.logger.Warn("address selection failed", "candidate", c.ID, "error", err)
			a.publish()
			return
		}
		c = enriched
	}

	partial := make(map[string]any, len(specifications.AddressSchema))
	for _, field := range specifications.AddressSchema {
		value, ok := c.Address[field]
		if !ok || value == nil {
			continue
		}
		partial[field] = fmt.Sprint(value)
	}

	a.validating = false
	a.ignoreCountryChange = true
	a.form.MergeData(partial)
	a.form.TriggerValidation()
	a.hasSelectedAddress = true
	a.searchError = ""
	a.reactToCountry()
	a.ignoreCountryChange = false
	a.publish()
}
