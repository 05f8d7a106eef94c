package address

import "errors"

// ErrSearchDisabled is returned by Search when no lookup is configured.
var ErrSearchDisabled = errors.New("address: search is not configured")
