package i18n

import "errors"

var (
	// ErrEmptyLocale is returned when a catalog entry has no locale code.
	ErrEmptyLocale = errors.New("i18n: empty locale")
	// ErrInvalidDocument is returned when a translation file is malformed.
	ErrInvalidDocument = errors.New("i18n: invalid document")
)
