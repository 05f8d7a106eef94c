package specifications

import "errors"

var (
	// ErrDuplicateField is returned when a schema references a field twice.
	ErrDuplicateField = errors.New("specifications: duplicate schema field")
	// ErrInvalidEntry is returned when a schema entry cannot be decoded.
	ErrInvalidEntry = errors.New("specifications: invalid schema entry")
	// ErrEmptyDocument is returned for blank specification files.
	ErrEmptyDocument = errors.New("specifications: empty document")
)
