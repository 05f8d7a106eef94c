// Package form holds the state of a single form instance: its data, per-field
// validity and the errors currently on display.
//
// A Controller is owned by one caller and is not safe for concurrent use.
package form
