// Package prompt fills address and ACH forms from a terminal. Every answer
// goes through the form's input and blur handlers, so the prompts show the
// same errors as any other front end.
package prompt
