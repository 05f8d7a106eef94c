// Package render turns address and ACH form state into plain-text views
// using pongo2 templates embedded in the binary.
package render
