// Package srerrors turns a map of field errors into the ordered, translated
// messages announced by a screen-reader live region.
package srerrors
