// Package specifications holds the per-country address field layout used by
// the address form: which fields apply, how they are grouped into rows, which
// ones are optional, which label keys replace the generic ones and whether a
// region (state/province) dataset exists.
//
// Lookups are pure. Unknown countries fall back to the "default" entry.
// Callers can override entries per country in code (New) or by loading YAML
// documents (LoadYAML, LoadFS).
package specifications
