// Package i18n provides the translation lookup consumed by the form
// components. A Catalog holds flat dotted keys per locale, loaded from YAML
// documents; a Localizer binds the catalog to the closest supported locale
// and interpolates %{name} placeholders.
//
// Missing keys never fail: Get returns the key itself (interpolated), which
// is what the checkout SDK does as well.
package i18n
