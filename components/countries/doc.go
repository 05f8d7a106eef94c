// Package countries provides the country and region datasets used by the
// address form, search helpers, and a small net/http handler that returns JSON
// options for country and region selects.
//
// The default handlers respond to GET and HEAD requests and support query and
// limit parameters to filter results. The backing data is loaded from the
// embedded data/countries.yaml.
package countries
