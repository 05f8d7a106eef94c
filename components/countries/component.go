package countries

import "net/http"

// Component bundles the handlers, their configuration and the routing
// helpers.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Dataset returns the configured dataset, or the embedded one.
func (c *Component) Dataset() (Dataset, error) {
	if c != nil && c.opts.Dataset != nil {
		return c.opts.Dataset.clone(), nil
	}
	return DefaultDataset()
}

// Countries returns the allowed countries.
func (c *Component) Countries() ([]Entry, error) {
	ds, err := c.Dataset()
	if err != nil {
		return nil, err
	}
	return ds.Filter(c.Options().Allowed), nil
}

// Regions returns the regions of country, or nil when it has no dataset.
func (c *Component) Regions(country string) ([]Entry, error) {
	ds, err := c.Dataset()
	if err != nil {
		return nil, err
	}
	return ds.RegionsFor(country), nil
}

// Handler returns the country handler.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// RegionsHandler returns the region handler.
func (c *Component) RegionsHandler() http.Handler {
	if c == nil {
		return RegionsHandler()
	}
	return RegionsHandlerWithOptions(c.opts)
}

// RegisterRoutes registers both handlers under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) ([]string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
