package countries

import "net/http"

type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchAll  EmptySearchMode = "all"
)

type GuardFunc func(r *http.Request) error

// Option is one select option in handler responses.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Options struct {
	RoutePath        string
	RegionsRoutePath string
	SearchParam      string
	CountryParam     string
	LimitParam       string
	DefaultLimit     int
	MaxLimit         int
	EmptySearchMode  EmptySearchMode
	Guard            GuardFunc
	Allowed          []string

	Dataset *Dataset
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:        "/api/countries",
		RegionsRoutePath: "/api/regions",
		SearchParam:      "q",
		CountryParam:     "country",
		LimitParam:       "limit",
		DefaultLimit:     300,
		MaxLimit:         300,
		EmptySearchMode:  EmptySearchAll,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	defaults := DefaultOptions()
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaults.DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = defaults.MaxLimit
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = defaults.EmptySearchMode
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaults.RoutePath
	}
	if opts.RegionsRoutePath == "" {
		opts.RegionsRoutePath = defaults.RegionsRoutePath
	}
	if opts.SearchParam == "" {
		opts.SearchParam = defaults.SearchParam
	}
	if opts.CountryParam == "" {
		opts.CountryParam = defaults.CountryParam
	}
	if opts.LimitParam == "" {
		opts.LimitParam = defaults.LimitParam
	}
	if opts.Allowed != nil {
		opts.Allowed = append([]string{}, opts.Allowed...)
	}
	if opts.Dataset != nil {
		ds := opts.Dataset.clone()
		opts.Dataset = &ds
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithRegionsRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RegionsRoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithAllowed restricts country results to the given codes.
func WithAllowed(codes ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Allowed = append([]string{}, codes...)
	}
}

// WithDataset replaces the embedded dataset.
func WithDataset(ds Dataset) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Dataset = &ds
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
