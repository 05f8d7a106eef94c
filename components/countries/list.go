package countries

import (
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/countries.yaml
var dataFS embed.FS

const defaultDataPath = "data/countries.yaml"

// Entry is one country or region.
type Entry struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

// Dataset holds the countries and the region lists keyed by country code.
type Dataset struct {
	Countries []Entry            `yaml:"countries"`
	Regions   map[string][]Entry `yaml:"regions"`
}

var (
	defaultOnce    sync.Once
	defaultDataset Dataset
	defaultErr     error
)

// DefaultDataset returns a copy of the embedded dataset.
func DefaultDataset() (Dataset, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultDataPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		ds, err := LoadDataset(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultDataset = ds
	})

	if defaultErr != nil {
		return Dataset{}, defaultErr
	}
	return defaultDataset.clone(), nil
}

// LoadDataset parses a YAML dataset. Codes are upper-cased, duplicates are
// dropped and entries are sorted by name.
func LoadDataset(r io.Reader) (Dataset, error) {
	if r == nil {
		return Dataset{}, fmt.Errorf("countries: missing reader")
	}

	var raw Dataset
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return Dataset{Regions: map[string][]Entry{}}, nil
		}
		return Dataset{}, fmt.Errorf("countries: decode dataset: %w", err)
	}

	out := Dataset{
		Countries: normalize(raw.Countries),
		Regions:   make(map[string][]Entry, len(raw.Regions)),
	}
	for country, regions := range raw.Regions {
		code := strings.ToUpper(strings.TrimSpace(country))
		if code == "" {
			continue
		}
		out.Regions[code] = normalize(regions)
	}
	return out, nil
}

// Country returns the entry for code.
func (d Dataset) Country(code string) (Entry, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range d.Countries {
		if c.Code == code {
			return c, true
		}
	}
	return Entry{}, false
}

// RegionsFor returns the regions of country, or nil.
func (d Dataset) RegionsFor(country string) []Entry {
	regions := d.Regions[strings.ToUpper(strings.TrimSpace(country))]
	if regions == nil {
		return nil
	}
	return append([]Entry{}, regions...)
}

// Filter returns the countries whose code is in allowed. An empty allow list
// keeps every country.
func (d Dataset) Filter(allowed []string) []Entry {
	if len(allowed) == 0 {
		return append([]Entry{}, d.Countries...)
	}
	keep := make(map[string]struct{}, len(allowed))
	for _, code := range allowed {
		keep[strings.ToUpper(strings.TrimSpace(code))] = struct{}{}
	}
	out := make([]Entry, 0, len(allowed))
	for _, c := range d.Countries {
		if _, ok := keep[c.Code]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (d Dataset) clone() Dataset {
	out := Dataset{
		Countries: append([]Entry{}, d.Countries...),
		Regions:   make(map[string][]Entry, len(d.Regions)),
	}
	for k, v := range d.Regions {
		out.Regions[k] = append([]Entry{}, v...)
	}
	return out
}

func normalize(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	seen := map[string]struct{}{}
	for _, e := range entries {
		e.Code = strings.ToUpper(strings.TrimSpace(e.Code))
		e.Name = strings.TrimSpace(e.Name)
		if e.Code == "" {
			continue
		}
		if e.Name == "" {
			e.Name = e.Code
		}
		if _, ok := seen[e.Code]; ok {
			continue
		}
		seen[e.Code] = struct{}{}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
