package i18n

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

// DefaultLocale is used when a requested locale cannot be matched.
const DefaultLocale = "en-US"

// Catalog stores translations per locale. It is safe for concurrent use.
type Catalog struct {
	mu            sync.RWMutex
	entries       map[string]map[string]string
	defaultLocale string
	logger        *slog.Logger
	logMissing    bool

	matcher language.Matcher
	locales []string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithDefaultLocale sets the locale used when no better match exists.
func WithDefaultLocale(locale string) Option {
	return func(c *Catalog) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			c.defaultLocale = trimmed
		}
	}
}

// WithLogger routes catalog diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMissingKeyLogging logs lookups that fall back to the key.
func WithMissingKeyLogging(enabled bool) Option {
	return func(c *Catalog) {
		c.logMissing = enabled
	}
}

// NewCatalog returns an empty catalog.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		entries:       make(map[string]map[string]string),
		defaultLocale: DefaultLocale,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Default returns a catalog seeded with the embedded translations.
func Default(opts ...Option) (*Catalog, error) {
	c := NewCatalog(opts...)
	if err := c.LoadFS(localesFS); err != nil {
		return nil, err
	}
	return c, nil
}

// Add merges entries into locale. Nested maps are flattened into dotted keys.
func (c *Catalog) Add(locale string, entries map[string]any) error {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ErrEmptyLocale
	}
	flat := make(map[string]string)
	if err := flatten("", entries, flat); err != nil {
		return fmt.Errorf("i18n: locale %s: %w", locale, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	bucket, ok := c.entries[locale]
	if !ok {
		bucket = make(map[string]string, len(flat))
		c.entries[locale] = bucket
	}
	for key, value := range flat {
		bucket[key] = value
	}
	c.rebuildMatcher()
	return nil
}

// LoadYAML reads a document whose top-level keys are locales.
func (c *Catalog) LoadYAML(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("i18n: read: %w", err)
	}
	return c.loadDocument(data, "<reader>")
}

// LoadFS loads every .yaml/.yml/.json file in fsys.
func (c *Catalog) LoadFS(fsys fs.FS) error {
	if fsys == nil {
		return nil
	}
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml", ".json":
		default:
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", path, err)
		}
		return c.loadDocument(data, path)
	})
}

// Locales lists the loaded locales.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.entries))
	for locale := range c.entries {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Localizer returns a Translator bound to the closest supported locale.
func (c *Catalog) Localizer(locale string) *Localizer {
	return &Localizer{catalog: c, locale: c.Match(locale)}
}

// Match resolves locale to a loaded locale, preferring the default locale
// when nothing is close enough.
func (c *Catalog) Match(locale string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.entries[locale]; ok {
		return locale
	}
	if c.matcher == nil {
		return c.defaultLocale
	}
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return c.defaultLocale
	}
	_, idx, confidence := c.matcher.Match(tag)
	if confidence == language.No || idx < 0 || idx >= len(c.locales) {
		return c.defaultLocale
	}
	return c.locales[idx]
}

func (c *Catalog) lookup(locale, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if msg, ok := c.entries[locale][key]; ok {
		return msg, true
	}
	if locale != c.defaultLocale {
		if msg, ok := c.entries[c.defaultLocale][key]; ok {
			return msg, true
		}
	}
	return "", false
}

func (c *Catalog) loadDocument(data []byte, source string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrInvalidDocument, source)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDocument, source, err)
	}
	for locale, raw := range doc {
		entries, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s: locale %q expects a mapping, got %T", ErrInvalidDocument, source, locale, raw)
		}
		if err := c.Add(locale, entries); err != nil {
			return err
		}
	}
	c.logger.Debug("translations loaded", slog.String("source", source), slog.Int("locales", len(doc)))
	return nil
}

// rebuildMatcher expects c.mu to be held. The default locale, when present,
// is listed first so the matcher falls back to it.
func (c *Catalog) rebuildMatcher() {
	locales := make([]string, 0, len(c.entries))
	for locale := range c.entries {
		if locale != c.defaultLocale {
			locales = append(locales, locale)
		}
	}
	sort.Strings(locales)
	if _, ok := c.entries[c.defaultLocale]; ok {
		locales = append([]string{c.defaultLocale}, locales...)
	}

	tags := make([]language.Tag, 0, len(locales))
	kept := make([]string, 0, len(locales))
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			c.logger.Warn("skipping unparseable locale", slog.String("locale", locale), slog.Any("error", err))
			continue
		}
		tags = append(tags, tag)
		kept = append(kept, locale)
	}
	c.locales = kept
	if len(tags) == 0 {
		c.matcher = nil
		return
	}
	c.matcher = language.NewMatcher(tags)
}

func flatten(prefix string, in map[string]any, out map[string]string) error {
	for key, value := range in {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]any:
			if err := flatten(full, v, out); err != nil {
				return err
			}
		case nil:
			out[full] = ""
		case bool, int, int64, float64:
			out[full] = fmt.Sprint(v)
		default:
			return fmt.Errorf("%w: key %q has unsupported type %T", ErrInvalidDocument, full, value)
		}
	}
	return nil
}
