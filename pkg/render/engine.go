package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-addressform/pkg/i18n"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Template names shipped with the package.
const (
	TemplateReadOnly = "readonly"
	TemplateFields   = "fields"
	TemplateMessages = "messages"
)

const templateExt = ".tpl"

// Option configures an Engine.
type Option func(*config)

type config struct {
	templates  fs.FS
	translator i18n.Translator
	logger     *slog.Logger
}

// WithFS replaces the embedded templates. Missing templates are not looked up
// in the embedded set.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTranslator sets the translator used for titles.
func WithTranslator(t i18n.Translator) Option {
	return func(cfg *config) {
		if t != nil {
			cfg.translator = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Engine renders form views through a pongo2 template set.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	translator  i18n.Translator
	logger      *slog.Logger
}

// New builds an Engine.
func New(opts ...Option) (*Engine, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("render: open embedded templates: %w", err)
	}
	cfg := &config{
		templates:  sub,
		translator: i18n.KeyTranslator,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	return &Engine{
		templateSet: pongo2.NewSet("addressform", pongo2.NewFSLoader(cfg.templates)),
		templates:   make(map[string]*pongo2.Template),
		translator:  cfg.translator,
		logger:      cfg.logger,
	}, nil
}

// Render executes the named template with data and writes the result to w.
func (e *Engine) Render(w io.Writer, name string, data pongo2.Context) error {
	if e == nil || e.templateSet == nil {
		return errors.New("render: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, templateExt) {
		path += templateExt
	}

	tmpl, err := e.getTemplate(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(data, &buf); err != nil {
		return fmt.Errorf("render: execute template %q: %w", path, err)
	}
	e.logger.Debug("rendered template", "template", path, "bytes", buf.Len())

	_, err = w.Write(buf.Bytes())
	return err
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

func (e *Engine) title(key string) string {
	if key == "" {
		return ""
	}
	return e.translator.Get(key, nil)
}
