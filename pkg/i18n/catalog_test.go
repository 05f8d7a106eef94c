package i18n_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-addressform/pkg/i18n"
)

func TestInterpolate(t *testing.T) {
	t.Run("replaces known placeholders", func(t *testing.T) {
		got := i18n.Interpolate("Enter the %{label}", map[string]any{"label": "City"})
		assert.Equal(t, "Enter the City", got)
	})

	t.Run("keeps unknown placeholders", func(t *testing.T) {
		got := i18n.Interpolate("%{label} expects %{format}", map[string]any{"label": "Zip"})
		assert.Equal(t, "Zip expects %{format}", got)
	})

	t.Run("renders nil as empty", func(t *testing.T) {
		got := i18n.Interpolate("[%{format}]", map[string]any{"format": nil})
		assert.Equal(t, "[]", got)
	})
}

func TestDefaultCatalog(t *testing.T) {
	catalog, err := i18n.Default()
	require.NoError(t, err)
	assert.Contains(t, catalog.Locales(), "en-US")
	assert.Contains(t, catalog.Locales(), "nl-NL")

	en := catalog.Localizer("en-US")
	assert.Equal(t, "Enter the Zip code", en.Get("field.error.required", map[string]any{"label": "Zip code"}))
	assert.Equal(t,
		"Zip code Invalid format. Expected format: 99999",
		en.Get("invalid.format.expects", map[string]any{"label": "Zip code", "format": "99999"}),
	)
}

func TestLocalizer_MissingKeyReturnsKey(t *testing.T) {
	catalog, err := i18n.Default()
	require.NoError(t, err)

	loc := catalog.Localizer("en-US")
	assert.False(t, loc.Has("does.not.exist"))
	assert.Equal(t, "does.not.exist", loc.Get("does.not.exist", nil))
	assert.Equal(t, "", loc.Get("  ", nil))
}

func TestLocalizer_FallsBackToDefaultLocale(t *testing.T) {
	catalog, err := i18n.Default()
	require.NoError(t, err)

	nl := catalog.Localizer("nl")
	assert.Equal(t, "nl-NL", nl.Locale())
	assert.Equal(t, "Voer de Stad in", nl.Get("field.error.required", map[string]any{"label": "Stad"}))
	// Keys absent from nl-NL resolve through en-US.
	assert.Equal(t, "Apartment / Suite", nl.Get("apartmentSuite", nil))

	unknown := catalog.Localizer("ja-JP")
	assert.Equal(t, i18n.DefaultLocale, unknown.Locale())

	regional := catalog.Localizer("en-GB")
	assert.Equal(t, "en-US", regional.Locale())
}

func TestCatalog_LoadYAMLFlattensNestedKeys(t *testing.T) {
	catalog := i18n.NewCatalog()
	doc := `
en-US:
  address:
    errors:
      incomplete: "Incomplete"
  "field.error.required": "Required %{label}"
`
	require.NoError(t, catalog.LoadYAML(strings.NewReader(doc)))

	loc := catalog.Localizer("en-US")
	assert.Equal(t, "Incomplete", loc.Get("address.errors.incomplete", nil))
	assert.Equal(t, "Required city", loc.Get("field.error.required", map[string]any{"label": "city"}))
}

func TestCatalog_LoadYAMLRejectsScalarLocale(t *testing.T) {
	catalog := i18n.NewCatalog()
	err := catalog.LoadYAML(strings.NewReader("en-US: nope\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, i18n.ErrInvalidDocument)
}

func TestCatalog_AddRequiresLocale(t *testing.T) {
	err := i18n.NewCatalog().Add(" ", map[string]any{"a": "b"})
	assert.ErrorIs(t, err, i18n.ErrEmptyLocale)
}
