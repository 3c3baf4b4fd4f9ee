package labels_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/labels"
	"github.com/dmitrymomot/folio/pkg/locale"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"labels/en.yaml": {Data: []byte("nav:\n  blog: Blog\n  work: Work\nhome:\n  greeting: Hello, %{name}!\n  count: 3\n")},
		"labels/fr.toml": {Data: []byte("[nav]\nblog = \"Blog\"\nwork = \"Projets\"\n")},
	}

	bag, err := labels.Load(fsys, "labels")
	require.NoError(t, err)

	fr := bag.Get(locale.FR)
	assert.Equal(t, locale.FR, fr.Locale())
	assert.Equal(t, "Projets", fr.T("nav.work"))
	assert.True(t, fr.Has("nav.work"))

	assert.Equal(t, "Hello, Ana!", fr.T("home.greeting", "name", "Ana"), "falls back to EN")
	assert.False(t, fr.Has("home.greeting"))
	assert.Equal(t, "nav.gallery", fr.T("nav.gallery"), "falls back to key")

	en := bag.Get(locale.EN)
	assert.Equal(t, "3", en.T("home.count"))
	assert.Equal(t, "Hello, %{name}!", en.T("home.greeting"))
	assert.Equal(t, "Hello, %{name}!", en.T("home.greeting", "other", "x"))

	assert.Equal(t, []string{"home.count", "home.greeting"}, bag.Missing(locale.FR))
	assert.Empty(t, bag.Missing(locale.EN))
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := labels.Load(fstest.MapFS{"labels/fr.yaml": {Data: []byte("a: b\n")}}, "labels")
	assert.ErrorIs(t, err, labels.ErrMissingDefault)

	_, err = labels.Load(fstest.MapFS{"labels/en.yaml": {Data: []byte("a: [b\n")}}, "labels")
	assert.ErrorIs(t, err, labels.ErrParse)
}

func TestNew(t *testing.T) {
	t.Parallel()

	bag := labels.New(map[locale.Locale]map[string]any{
		locale.EN: {"toggle": map[string]any{"en": "English", "fr": "French"}},
		locale.FR: {"toggle": map[string]any{"fr": "Français"}},
	})
	assert.Equal(t, "Français", bag.Get(locale.FR).T("toggle.fr"))
	assert.Equal(t, "English", bag.Get(locale.FR).T("toggle.en"))

	var zero labels.Strings
	assert.Equal(t, "x", zero.T("x"))
}
