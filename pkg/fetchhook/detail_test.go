package fetchhook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/fetchhook"
	"github.com/dmitrymomot/folio/pkg/langsync"
	"github.com/dmitrymomot/folio/pkg/locale"
)

func TestDetailView(t *testing.T) {
	t.Parallel()

	t.Run("picks variant for current locale", func(t *testing.T) {
		t.Parallel()
		store := langsync.NewStore(locale.EN)
		en, fr := &item{Title: "Hello"}, &item{Title: "Bonjour"}
		v := fetchhook.NewDetailView(store, en, fr)
		defer v.Close()

		got, l := v.Current()
		assert.Same(t, en, got)
		assert.Equal(t, locale.EN, l)

		var switched *item
		v.OnChange(func(it *item, _ locale.Locale) { switched = it })
		store.Set(locale.FR)

		got, l = v.Current()
		assert.Same(t, fr, got)
		assert.Equal(t, locale.FR, l)
		assert.Same(t, fr, switched)
	})

	t.Run("falls back to the present side", func(t *testing.T) {
		t.Parallel()
		store := langsync.NewStore(locale.FR)
		en := &item{Title: "Hello"}
		v := fetchhook.NewDetailView[item](store, en, nil)
		defer v.Close()

		require.True(t, v.Found())
		assert.False(t, v.Has(locale.FR))
		got, l := v.Current()
		assert.Same(t, en, got)
		assert.Equal(t, locale.EN, l)
	})

	t.Run("neither side", func(t *testing.T) {
		t.Parallel()
		v := fetchhook.NewDetailView[item](langsync.NewStore(locale.EN), nil, nil)
		defer v.Close()

		assert.False(t, v.Found())
		got, _ := v.Current()
		assert.Nil(t, got)
	})
}
