package langsync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/folio/pkg/langsync"
	"github.com/dmitrymomot/folio/pkg/locale"
)

func TestHref(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  string
		current string
		l       locale.Locale
		want    string
	}{
		{"plain path", "/blog", "", locale.FR, "/blog?lang=FR"},
		{"carries current params", "/work", "lang=EN&tag=go", locale.EN, "/work?lang=EN&tag=go"},
		{"target params win", "/work?tag=rust", "tag=go&page=2", locale.FR, "/work?tag=rust&page=2&lang=FR"},
		{"replaces old marker", "/about", "lang=FR", locale.EN, "/about?lang=EN"},
		{"keeps fragment", "/blog#latest", "", locale.EN, "/blog?lang=EN#latest"},
		{"empty target is root", "", "", locale.FR, "/?lang=FR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langsync.Href(tt.target, tt.current, tt.l))
		})
	}
}

func TestDetailPages(t *testing.T) {
	t.Parallel()
	match := langsync.DetailPages("/blog/", "/work/")

	assert.True(t, match("/blog/hello"))
	assert.True(t, match("/work/site/"))
	assert.False(t, match("/blog/"))
	assert.False(t, match("/blog"))
	assert.False(t, match("/about"))
}
