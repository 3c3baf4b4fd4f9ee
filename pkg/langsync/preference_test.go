package langsync_test

import (
	"context"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/cookie"
	"github.com/dmitrymomot/folio/pkg/langsync"
	"github.com/dmitrymomot/folio/pkg/locale"
)

func TestCookieJarPreference(t *testing.T) {
	t.Parallel()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	site := mustURL(t, "http://example.com/")

	p := langsync.NewCookieJarPreference(jar, site)
	_, ok := p.Load()
	assert.False(t, ok)

	require.NoError(t, p.Save(context.Background(), locale.FR))

	got, ok := p.Load()
	require.True(t, ok)
	assert.Equal(t, locale.FR, got)

	cookies := jar.Cookies(mustURL(t, "http://example.com/blog"))
	require.Len(t, cookies, 1)
	assert.Equal(t, "language", cookies[0].Name)
}

func TestResponsePreference(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	p := langsync.NewResponsePreference(w, cookie.New(cookie.WithSecure(true)))

	require.NoError(t, p.Save(context.Background(), locale.FR))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "language", cookies[0].Name)
	assert.Equal(t, "FR", cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Equal(t, locale.CookieMaxAge, cookies[0].MaxAge)
	assert.True(t, cookies[0].Secure)
}

func TestMemoryPreference(t *testing.T) {
	t.Parallel()
	p := langsync.NewMemoryPreference()

	_, ok := p.Load()
	assert.False(t, ok)

	require.NoError(t, p.Save(context.Background(), locale.EN))
	require.NoError(t, p.Save(context.Background(), locale.FR))

	got, ok := p.Load()
	assert.True(t, ok)
	assert.Equal(t, locale.FR, got)
	assert.Equal(t, 2, p.Saves())
}
