package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/cookie"
)

func TestManagerSet(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()
		m := cookie.New()
		w := httptest.NewRecorder()

		require.NoError(t, m.Set(w, "language", "FR"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "language", cookies[0].Name)
		assert.Equal(t, "FR", cookies[0].Value)
		assert.Equal(t, "/", cookies[0].Path)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
		assert.False(t, cookies[0].HttpOnly)
	})

	t.Run("per call options override defaults", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithPath("/app"))
		w := httptest.NewRecorder()

		require.NoError(t, m.Set(w, "language", "EN", cookie.WithMaxAge(31536000), cookie.WithPath("/")))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "/", cookies[0].Path)
		assert.Equal(t, 31536000, cookies[0].MaxAge)
		assert.Equal(t, "/app", m.Defaults().Path)
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		m := cookie.New()
		err := m.Set(httptest.NewRecorder(), "", "x")
		assert.ErrorIs(t, err, cookie.ErrInvalidName)
	})
}

func TestManagerGet(t *testing.T) {
	t.Parallel()
	m := cookie.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := m.Get(req, "language")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	assert.Nil(t, m.Lookup(req, "language"))

	req.AddCookie(&http.Cookie{Name: "language", Value: "FR"})
	v, err := m.Get(req, "language")
	require.NoError(t, err)
	assert.Equal(t, "FR", v)

	got := m.Lookup(req, "language")
	require.NotNil(t, got)
	assert.Equal(t, "FR", *got)
}

func TestManagerDelete(t *testing.T) {
	t.Parallel()
	m := cookie.New(cookie.WithDomain("example.com"))
	w := httptest.NewRecorder()

	m.Delete(w, "language")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	cfg := cookie.DefaultConfig()
	cfg.Secure = true
	cfg.Domain = "example.com"

	m := cookie.NewFromConfig(cfg)
	d := m.Defaults()
	assert.True(t, d.Secure)
	assert.Equal(t, "example.com", d.Domain)
	assert.Equal(t, "/", d.Path)
	assert.False(t, d.HttpOnly)
}
