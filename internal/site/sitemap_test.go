package site_test

import (
	"encoding/xml"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemap(t *testing.T) {
	t.Parallel()
	h := newHandler(t)

	w := get(h, "/sitemap.xml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	require.True(t, strings.HasPrefix(body, xml.Header))

	var set struct {
		URLs []struct {
			Loc     string `xml:"loc"`
			LastMod string `xml:"lastmod"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &set))

	locs := make(map[string]string, len(set.URLs))
	for _, u := range set.URLs {
		locs[u.Loc] = u.LastMod
	}

	// 4 pages, 2 posts and 2 projects, each in both locales.
	assert.Len(t, set.URLs, 16)
	for _, loc := range []string{
		"https://folio.test/?lang=EN",
		"https://folio.test/about?lang=FR",
		"https://folio.test/blog/hello?lang=FR",
		"https://folio.test/work/legacy?lang=EN",
	} {
		assert.Contains(t, locs, loc)
	}
	assert.Equal(t, "2024-03-01", locs["https://folio.test/blog/second?lang=EN"])
	assert.Equal(t, "2024-06-01", locs["https://folio.test/work?lang=FR"])

	assert.Contains(t, body, `<xhtml:link rel="alternate" hreflang="x-default" href="https://folio.test/blog/second?lang=EN"></xhtml:link>`)
	assert.Contains(t, body, `xmlns:xhtml="http://www.w3.org/1999/xhtml"`)
}

func TestRobots(t *testing.T) {
	t.Parallel()
	w := get(newHandler(t), "/robots.txt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sitemap: https://folio.test/sitemap.xml")
}
