package content_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/locale"
)

func file(body string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(body), ModTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func fixtures() fstest.MapFS {
	return fstest.MapFS{
		"blog/posts/hello.mdx": file("---\ntitle: Hello\npublishedAt: 2024-01-15\nsummary: First post\ntag: Go\n---\nHello body\n"),
		"blog/posts/second.mdx": file("---\ntitle: Second\npublishedAt: \"2024-03-01\"\nsummary: Second post\n---\nSecond body\n"),
		"blog/posts/second.fr.mdx": file("---\ntitle: Deuxième\npublishedAt: \"2024-03-01\"\nsummary: Deuxième article\n---\nCorps\n"),
		"blog/posts/third.mdx": file("---\ntitle: Third\npublishedAt: \"2023-06-10\"\n---\nThird body\n"),
		"blog/posts/broken.mdx": file("---\ntitle: [unclosed\n---\nbody\n"),
		"blog/posts/notes.txt": file("not content"),
		"work/projects/folio.mdx": file("---\ntitle: Folio\npublishedAt: 2024-02-01\nsummary: A site\nimage: /images/folio.png\nimages:\n  - /images/a.png\n  - /images/b.png\ntag:\n  - go\n  - i18n\nteam:\n  - avatar: /images/me.png\nlink: https://example.com\n---\nProject body\n"),
		"work/projects/folio.fr.mdx": file("---\ntitle: Folio FR\npublishedAt: 2024-02-01\nsummary: Un site\n---\nCorps du projet\n"),
		"work/projects/legacy.fr.mdx": file("---\ntitle: Ancien\npublishedAt: 2020-05-05\n---\nFR seulement\n"),
	}
}

func slugs(records []content.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Slug)
	}
	return out
}

func TestList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := content.NewResolver(fixtures())

	t.Run("english posts sorted newest first, broken files skipped", func(t *testing.T) {
		got, err := r.List(ctx, content.KindPost, locale.EN, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"second", "hello", "third"}, slugs(got))
		for _, rec := range got {
			assert.Equal(t, locale.EN, rec.Locale)
		}
	})

	t.Run("french files only, slug stripped", func(t *testing.T) {
		got, err := r.List(ctx, content.KindPost, locale.FR, nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "second", got[0].Slug)
		assert.Equal(t, "Deuxième", got[0].Metadata.Title)
		assert.Equal(t, locale.FR, got[0].Locale)
	})

	t.Run("front matter fields", func(t *testing.T) {
		got, err := r.List(ctx, content.KindProject, locale.EN, nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		m := got[0].Metadata
		assert.Equal(t, "Folio", m.Title)
		assert.Equal(t, content.Tags{"go", "i18n"}, m.Tag)
		assert.Equal(t, []string{"/images/a.png", "/images/b.png"}, m.Images)
		assert.Equal(t, []content.Member{{Avatar: "/images/me.png"}}, m.Team)
		assert.Equal(t, "https://example.com", m.Link)
		assert.Equal(t, 2024, m.PublishedAt.Year())
		assert.Equal(t, "Project body\n", got[0].Body)

		posts, err := r.List(ctx, content.KindPost, locale.EN, content.NewRange(2, 2))
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, content.Tags{"Go"}, posts[0].Metadata.Tag)
	})

	t.Run("missing directory is empty", func(t *testing.T) {
		empty := content.NewResolver(fixtures(), content.WithDir(content.KindPost, "nope"))
		got, err := empty.List(ctx, content.KindPost, locale.EN, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := r.List(ctx, content.Kind("gallery"), locale.EN, nil)
		assert.ErrorIs(t, err, content.ErrUnknownKind)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := r.List(cctx, content.KindPost, locale.EN, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestListRange(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := content.NewResolver(fixtures())
	full, err := r.List(ctx, content.KindPost, locale.EN, nil)
	require.NoError(t, err)
	require.Len(t, full, 3)

	tests := []struct {
		name  string
		rng   *content.Range
		slugs []string
	}{
		{"first two", content.NewRange(1, 2), []string{"second", "hello"}},
		{"open ended", content.NewRange(2, 0), []string{"hello", "third"}},
		{"end beyond length clamps", content.NewRange(2, 10), []string{"hello", "third"}},
		{"single", content.NewRange(3, 3), []string{"third"}},
		{"start beyond length", content.NewRange(4, 0), []string{}},
		{"end before start", content.NewRange(3, 2), []string{}},
		{"zero start", content.NewRange(0, 2), []string{}},
		{"negative end", content.NewRange(1, -1), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.List(ctx, content.KindPost, locale.EN, tt.rng)
			require.NoError(t, err)
			assert.Equal(t, tt.slugs, slugs(got))
		})
	}
}

func TestGetBySlugAndPairs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := content.NewResolver(fixtures())

	t.Run("get by slug", func(t *testing.T) {
		rec, err := r.GetBySlug(ctx, content.KindPost, "hello", locale.EN)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "Hello", rec.Metadata.Title)

		rec, err = r.GetBySlug(ctx, content.KindPost, "hello", locale.FR)
		require.NoError(t, err)
		assert.Nil(t, rec)

		rec, err = r.GetBySlug(ctx, content.KindPost, "../etc/passwd", locale.EN)
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("english only pair falls back", func(t *testing.T) {
		p := r.GetBothLocales(ctx, content.KindPost, "hello")
		require.True(t, p.Found())
		assert.NotNil(t, p.Primary)
		assert.Nil(t, p.Secondary)
		assert.False(t, p.Has(locale.FR))
		assert.Equal(t, "Hello", p.Pick(locale.FR).Metadata.Title)
	})

	t.Run("french only pair falls back", func(t *testing.T) {
		p := r.GetBothLocales(ctx, content.KindProject, "legacy")
		require.True(t, p.Found())
		assert.Equal(t, "Ancien", p.Pick(locale.EN).Metadata.Title)
	})

	t.Run("both sides", func(t *testing.T) {
		p := r.GetBothLocales(ctx, content.KindPost, "second")
		assert.Equal(t, "Second", p.Pick(locale.EN).Metadata.Title)
		assert.Equal(t, "Deuxième", p.Pick(locale.FR).Metadata.Title)
	})

	t.Run("missing pair", func(t *testing.T) {
		p := r.GetBothLocales(ctx, content.KindPost, "nothing")
		assert.False(t, p.Found())
		assert.Nil(t, p.Pick(locale.EN))
	})
}

func TestAllSlugs(t *testing.T) {
	t.Parallel()

	entries, err := content.NewResolver(fixtures()).AllSlugs(context.Background(), content.KindProject)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "folio", entries[0].Slug)
	assert.Equal(t, []locale.Locale{locale.EN, locale.FR}, entries[0].Locales)
	assert.Equal(t, "legacy", entries[1].Slug)
	assert.Equal(t, []locale.Locale{locale.FR}, entries[1].Locales)
}

func TestListWithMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fsys := fixtures()
	r := content.NewResolver(fsys, content.WithCache(content.NewMemoryCache(8, 0)))

	first, err := r.List(ctx, content.KindPost, locale.FR, nil)
	require.NoError(t, err)
	require.Len(t, first, 1)

	first[0].Metadata.Title = "mutated"
	again, err := r.List(ctx, content.KindPost, locale.FR, nil)
	require.NoError(t, err)
	assert.Equal(t, "Deuxième", again[0].Metadata.Title, "cached listing must not be shared")

	fsys["blog/posts/second.fr.mdx"] = &fstest.MapFile{
		Data:    []byte("---\ntitle: Deuxième v2\npublishedAt: 2024-03-01\n---\nCorps\n"),
		ModTime: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	updated, err := r.List(ctx, content.KindPost, locale.FR, nil)
	require.NoError(t, err)
	assert.Equal(t, "Deuxième v2", updated[0].Metadata.Title)
}

type memKV struct {
	data map[string][]byte
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memKV) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	m.data[key] = val
	return nil
}

func TestListWithRedisCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := &memKV{data: map[string][]byte{}}
	c := content.NewRedisCache(kv, time.Minute, nil)
	r := content.NewResolver(fixtures(), content.WithCache(c))

	first, err := r.List(ctx, content.KindProject, locale.EN, nil)
	require.NoError(t, err)
	require.Len(t, kv.data, 1)

	for key := range kv.data {
		cached, ok := c.Get(ctx, key[len("content:"):])
		require.True(t, ok)
		require.Len(t, cached, 1)
		assert.Equal(t, first[0].Slug, cached[0].Slug)
		assert.Equal(t, first[0].Metadata.Tag, cached[0].Metadata.Tag)
		assert.True(t, first[0].Metadata.PublishedAt.Equal(cached[0].Metadata.PublishedAt.Time))
	}

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)
}

// gatedFS blocks content reads until release is closed.
type gatedFS struct {
	fstest.MapFS
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedFS) ReadFile(name string) ([]byte, error) {
	if strings.HasSuffix(name, ".mdx") {
		g.once.Do(func() { close(g.entered) })
		<-g.release
	}
	return g.MapFS.ReadFile(name)
}

func TestListSharedFillSurvivesCallerCancel(t *testing.T) {
	t.Parallel()

	fsys := &gatedFS{MapFS: fixtures(), entered: make(chan struct{}), release: make(chan struct{})}
	r := content.NewResolver(fsys, content.WithWorkers(1))

	type result struct {
		records []content.Record
		err     error
	}
	list := func(ctx context.Context) <-chan result {
		out := make(chan result, 1)
		go func() {
			records, err := r.List(ctx, content.KindPost, locale.EN, nil)
			out <- result{records, err}
		}()
		return out
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	first := list(ctxA)
	<-fsys.entered
	second := list(context.Background())

	cancelA()
	a := <-first
	assert.ErrorIs(t, a.err, context.Canceled)

	close(fsys.release)
	b := <-second
	require.NoError(t, b.err)
	assert.Equal(t, []string{"second", "hello", "third"}, slugs(b.records))
}
