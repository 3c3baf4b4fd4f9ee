package langsync_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/langsync"
	"github.com/dmitrymomot/folio/pkg/locale"
)

type fixture struct {
	store *langsync.Store
	nav   *langsync.MemoryNavigator
	prefs *langsync.MemoryPreference
	sync  *langsync.Synchronizer
}

func newFixture(t *testing.T, start string, opts ...langsync.Option) *fixture {
	t.Helper()
	f := &fixture{
		store: langsync.NewStore(locale.EN),
		nav:   langsync.NewMemoryNavigator(mustURL(t, start)),
		prefs: langsync.NewMemoryPreference(),
	}
	f.sync = langsync.New(f.store, f.nav, f.prefs, opts...)
	// a router reports every replace back as a navigation
	f.nav.OnChange(func(ctx context.Context, u *url.URL) {
		_ = f.sync.Navigate(ctx, u)
	})
	t.Cleanup(f.sync.Close)
	return f
}

func TestSynchronizerMount(t *testing.T) {
	t.Parallel()

	t.Run("adopts url marker over server value", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, "/blog?lang=FR")

		require.NoError(t, f.sync.Mount(context.Background(), f.nav.Current(), ptr(locale.EN)))

		assert.Equal(t, locale.FR, f.store.Get())
		assert.Empty(t, f.nav.Replaces())
		saved, ok := f.prefs.Load()
		require.True(t, ok)
		assert.Equal(t, locale.FR, saved)
	})

	t.Run("writes server value into url once", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, "/about?ref=home")

		require.NoError(t, f.sync.Mount(context.Background(), f.nav.Current(), ptr(locale.FR)))

		assert.Equal(t, locale.FR, f.store.Get())
		assert.Equal(t, []string{"/about?ref=home&lang=FR"}, f.nav.Replaces())
		assert.Equal(t, "/about?ref=home&lang=FR", f.sync.URL().String())
		assert.False(t, f.sync.Reconciling())
	})

	t.Run("twice", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, "/")
		ctx := context.Background()

		require.NoError(t, f.sync.Mount(ctx, f.nav.Current(), nil))
		assert.ErrorIs(t, f.sync.Mount(ctx, f.nav.Current(), nil), langsync.ErrAlreadyMounted)
	})

	t.Run("nil url", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, "/")
		assert.ErrorIs(t, f.sync.Mount(context.Background(), nil, nil), langsync.ErrNilURL)
	})
}

func TestSynchronizerRequiresMount(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "/")
	ctx := context.Background()

	assert.ErrorIs(t, f.sync.Navigate(ctx, mustURL(t, "/blog")), langsync.ErrNotMounted)
	assert.ErrorIs(t, f.sync.Switch(ctx, locale.FR), langsync.ErrNotMounted)

	// store writes before mount are not observed
	f.store.Set(locale.FR)
	assert.Empty(t, f.nav.Replaces())
}

func TestSynchronizerExternalSwitch(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "/blog?lang=EN&page=2")
	ctx := context.Background()
	require.NoError(t, f.sync.Mount(ctx, f.nav.Current(), ptr(locale.EN)))
	savesAfterMount := f.prefs.Saves()

	f.store.Set(locale.FR)

	assert.Equal(t, "/blog?lang=FR&page=2", f.nav.Current().String())
	assert.Empty(t, f.nav.Reloads())
	saved, _ := f.prefs.Load()
	assert.Equal(t, locale.FR, saved)
	assert.Equal(t, savesAfterMount+1, f.prefs.Saves())
	assert.False(t, f.sync.Reconciling())
}

func TestSynchronizerSwitchOnDetailPageReloads(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "/blog/hello?lang=EN", langsync.WithHardReload(langsync.DetailPages("/blog/", "/work/")))
	ctx := context.Background()
	require.NoError(t, f.sync.Mount(ctx, f.nav.Current(), nil))

	require.NoError(t, f.sync.Switch(ctx, locale.FR))

	assert.Equal(t, locale.FR, f.store.Get())
	assert.Equal(t, []string{"/blog/hello?lang=FR"}, f.nav.Reloads())
	assert.Empty(t, f.nav.Replaces())
}

func TestSynchronizerIdempotent(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "/work?lang=FR")
	ctx := context.Background()
	require.NoError(t, f.sync.Mount(ctx, f.nav.Current(), nil))

	gen := f.sync.Generation()
	saves := f.prefs.Saves()
	replaces := f.nav.Replaces()

	for range 2 {
		require.NoError(t, f.sync.Navigate(ctx, f.nav.Current()))
		require.NoError(t, f.sync.Switch(ctx, locale.FR))
	}
	f.store.Set(locale.FR)

	assert.Equal(t, gen, f.sync.Generation())
	assert.Equal(t, saves, f.prefs.Saves())
	assert.Equal(t, replaces, f.nav.Replaces())
}

func TestSynchronizerRepairsMissingMarker(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "/blog?lang=FR")
	ctx := context.Background()
	require.NoError(t, f.sync.Mount(ctx, f.nav.Current(), nil))
	saves := f.prefs.Saves()

	require.NoError(t, f.sync.Navigate(ctx, mustURL(t, "/work?tag=go&sort=new")))

	assert.Equal(t, []string{"/work?tag=go&sort=new&lang=FR"}, f.nav.Replaces())
	assert.Equal(t, saves, f.prefs.Saves())
	assert.Equal(t, locale.FR, f.store.Get())
}

func TestSynchronizerEffectFailureReleasesGuard(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	calls := 0
	nav := langsync.NavigatorFunc(func(_ context.Context, _ *url.URL, _ bool) error {
		calls++
		return boom
	})
	store := langsync.NewStore(locale.EN)
	prefs := langsync.NewMemoryPreference()
	s := langsync.New(store, nav, prefs)
	defer s.Close()
	ctx := context.Background()

	err := s.Mount(ctx, mustURL(t, "/about"), nil)
	require.ErrorIs(t, err, boom)
	assert.False(t, s.Reconciling())

	err = s.Switch(ctx, locale.FR)
	require.ErrorIs(t, err, boom)
	assert.False(t, s.Reconciling())
	assert.Equal(t, locale.FR, store.Get())
	assert.Equal(t, 2, calls)

	saved, ok := prefs.Load()
	require.True(t, ok)
	assert.Equal(t, locale.FR, saved)
}

func TestSynchronizerClose(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "/blog?lang=EN")
	ctx := context.Background()
	require.NoError(t, f.sync.Mount(ctx, f.nav.Current(), nil))

	f.sync.Close()
	f.sync.Close()
	f.store.Set(locale.FR)

	assert.Empty(t, f.nav.Replaces())
	assert.ErrorIs(t, f.sync.Navigate(ctx, mustURL(t, "/")), langsync.ErrClosed)
}

func TestSynchronizerHref(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "/blog?lang=FR&tag=go")
	require.NoError(t, f.sync.Mount(context.Background(), f.nav.Current(), nil))

	assert.Equal(t, "/work?lang=FR&tag=go", f.sync.Href("/work"))
}
