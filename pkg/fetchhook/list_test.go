package fetchhook_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/fetchhook"
	"github.com/dmitrymomot/folio/pkg/langsync"
	"github.com/dmitrymomot/folio/pkg/locale"
)

type item struct {
	Title string
}

type fakeFetcher struct {
	mu    sync.Mutex
	calls []locale.Locale
	fail  error
	// when set, FR fetches wait for release or cancellation
	block chan struct{}
}

func (f *fakeFetcher) Fetch(ctx context.Context, l locale.Locale) ([]item, error) {
	f.mu.Lock()
	f.calls = append(f.calls, l)
	n := len(f.calls)
	block := f.block
	fail := f.fail
	f.mu.Unlock()

	if block != nil && l == locale.FR {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if fail != nil {
		return nil, fail
	}
	return []item{{Title: fmt.Sprintf("%s#%d", l, n)}}, nil
}

func (f *fakeFetcher) Calls() []locale.Locale {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]locale.Locale(nil), f.calls...)
}

func seed() []item { return []item{{Title: "seed"}} }

func TestListViewNoFetchWhenLocaleMatchesSeed(t *testing.T) {
	t.Parallel()
	store := langsync.NewStore(locale.EN)
	f := &fakeFetcher{}

	v := fetchhook.NewListView[item](context.Background(), store, locale.EN, seed(), f)
	defer v.Close()

	require.NoError(t, v.Wait(context.Background()))
	assert.Empty(t, f.Calls())
	assert.Equal(t, seed(), v.Items())
	assert.Equal(t, locale.EN, v.Snapshot().Locale)
}

func TestListViewRefetchesOnSwitch(t *testing.T) {
	t.Parallel()
	store := langsync.NewStore(locale.EN)
	f := &fakeFetcher{}

	var mu sync.Mutex
	var updates []fetchhook.Snapshot[item]
	v := fetchhook.NewListView[item](context.Background(), store, locale.EN, seed(), f,
		fetchhook.WithOnUpdate(func(s fetchhook.Snapshot[item]) {
			mu.Lock()
			defer mu.Unlock()
			updates = append(updates, s)
		}),
	)
	defer v.Close()

	store.Set(locale.FR)
	require.NoError(t, v.Wait(context.Background()))

	snap := v.Snapshot()
	assert.Equal(t, locale.FR, snap.Locale)
	assert.Equal(t, []item{{Title: "FR#1"}}, snap.Items)
	assert.False(t, snap.Loading)
	assert.NoError(t, snap.Err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, updates, 2)
	assert.True(t, updates[0].Loading)
	assert.False(t, updates[1].Loading)
}

func TestListViewKeepsRecordsOnError(t *testing.T) {
	t.Parallel()
	store := langsync.NewStore(locale.EN)
	boom := errors.New("api down")
	f := &fakeFetcher{fail: boom}

	v := fetchhook.NewListView[item](context.Background(), store, locale.EN, seed(), f)
	defer v.Close()

	store.Set(locale.FR)
	require.NoError(t, v.Wait(context.Background()))

	snap := v.Snapshot()
	assert.Equal(t, seed(), snap.Items)
	assert.Equal(t, locale.EN, snap.Locale)
	assert.ErrorIs(t, snap.Err, boom)
	assert.False(t, snap.Loading)
}

func TestListViewDropsStaleFetch(t *testing.T) {
	t.Parallel()
	store := langsync.NewStore(locale.EN)
	f := &fakeFetcher{block: make(chan struct{})}

	v := fetchhook.NewListView[item](context.Background(), store, locale.EN, seed(), f)
	defer v.Close()

	store.Set(locale.FR)
	assert.True(t, v.Snapshot().Loading)

	// switching back before the FR fetch returns cancels it
	store.Set(locale.EN)
	require.NoError(t, v.Wait(context.Background()))
	close(f.block)

	snap := v.Snapshot()
	assert.Equal(t, locale.EN, snap.Locale)
	assert.Equal(t, seed(), snap.Items)
	assert.False(t, snap.Loading)
}

func TestListViewNewestFetchWins(t *testing.T) {
	t.Parallel()
	store := langsync.NewStore(locale.EN)
	f := &fakeFetcher{block: make(chan struct{})}

	v := fetchhook.NewListView[item](context.Background(), store, locale.EN, seed(), f)
	defer v.Close()

	store.Set(locale.FR)
	store.Set(locale.EN)
	store.Set(locale.FR)
	close(f.block)
	require.NoError(t, v.Wait(context.Background()))

	items := v.Items()
	require.Len(t, items, 1)
	assert.True(t, strings.HasPrefix(items[0].Title, "FR#"))
	assert.Equal(t, locale.FR, v.Snapshot().Locale)
	for _, l := range f.Calls() {
		assert.Equal(t, locale.FR, l)
	}
}

func TestListViewFetchesWhenStoreDiffersFromSeed(t *testing.T) {
	t.Parallel()
	store := langsync.NewStore(locale.FR)
	f := &fakeFetcher{}

	v := fetchhook.NewListView[item](context.Background(), store, locale.EN, seed(), f)
	defer v.Close()

	require.NoError(t, v.Wait(context.Background()))
	assert.Equal(t, []item{{Title: "FR#1"}}, v.Items())
}

func TestListViewClose(t *testing.T) {
	t.Parallel()
	store := langsync.NewStore(locale.EN)
	f := &fakeFetcher{}

	v := fetchhook.NewListView[item](context.Background(), store, locale.EN, seed(), f)
	v.Close()
	v.Close()

	store.Set(locale.FR)
	require.NoError(t, v.Wait(context.Background()))
	assert.Empty(t, f.Calls())
	assert.Equal(t, seed(), v.Items())
}

// A user on a list page switches EN -> FR: the URL marker and the cookie
// follow, the list is replaced with French records, and nothing reloads.
func TestListPageLocaleSwitch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	start, err := url.Parse("/blog?lang=EN")
	require.NoError(t, err)

	store := langsync.NewStore(locale.EN)
	nav := langsync.NewMemoryNavigator(start)
	prefs := langsync.NewMemoryPreference()
	syncer := langsync.New(store, nav, prefs, langsync.WithHardReload(langsync.DetailPages("/blog/", "/work/")))
	defer syncer.Close()

	initial := locale.EN
	require.NoError(t, syncer.Mount(ctx, start, &initial))

	f := &fakeFetcher{}
	v := fetchhook.NewListView[item](ctx, store, locale.EN, seed(), f)
	defer v.Close()

	store.Set(locale.FR)
	require.NoError(t, v.Wait(ctx))

	assert.Equal(t, "/blog?lang=FR", nav.Current().String())
	saved, ok := prefs.Load()
	require.True(t, ok)
	assert.Equal(t, locale.FR, saved)
	assert.Equal(t, []item{{Title: "FR#1"}}, v.Items())
	assert.Empty(t, nav.Reloads())
}
