package fetchhook

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/folio/pkg/async"
	"github.com/dmitrymomot/folio/pkg/langsync"
	"github.com/dmitrymomot/folio/pkg/locale"
	"github.com/dmitrymomot/folio/pkg/logger"
)

// Fetcher loads the list for a locale.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, l locale.Locale) ([]T, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc[T any] func(ctx context.Context, l locale.Locale) ([]T, error)

func (f FetcherFunc[T]) Fetch(ctx context.Context, l locale.Locale) ([]T, error) { return f(ctx, l) }

// Snapshot is the observable state of a ListView.
type Snapshot[T any] struct {
	// Locale of Items.
	Locale locale.Locale
	Items  []T
	// Loading is true while a fetch for another locale is in flight.
	Loading bool
	// Err is the error of the last failed fetch, cleared by the next success.
	Err error
}

// ListOption configures a ListView.
type ListOption[T any] func(*ListView[T])

// WithListLogger sets the logger for fetch failures.
func WithListLogger[T any](l *slog.Logger) ListOption[T] {
	return func(v *ListView[T]) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithOnUpdate registers fn to receive every state change.
func WithOnUpdate[T any](fn func(Snapshot[T])) ListOption[T] {
	return func(v *ListView[T]) {
		if fn != nil {
			v.onUpdate = append(v.onUpdate, fn)
		}
	}
}

// ListView is a list of records that follows the store's locale.
type ListView[T any] struct {
	store    *langsync.Store
	fetcher  Fetcher[T]
	logger   *slog.Logger
	onUpdate []func(Snapshot[T])
	ctx      context.Context
	latest   async.Latest[[]T]

	mu          sync.Mutex
	state       Snapshot[T]
	last        *async.Future[[]T]
	unsubscribe func()
}

// NewListView creates a view seeded with the records rendered for seedLocale.
// If the store already holds another locale a fetch starts immediately.
func NewListView[T any](ctx context.Context, store *langsync.Store, seedLocale locale.Locale, seed []T, fetcher Fetcher[T], opts ...ListOption[T]) *ListView[T] {
	v := &ListView[T]{
		store:   store,
		fetcher: fetcher,
		logger:  slog.New(slog.DiscardHandler),
		ctx:     context.WithoutCancel(ctx),
		state: Snapshot[T]{
			Locale: locale.Parse(seedLocale.String()),
			Items:  slices.Clone(seed),
		},
	}
	for _, opt := range opts {
		opt(v)
	}

	v.unsubscribe = store.Subscribe(func(_, next locale.Locale) {
		v.follow(next)
	})
	v.follow(store.Get())
	return v
}

// Snapshot returns the current state. Items is a copy.
func (v *ListView[T]) Snapshot() Snapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Items = slices.Clone(s.Items)
	return s
}

// Items returns a copy of the displayed records.
func (v *ListView[T]) Items() []T {
	return v.Snapshot().Items
}

// Wait blocks until no fetch is in flight or ctx is done.
func (v *ListView[T]) Wait(ctx context.Context) error {
	for {
		v.mu.Lock()
		f := v.last
		v.mu.Unlock()
		if f == nil {
			return nil
		}
		if _, err := f.AwaitContext(ctx); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}

		v.mu.Lock()
		settled := v.last == f || v.last == nil
		v.mu.Unlock()
		if settled {
			return nil
		}
	}
}

// Close stops following the store and drops any in-flight fetch.
func (v *ListView[T]) Close() {
	v.mu.Lock()
	unsubscribe := v.unsubscribe
	v.unsubscribe = nil
	v.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	v.latest.Cancel()
}

func (v *ListView[T]) follow(next locale.Locale) {
	v.mu.Lock()
	if next == v.state.Locale {
		// back to the locale on display; whatever is in flight is stale
		wasLoading := v.state.Loading
		v.state.Loading = false
		v.last = nil
		snap := v.snapshotLocked()
		v.mu.Unlock()

		v.latest.Cancel()
		if wasLoading {
			v.notify(snap)
		}
		return
	}
	v.state.Loading = true
	snap := v.snapshotLocked()
	v.mu.Unlock()
	v.notify(snap)

	f, _ := v.latest.Go(v.ctx, func(ctx context.Context) ([]T, error) {
		return v.fetcher.Fetch(ctx, next)
	}, func(items []T, err error) {
		v.settle(next, items, err)
	})

	v.mu.Lock()
	if v.state.Loading {
		v.last = f
	}
	v.mu.Unlock()
}

func (v *ListView[T]) settle(l locale.Locale, items []T, err error) {
	if err == nil && v.store.Get() != l {
		// the store moved on before a newer fetch was started
		return
	}

	v.mu.Lock()
	v.state.Loading = false
	if err != nil {
		v.state.Err = err
	} else {
		v.state.Locale = l
		v.state.Items = slices.Clone(items)
		v.state.Err = nil
	}
	snap := v.snapshotLocked()
	v.mu.Unlock()

	if err != nil {
		v.logger.WarnContext(v.ctx, "locale refetch failed, keeping previous records",
			logger.Component("fetchhook"),
			logger.Locale(l.String()),
			logger.Error(err),
		)
	}
	v.notify(snap)
}

func (v *ListView[T]) snapshotLocked() Snapshot[T] {
	s := v.state
	s.Items = slices.Clone(s.Items)
	return s
}

func (v *ListView[T]) notify(s Snapshot[T]) {
	for _, fn := range v.onUpdate {
		fn(s)
	}
}
