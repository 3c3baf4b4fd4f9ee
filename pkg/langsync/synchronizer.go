package langsync

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/folio/pkg/locale"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/statemachine"
)

type phase string

const (
	phaseIdle        phase = "idle"
	phaseReconciling phase = "reconciling"
)

type trigger string

const (
	triggerBegin  trigger = "begin"
	triggerSettle trigger = "settle"
)

// Synchronizer reconciles a Store with the URL marker and the persisted preference.
type Synchronizer struct {
	store  *Store
	nav    Navigator
	prefs  PreferenceStore
	logger *slog.Logger

	key        string
	hardReload func(path string) bool

	fsm        *statemachine.Machine[phase, trigger]
	generation atomic.Uint64

	mu          sync.Mutex
	ctx         context.Context
	url         *url.URL
	mounted     bool
	closed      bool
	unsubscribe func()
	// values the current pass is writing, used to recognise self-caused events
	writingCell *locale.Locale
	writingURL  string
	pending     Event
}

// New creates a synchronizer. It does nothing until Mount is called.
func New(store *Store, nav Navigator, prefs PreferenceStore, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		store:  store,
		nav:    nav,
		prefs:  prefs,
		logger: slog.New(slog.DiscardHandler),
		key:    locale.QueryKey,
		fsm: statemachine.New(phaseIdle,
			statemachine.WithTransition[phase, trigger](phaseIdle, phaseReconciling, triggerBegin),
			statemachine.WithTransition[phase, trigger](phaseReconciling, phaseIdle, triggerSettle),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mount runs mount-time adoption for the page at u and starts listening to
// the store. initial is the server-resolved locale, nil when unknown.
func (s *Synchronizer) Mount(ctx context.Context, u *url.URL, initial *locale.Locale) error {
	if u == nil {
		return ErrNilURL
	}

	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return ErrClosed
	case s.mounted:
		s.mu.Unlock()
		return ErrAlreadyMounted
	}
	s.mounted = true
	s.ctx = context.WithoutCancel(ctx)
	s.url = cloneURL(u)
	s.mu.Unlock()

	unsubscribe := s.store.Subscribe(s.onStoreChange)
	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()

	return s.reconcile(ctx, Mount{Initial: initial})
}

// Navigate reports a location change.
func (s *Synchronizer) Navigate(ctx context.Context, u *url.URL) error {
	if u == nil {
		return ErrNilURL
	}
	if err := s.ready(); err != nil {
		return err
	}
	return s.reconcile(ctx, Navigate{URL: cloneURL(u)})
}

// Switch sets the locale the way a user-facing switcher does.
func (s *Synchronizer) Switch(ctx context.Context, l locale.Locale) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.reconcile(ctx, Switch{Locale: l})
}

// Locale returns the current store value.
func (s *Synchronizer) Locale() locale.Locale {
	return s.store.Get()
}

// URL returns a copy of the location the synchronizer believes is current.
func (s *Synchronizer) URL() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneURL(s.url)
}

// Generation counts the passes that performed at least one mutation.
func (s *Synchronizer) Generation() uint64 {
	return s.generation.Load()
}

// Reconciling reports whether a pass is in flight.
func (s *Synchronizer) Reconciling() bool {
	return s.fsm.Is(phaseReconciling)
}

// Href builds a link to target for the current locale, carrying over the
// current page's query parameters.
func (s *Synchronizer) Href(target string) string {
	s.mu.Lock()
	query := ""
	if s.url != nil {
		query = s.url.RawQuery
	}
	s.mu.Unlock()
	return Href(target, query, s.store.Get())
}

// Close stops listening to the store. It is safe to call more than once.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.closed = true
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (s *Synchronizer) ready() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.closed:
		return ErrClosed
	case !s.mounted:
		return ErrNotMounted
	}
	return nil
}

// onStoreChange handles writes made to the store by anyone, including this
// synchronizer.
func (s *Synchronizer) onStoreChange(_, next locale.Locale) {
	s.mu.Lock()
	ctx := s.ctx
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}

	if err := s.reconcile(ctx, Switch{Locale: next}); err != nil {
		s.logger.ErrorContext(ctx, "locale switch failed",
			logger.Component("langsync"),
			logger.Locale(next.String()),
			logger.Error(err),
		)
	}
}

func (s *Synchronizer) reconcile(ctx context.Context, ev Event) error {
	if err := s.fsm.Fire(ctx, triggerBegin, nil); err != nil {
		if statemachine.IsNoTransition(err) {
			s.deferEvent(ev)
			return nil
		}
		return err
	}
	defer s.settle(ctx)

	s.mu.Lock()
	if nav, ok := ev.(Navigate); ok && nav.URL != nil {
		s.url = cloneURL(nav.URL)
	}
	state := State{
		Cell: s.store.Get(),
		URL:  cloneURL(s.url),
		Key:  s.key,
	}
	if s.hardReload != nil && state.URL != nil {
		state.HardReload = s.hardReload(state.URL.Path)
	}
	s.mu.Unlock()

	plan := Reduce(state, ev)
	if plan.NoOp() {
		return nil
	}
	s.generation.Add(1)

	s.logger.DebugContext(ctx, "reconciling locale",
		logger.Component("langsync"),
		logger.Locale(plan.Locale.String()),
		slog.Bool("set_cell", plan.SetCell),
		slog.Bool("replace_url", plan.ReplaceURL != nil),
		slog.Bool("persist", plan.Persist),
		slog.Bool("reload", plan.Reload),
	)

	return s.apply(ctx, plan)
}

func (s *Synchronizer) apply(ctx context.Context, plan Plan) error {
	s.mu.Lock()
	l := plan.Locale
	s.writingCell = &l
	if plan.ReplaceURL != nil {
		s.writingURL = locale.RequestURI(plan.ReplaceURL)
		s.url = cloneURL(plan.ReplaceURL)
	}
	target := cloneURL(s.url)
	s.mu.Unlock()

	if plan.SetCell {
		s.store.Set(plan.Locale)
	}

	var errs []error
	switch {
	case plan.Reload:
		if err := s.nav.Reload(ctx, target); err != nil {
			errs = append(errs, err)
		}
	case plan.ReplaceURL != nil:
		if err := s.nav.Replace(ctx, target); err != nil {
			errs = append(errs, err)
		}
	}
	if plan.Persist && s.prefs != nil {
		if err := s.prefs.Save(ctx, plan.Locale); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// deferEvent keeps an event that arrived during a pass unless the pass
// itself caused it.
func (s *Synchronizer) deferEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := ev.(type) {
	case Switch:
		if s.writingCell != nil && *s.writingCell == e.Locale {
			return
		}
	case Navigate:
		if s.writingURL != "" && locale.RequestURI(e.URL) == s.writingURL {
			return
		}
	case Mount:
		return
	}
	s.pending = ev
}

func (s *Synchronizer) settle(ctx context.Context) {
	s.mu.Lock()
	s.writingCell = nil
	s.writingURL = ""
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	if err := s.fsm.Fire(ctx, triggerSettle, nil); err != nil {
		s.logger.ErrorContext(ctx, "settle reconciliation", logger.Component("langsync"), logger.Error(err))
		s.fsm.Reset()
	}

	if pending == nil {
		return
	}
	if _, ok := pending.(Switch); ok {
		// the store may have moved on since the event was queued
		pending = Switch{Locale: s.store.Get()}
	}
	if err := s.reconcile(ctx, pending); err != nil {
		s.logger.ErrorContext(ctx, "replay deferred locale event", logger.Component("langsync"), logger.Error(err))
	}
}
