package fetchhook

import (
	"sync"

	"github.com/dmitrymomot/folio/pkg/langsync"
	"github.com/dmitrymomot/folio/pkg/locale"
)

// DetailView exposes the variant of one item that matches the store's locale.
type DetailView[T any] struct {
	store *langsync.Store
	en    *T
	fr    *T

	mu          sync.Mutex
	listeners   []func(item *T, l locale.Locale)
	unsubscribe func()
}

// NewDetailView creates a view over the EN and FR variants. Either may be nil.
func NewDetailView[T any](store *langsync.Store, en, fr *T) *DetailView[T] {
	v := &DetailView[T]{store: store, en: en, fr: fr}
	v.unsubscribe = store.Subscribe(func(_, next locale.Locale) {
		item, l := v.pick(next)
		v.mu.Lock()
		listeners := append([]func(*T, locale.Locale){}, v.listeners...)
		v.mu.Unlock()
		for _, fn := range listeners {
			fn(item, l)
		}
	})
	return v
}

// Found reports whether at least one variant exists.
func (v *DetailView[T]) Found() bool {
	return v.en != nil || v.fr != nil
}

// Has reports whether the variant for l exists.
func (v *DetailView[T]) Has(l locale.Locale) bool {
	if l == locale.FR {
		return v.fr != nil
	}
	return v.en != nil
}

// Current returns the variant for the store's locale, falling back to the
// other one, and the locale of the returned variant. It returns nil only when
// neither variant exists.
func (v *DetailView[T]) Current() (*T, locale.Locale) {
	return v.pick(v.store.Get())
}

// OnChange registers fn to run with the newly picked variant after every locale switch.
func (v *DetailView[T]) OnChange(fn func(item *T, l locale.Locale)) {
	if fn == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, fn)
}

// Close stops following the store.
func (v *DetailView[T]) Close() {
	v.mu.Lock()
	unsubscribe := v.unsubscribe
	v.unsubscribe = nil
	v.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (v *DetailView[T]) pick(l locale.Locale) (*T, locale.Locale) {
	switch {
	case l == locale.FR && v.fr != nil:
		return v.fr, locale.FR
	case l == locale.EN && v.en != nil:
		return v.en, locale.EN
	case v.en != nil:
		return v.en, locale.EN
	case v.fr != nil:
		return v.fr, locale.FR
	}
	return nil, l
}
