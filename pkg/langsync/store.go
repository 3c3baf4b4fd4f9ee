package langsync

import (
	"slices"
	"sync"

	"github.com/dmitrymomot/folio/pkg/locale"
)

// Listener is called after the store value changes.
type Listener func(prev, next locale.Locale)

// Store is an observable cell holding the current locale.
// Listeners run synchronously on the goroutine that called Set, after the
// store lock is released, in subscription order.
type Store struct {
	mu        sync.Mutex
	value     locale.Locale
	nextID    int
	listeners map[int]Listener
	order     []int
}

// NewStore creates a store seeded with initial. Invalid values become EN.
func NewStore(initial locale.Locale) *Store {
	return &Store{
		value:     locale.Parse(initial.String()),
		listeners: make(map[int]Listener),
	}
}

// Get returns the current value.
func (s *Store) Get() locale.Locale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores l and notifies listeners. It reports whether the value changed;
// setting the current value is a no-op.
func (s *Store) Set(l locale.Locale) bool {
	l = locale.Parse(l.String())

	s.mu.Lock()
	prev := s.value
	if prev == l {
		s.mu.Unlock()
		return false
	}
	s.value = l
	listeners := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(prev, l)
	}
	return true
}

// Subscribe registers fn and returns a function removing it.
// The returned function is safe to call more than once.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			s.order = slices.DeleteFunc(s.order, func(v int) bool { return v == id })
		})
	}
}
