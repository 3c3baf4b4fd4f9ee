package statemachine

// Option configures a Machine at construction.
type Option[S, E comparable] func(*Machine[S, E])

// TransitionOption configures one transition.
type TransitionOption[S, E comparable] func(*transition[S, E])

// WithTransition registers from --event--> to.
func WithTransition[S, E comparable](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) {
		t := transition[S, E]{to: to}
		for _, opt := range opts {
			opt(&t)
		}
		m.AddTransition(from, to, event, t.guards, t.actions)
	}
}

// WithObserver registers a transition observer.
func WithObserver[S, E comparable](o Observer[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}

func WithGuard[S, E comparable](g Guard[S, E]) TransitionOption[S, E] {
	return func(t *transition[S, E]) {
		if g != nil {
			t.guards = append(t.guards, g)
		}
	}
}

func WithAction[S, E comparable](a Action[S, E]) TransitionOption[S, E] {
	return func(t *transition[S, E]) {
		if a != nil {
			t.actions = append(t.actions, a)
		}
	}
}
