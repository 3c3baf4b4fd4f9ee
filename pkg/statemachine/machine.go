package statemachine

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Guard decides at fire time whether a transition may proceed.
type Guard[S, E comparable] func(ctx context.Context, from S, event E, data any) bool

// Action runs before the state changes. An error aborts the transition.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E, data any) error

// Observer is notified after every successful transition.
type Observer[S, E comparable] func(from, to S, event E)

type transition[S, E comparable] struct {
	to      S
	guards  []Guard[S, E]
	actions []Action[S, E]
}

// Machine is a finite state machine over states S and events E.
type Machine[S, E comparable] struct {
	mu          sync.Mutex
	initial     S
	current     S
	transitions map[S]map[E][]transition[S, E]
	observers   []Observer[S, E]
}

// New creates a machine in state initial.
func New[S, E comparable](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m := &Machine[S, E]{
		initial:     initial,
		current:     initial,
		transitions: make(map[S]map[E][]transition[S, E]),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine[S, E]) Current() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Is reports whether the machine is in state s.
func (m *Machine[S, E]) Is(s S) bool {
	return m.Current() == s
}

// AddTransition registers from --event--> to. Transitions for the same
// state and event are tried in registration order; the first whose guards
// all pass wins.
func (m *Machine[S, E]) AddTransition(from, to S, event E, guards []Guard[S, E], actions []Action[S, E]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.transitions[from] == nil {
		m.transitions[from] = make(map[E][]transition[S, E])
	}
	m.transitions[from][event] = append(m.transitions[from][event], transition[S, E]{to: to, guards: guards, actions: actions})
}

// Fire applies event. It returns an error wrapping ErrNoTransition,
// ErrTransitionRejected or ErrActionFailed when the state does not change.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, data any) error {
	m.mu.Lock()
	from := m.current
	t, err := m.find(ctx, event, data)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	for _, action := range t.actions {
		if err := action(ctx, from, t.to, event, data); err != nil {
			m.mu.Unlock()
			return &TransitionError{State: fmt.Sprint(from), Event: fmt.Sprint(event), Err: errors.Join(ErrActionFailed, err)}
		}
	}
	m.current = t.to
	observers := m.observers
	m.mu.Unlock()

	for _, o := range observers {
		o(from, t.to, event)
	}
	return nil
}

// CanFire reports whether Fire would find a transition whose guards pass.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E, data any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.find(ctx, event, data)
	return err == nil
}

// Reset returns the machine to its initial state without running actions or observers.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}

// caller holds mu
func (m *Machine[S, E]) find(ctx context.Context, event E, data any) (transition[S, E], error) {
	candidates := m.transitions[m.current][event]
	if len(candidates) == 0 {
		return transition[S, E]{}, &TransitionError{State: fmt.Sprint(m.current), Event: fmt.Sprint(event), Err: ErrNoTransition}
	}
	for _, t := range candidates {
		if guardsPass(ctx, t.guards, m.current, event, data) {
			return t, nil
		}
	}
	return transition[S, E]{}, &TransitionError{State: fmt.Sprint(m.current), Event: fmt.Sprint(event), Err: ErrTransitionRejected}
}

func guardsPass[S, E comparable](ctx context.Context, guards []Guard[S, E], from S, event E, data any) bool {
	for _, g := range guards {
		if !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}
