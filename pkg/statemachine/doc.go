// Package statemachine implements a small, concurrency-safe finite state
// machine with guarded transitions, transition actions and observers.
//
// States and events are any comparable types, usually string-based:
//
//	type phase string
//	const (idle phase = "idle"; busy phase = "busy")
//
//	m := statemachine.New[phase, string](idle,
//	    statemachine.WithTransition[phase, string](idle, busy, "begin"),
//	    statemachine.WithTransition[phase, string](busy, idle, "settle"),
//	)
//	if err := m.Fire(ctx, "begin", nil); statemachine.IsNoTransition(err) {
//	    // already busy
//	}
//
// Guards and actions run while the machine is locked and must not call back
// into it. Observers run after the state change, outside the lock.
package statemachine
