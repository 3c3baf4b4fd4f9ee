package langsync

import (
	"context"
	"net/url"
	"sync"
)

// Navigator performs location changes on behalf of the synchronizer.
type Navigator interface {
	// Replace swaps the current history entry for u without reloading.
	Replace(ctx context.Context, u *url.URL) error
	// Reload loads u from the server.
	Reload(ctx context.Context, u *url.URL) error
}

// NavigatorFunc adapts a single function to Navigator. The reload flag tells
// which of the two operations was requested.
type NavigatorFunc func(ctx context.Context, u *url.URL, reload bool) error

func (f NavigatorFunc) Replace(ctx context.Context, u *url.URL) error { return f(ctx, u, false) }
func (f NavigatorFunc) Reload(ctx context.Context, u *url.URL) error  { return f(ctx, u, true) }

// MemoryNavigator is an in-process history used by tests and headless clients.
// Listeners registered with OnChange run after every Replace, the way a router
// re-renders after a location update.
type MemoryNavigator struct {
	mu        sync.Mutex
	current   *url.URL
	replaces  []string
	reloads   []string
	listeners []func(ctx context.Context, u *url.URL)
}

// NewMemoryNavigator creates a navigator positioned at start.
func NewMemoryNavigator(start *url.URL) *MemoryNavigator {
	return &MemoryNavigator{current: cloneURL(start)}
}

// OnChange registers fn to run after each Replace.
func (n *MemoryNavigator) OnChange(fn func(ctx context.Context, u *url.URL)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, fn)
}

func (n *MemoryNavigator) Replace(ctx context.Context, u *url.URL) error {
	if u == nil {
		return ErrNilURL
	}
	n.mu.Lock()
	n.current = cloneURL(u)
	n.replaces = append(n.replaces, u.String())
	listeners := append([]func(context.Context, *url.URL){}, n.listeners...)
	n.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx, cloneURL(u))
	}
	return nil
}

func (n *MemoryNavigator) Reload(_ context.Context, u *url.URL) error {
	if u == nil {
		return ErrNilURL
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = cloneURL(u)
	n.reloads = append(n.reloads, u.String())
	return nil
}

// Current returns a copy of the current location.
func (n *MemoryNavigator) Current() *url.URL {
	n.mu.Lock()
	defer n.mu.Unlock()
	return cloneURL(n.current)
}

// Replaces returns every URL passed to Replace, oldest first.
func (n *MemoryNavigator) Replaces() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.replaces...)
}

// Reloads returns every URL passed to Reload, oldest first.
func (n *MemoryNavigator) Reloads() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.reloads...)
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return &c
}
