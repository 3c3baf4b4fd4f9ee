package locale

import "context"

type contextKey struct{}

// WithContext stores the resolved locale in ctx.
func WithContext(ctx context.Context, l Locale) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the locale stored in ctx, or Default when none is set.
func FromContext(ctx context.Context) Locale {
	l, ok := FromContextOK(ctx)
	if !ok {
		return Default
	}
	return l
}

// FromContextOK returns the locale stored in ctx and whether it was present.
func FromContextOK(ctx context.Context) (Locale, bool) {
	if ctx == nil {
		return Default, false
	}
	l, ok := ctx.Value(contextKey{}).(Locale)
	if !ok || !IsValid(string(l)) {
		return Default, false
	}
	return l, true
}
