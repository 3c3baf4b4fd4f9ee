package ratelimiter

import "time"

// Result is the outcome of one check.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the checked request may proceed.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is how long a denied caller should wait, measured from now.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(r.ResetAt.Sub(now), 0)
}

// Config describes a token bucket. A zero Capacity disables limiting in callers
// that treat the limiter as optional.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"120"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"2"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1s"`
}

// Enabled reports whether c describes an active limit.
func (c Config) Enabled() bool {
	return c.Capacity > 0
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return errorf("capacity must be positive, got %d", c.Capacity)
	case c.RefillRate <= 0:
		return errorf("refill rate must be positive, got %d", c.RefillRate)
	case c.RefillInterval <= 0:
		return errorf("refill interval must be positive, got %v", c.RefillInterval)
	}
	return nil
}
