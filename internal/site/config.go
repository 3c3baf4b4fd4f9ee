package site

import (
	"time"

	"github.com/dmitrymomot/folio/pkg/cookie"
	"github.com/dmitrymomot/folio/pkg/httpserver"
	"github.com/dmitrymomot/folio/pkg/ratelimiter"
	"github.com/dmitrymomot/folio/pkg/redis"
)

// Cache drivers for content listings.
const (
	CacheNone  = "none"
	CacheLRU   = "lru"
	CacheRedis = "redis"
)

// Config is the complete runtime configuration, loaded with config.Load.
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"APP_NAME" envDefault:"folio"`
	BaseURL string `env:"SITE_BASE_URL" envDefault:"http://localhost:8080"`

	ContentDir string `env:"CONTENT_DIR" envDefault:"./content"`
	// LabelsDir is relative to ContentDir. Built-in strings are used when it has no en file.
	LabelsDir string `env:"LABELS_DIR" envDefault:"labels"`

	CacheDriver string        `env:"CACHE_DRIVER" envDefault:"none"`
	CacheSize   int           `env:"CACHE_SIZE" envDefault:"64"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"1m"`

	// TrustedProxyHeaders are read, in order, for the client address.
	TrustedProxyHeaders []string `env:"TRUSTED_PROXY_HEADERS" envSeparator:"," envDefault:"X-Forwarded-For,X-Real-IP"`

	HTTP      httpserver.Config
	Cookie    cookie.Config
	Redis     redis.Config
	RateLimit ratelimiter.Config
}
