package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/config"
)

type siteConfig struct {
	BaseURL string   `env:"FOLIO_TEST_BASE_URL" envDefault:"http://localhost:8080"`
	Locales []string `env:"FOLIO_TEST_LOCALES" envSeparator:"," envDefault:"EN,FR"`
	Size    int      `env:"FOLIO_TEST_CACHE_SIZE" envDefault:"128"`
}

type requiredConfig struct {
	Dir string `env:"FOLIO_TEST_REQUIRED_DIR,required"`
}

func TestLoad(t *testing.T) {
	config.ResetCache()
	t.Setenv("FOLIO_TEST_BASE_URL", "https://example.com")

	var cfg siteConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "https://example.com", cfg.BaseURL)
	assert.Equal(t, []string{"EN", "FR"}, cfg.Locales)
	assert.Equal(t, 128, cfg.Size)

	t.Setenv("FOLIO_TEST_BASE_URL", "https://changed.example.com")
	var again siteConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "https://example.com", again.BaseURL, "second load is served from cache")

	config.ResetCache()
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "https://changed.example.com", again.BaseURL)
}

func TestLoadErrors(t *testing.T) {
	config.ResetCache()

	var nilCfg *siteConfig
	assert.ErrorIs(t, config.Load(nilCfg), config.ErrNilPointer)

	var req requiredConfig
	assert.ErrorIs(t, config.Load(&req), config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad(&req) })
}

func TestLoadEnv(t *testing.T) {
	config.ResetCache()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FOLIO_TEST_REQUIRED_DIR=./content\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("FOLIO_TEST_REQUIRED_DIR") })

	require.NoError(t, config.LoadEnv(path))

	var req requiredConfig
	require.NoError(t, config.Load(&req))
	assert.Equal(t, "./content", req.Dir)

	assert.ErrorIs(t, config.LoadEnv(filepath.Join(t.TempDir(), "missing.env")), config.ErrLoadingEnv)
	assert.Panics(t, func() { config.MustLoadEnv(filepath.Join(t.TempDir(), "missing.env")) })
}
