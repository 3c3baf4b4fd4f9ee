package fetchhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/folio/pkg/locale"
)

// LanguageParam is the query key the site API reads the locale from.
const LanguageParam = "language"

const maxResponseBytes = 8 << 20

// HTTPOption configures the HTTP fetchers.
type HTTPOption func(*httpConfig)

type httpConfig struct {
	client   *http.Client
	envelope string
	params   url.Values
}

// WithHTTPClient sets the client. Defaults to http.DefaultClient.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(cfg *httpConfig) {
		if c != nil {
			cfg.client = c
		}
	}
}

// WithEnvelope reads the payload from the named field of a JSON object
// instead of the top-level value.
func WithEnvelope(field string) HTTPOption {
	return func(cfg *httpConfig) {
		cfg.envelope = field
	}
}

// WithParam adds a fixed query parameter to every request.
func WithParam(key, value string) HTTPOption {
	return func(cfg *httpConfig) {
		cfg.params.Set(key, value)
	}
}

func newHTTPConfig(opts []HTTPOption) httpConfig {
	cfg := httpConfig{client: http.DefaultClient, params: url.Values{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// HTTPFetcher fetches a JSON list from endpoint?language=<locale>.
type HTTPFetcher[T any] struct {
	endpoint string
	cfg      httpConfig
}

// NewHTTPFetcher creates a list fetcher for endpoint (absolute URL).
func NewHTTPFetcher[T any](endpoint string, opts ...HTTPOption) *HTTPFetcher[T] {
	return &HTTPFetcher[T]{endpoint: endpoint, cfg: newHTTPConfig(opts)}
}

func (f *HTTPFetcher[T]) Fetch(ctx context.Context, l locale.Locale) ([]T, error) {
	var out []T
	status, err := f.cfg.get(ctx, f.endpoint, l, nil, &out)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// HTTPItemFetcher fetches one item from endpoint?language=<locale>&slug=<slug>.
type HTTPItemFetcher[T any] struct {
	endpoint string
	cfg      httpConfig
}

// NewHTTPItemFetcher creates an item fetcher for endpoint (absolute URL).
func NewHTTPItemFetcher[T any](endpoint string, opts ...HTTPOption) *HTTPItemFetcher[T] {
	return &HTTPItemFetcher[T]{endpoint: endpoint, cfg: newHTTPConfig(opts)}
}

// Fetch returns nil, nil when the API answers 404.
func (f *HTTPItemFetcher[T]) Fetch(ctx context.Context, l locale.Locale, slug string) (*T, error) {
	var out T
	status, err := f.cfg.get(ctx, f.endpoint, l, url.Values{"slug": {slug}}, &out)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return &out, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}
}

// get decodes a 200 response into dst and returns the status code.
func (c httpConfig) get(ctx context.Context, endpoint string, l locale.Locale, extra url.Values, dst any) (int, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildRequest, err)
	}
	q := u.Query()
	for k, vs := range c.params {
		q[k] = vs
	}
	for k, vs := range extra {
		q[k] = vs
	}
	q.Set(LanguageParam, locale.Parse(l.String()).String())
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return resp.StatusCode, nil
	}

	body := io.LimitReader(resp.Body, maxResponseBytes)
	if c.envelope == "" {
		if err := json.NewDecoder(body).Decode(dst); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
		}
		return resp.StatusCode, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	raw, ok := envelope[c.envelope]
	if !ok {
		return resp.StatusCode, fmt.Errorf("%w: missing field %q", ErrDecodeResponse, c.envelope)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	return resp.StatusCode, nil
}
