package fetchhook

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/folio/pkg/content"
)

// NewPostsFetcher reads GET <baseURL>/api/blog-posts.
func NewPostsFetcher(baseURL string, client *http.Client) *HTTPFetcher[content.Record] {
	return NewHTTPFetcher[content.Record](strings.TrimSuffix(baseURL, "/")+"/api/blog-posts", WithHTTPClient(client))
}

// NewProjectsFetcher reads GET <baseURL>/api/projects, optionally limited to rng.
func NewProjectsFetcher(baseURL string, client *http.Client, rng *content.Range) *HTTPFetcher[content.Record] {
	opts := []HTTPOption{WithHTTPClient(client), WithEnvelope("projects")}
	if rng != nil {
		opts = append(opts, WithParam("start", strconv.Itoa(rng.Start)))
		if rng.End != 0 {
			opts = append(opts, WithParam("end", strconv.Itoa(rng.End)))
		}
	}
	return NewHTTPFetcher[content.Record](strings.TrimSuffix(baseURL, "/")+"/api/projects", opts...)
}

// NewProjectFetcher reads GET <baseURL>/api/project.
func NewProjectFetcher(baseURL string, client *http.Client) *HTTPItemFetcher[content.Record] {
	return NewHTTPItemFetcher[content.Record](strings.TrimSuffix(baseURL, "/")+"/api/project", WithHTTPClient(client), WithEnvelope("project"))
}
