// Package fetch declares the fetch+cache contract: internal/convert calls a
// Fetcher for remote subscription URLs, and Cache memoizes a Fetcher's
// results. It also holds the out-of-scope collaborator interfaces the core
// only calls through: GistUploader. None of this package's HTTP traffic is
// itself a core concern (spec §1/§5).
package fetch

import (
	"context"
	"io"
	"net/http"
	"sync"

	"golang.org/x/oauth2"

	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

// Fetcher is the synchronous fetch(url) -> text collaborator (spec §5): a
// blocking call from the caller's point of view, whatever it does
// internally.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher is the default Fetcher, a thin GET-and-read-body wrapper.
// TokenSource is optional; when set, requests carry its token as a Bearer
// credential, covering the rare private-gist or authenticated rule-source
// case without making auth a first-class decode/ruleset concern.
type HTTPFetcher struct {
	Client      *http.Client
	TokenSource oauth2.TokenSource
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if f.TokenSource != nil {
		token, err := f.TokenSource.Token()
		if err != nil {
			return "", err
		}
		token.SetAuthHeader(req)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", apperrors.NewFetchError("unexpected status", url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Cache memoizes Fetcher results per URL so that multiple callers
// referencing the same remote source share one fetch, at most once per
// request (spec §5's lazy-shared-value requirement). A Cache is scoped to
// a single conversion request; it is not meant to outlive one.
type Cache struct {
	fetcher Fetcher

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	once    sync.Once
	content string
	err     error
}

// NewCache returns a Cache backed by fetcher.
func NewCache(fetcher Fetcher) *Cache {
	return &Cache{fetcher: fetcher, entries: make(map[string]*cacheEntry)}
}

// Get returns url's content, fetching it at most once regardless of how
// many callers share the URL. Per-source fetch failures are reported as a
// FetchError and must be skipped by the caller, not treated as fatal (spec
// §4.F).
func (c *Cache) Get(ctx context.Context, url string) (string, error) {
	c.mu.Lock()
	entry, ok := c.entries[url]
	if !ok {
		entry = &cacheEntry{}
		c.entries[url] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		entry.content, entry.err = c.fetcher.Fetch(ctx, url)
		if entry.err != nil {
			entry.err = apperrors.NewFetchError(entry.err.Error(), url)
		}
	})
	return entry.content, entry.err
}

// GistUploader is the single-method collaborator interface for subscription
// Gist upload (spec §1's "only the interfaces they expose to the core"):
// the concrete adapter, which would hold real Gist API credentials, stays
// outside the core entirely.
type GistUploader interface {
	Upload(ctx context.Context, content string) (url string, err error)
}
