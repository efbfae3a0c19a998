// Package fetch retrieves batches of small STAC JSON documents from many
// hosts under a global concurrency ceiling.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	internalhttp "github.com/example/go-hls/hls/internal/http"
	"github.com/example/go-hls/hls/model"
	"github.com/example/go-hls/hls/store"
)

// ProgressFunc is invoked after each link resolves (success or failure).
type ProgressFunc func(done, total int)

// FailedLink records one link that could not be fetched, together with the
// reason. Per-link failures never abort the surrounding batch.
type FailedLink struct {
	Link *url.URL
	Err  error
}

// Config controls how a batch is executed.
type Config struct {
	// Concurrency caps in-flight fetches across the whole batch, not per
	// host. Defaults to 50.
	Concurrency int
	// Progress, when set, receives completion counts as links resolve.
	Progress ProgressFunc
	// HTTPClient overrides the per-host pooled clients. Intended for tests.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Manager fetches STAC items in bounded-concurrency batches.
type Manager struct {
	cfg Config
}

// NewManager constructs a Manager with the provided configuration.
func NewManager(cfg Config) *Manager {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 50
	}
	return &Manager{cfg: cfg}
}

// getter retrieves one document by path. Both pooled HTTP clients and object
// stores satisfy it.
type getter interface {
	Get(ctx context.Context, path string) ([]byte, error)
}

type httpGetter struct {
	client *http.Client
	base   string
}

func (g *httpGetter) Get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.base+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := internalhttp.Do(ctx, g.client, req, internalhttp.DefaultRetryPolicy())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, internalhttp.HTTPError(resp)
	}
	return io.ReadAll(resp.Body)
}

// Fetch retrieves every link and parses each body as a STAC item. The two
// result sets partition the input: len(items) + len(failed) == len(links),
// and the items slice preserves submission order so an upstream spatial sort
// carries through to the output. An empty input returns immediately without
// scheduling any work.
func (m *Manager) Fetch(ctx context.Context, links []*url.URL) ([]model.Item, []FailedLink) {
	if len(links) == 0 {
		return nil, nil
	}

	getters, failed := m.gettersByHost(ctx, links)

	items := make([]model.Item, len(links))
	errs := make([]error, len(links))
	var done int64

	g := new(errgroup.Group)
	sem := make(chan struct{}, m.cfg.Concurrency)

	for i, link := range links {
		getter, ok := getters[hostKey(link)]
		if !ok {
			errs[i] = failed[hostKey(link)]
			continue
		}

		i, link := i, link
		g.Go(func() error {
			select {
			case <-ctx.Done():
				errs[i] = ctx.Err()
			case sem <- struct{}{}:
				item, err := fetchItem(ctx, getter, link)
				<-sem
				if err != nil {
					m.cfg.Logger.Warn().Err(err).Str("url", link.String()).Msg("failed to fetch STAC item")
					errs[i] = err
				} else {
					items[i] = item
				}
			}
			if m.cfg.Progress != nil {
				m.cfg.Progress(int(atomic.AddInt64(&done, 1)), len(links))
			}
			return nil
		})
	}
	g.Wait()

	successes := make([]model.Item, 0, len(links))
	var failures []FailedLink
	for i, link := range links {
		if errs[i] != nil {
			failures = append(failures, FailedLink{Link: link, Err: errs[i]})
			continue
		}
		successes = append(successes, items[i])
	}
	return successes, failures
}

// gettersByHost builds one connection-pooled client (or object store) per
// distinct scheme://host. Pools live for one batch; no cross-batch reuse.
func (m *Manager) gettersByHost(ctx context.Context, links []*url.URL) (map[string]getter, map[string]error) {
	getters := make(map[string]getter)
	failed := make(map[string]error)
	for _, link := range links {
		key := hostKey(link)
		if _, ok := getters[key]; ok {
			continue
		}
		if _, ok := failed[key]; ok {
			continue
		}
		switch link.Scheme {
		case "http", "https":
			client := m.cfg.HTTPClient
			if client == nil {
				client = &http.Client{
					Timeout: 30 * time.Second,
					Transport: &http.Transport{
						MaxIdleConns:        m.cfg.Concurrency,
						MaxIdleConnsPerHost: m.cfg.Concurrency,
						IdleConnTimeout:     90 * time.Second,
					},
				}
			}
			getters[key] = &httpGetter{client: client, base: key}
		default:
			st, err := store.FromURL(ctx, key)
			if err != nil {
				failed[key] = fmt.Errorf("fetch: no store for %s: %w", key, err)
				continue
			}
			getters[key] = st
		}
	}
	return getters, failed
}

func fetchItem(ctx context.Context, g getter, link *url.URL) (model.Item, error) {
	body, err := g.Get(ctx, link.Path)
	if err != nil {
		return nil, err
	}
	var item model.Item
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("fetch: parse %s: %w", link, err)
	}
	// A bare "null" body decodes into a nil map without error. Treat it as a
	// parse failure so it joins the failure set instead of the item batch.
	if item == nil {
		return nil, fmt.Errorf("fetch: parse %s: document is not a JSON object", link)
	}
	return item, nil
}

func hostKey(link *url.URL) string {
	return link.Scheme + "://" + link.Host
}
