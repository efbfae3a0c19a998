// Package archive orchestrates the two pipeline entry points: caching one
// day's STAC links and consolidating one month's links into a spatially
// ordered parquet archive.
package archive

import (
	"github.com/rs/zerolog"

	"github.com/example/go-hls/hls"
	"github.com/example/go-hls/hls/fetch"
	"github.com/example/go-hls/hls/spatial"
	"github.com/example/go-hls/hls/store"
)

// Fixed ceiling for monthly STAC item fetches.
const fetchConcurrency = 50

// Config assembles an Archiver's collaborators. Catalog and Store are
// required; the rest default.
type Config struct {
	Catalog *hls.Client
	Store   store.Store
	Fetcher *fetch.Manager
	Keyer   *spatial.SortKeyer
	Logger  zerolog.Logger
	// Progress, when set, is forwarded to the fetcher.
	Progress fetch.ProgressFunc
}

// Archiver runs the daily link-caching and monthly consolidation workflows
// against one destination store.
type Archiver struct {
	catalog *hls.Client
	store   store.Store
	fetcher *fetch.Manager
	keyer   *spatial.SortKeyer
	log     zerolog.Logger
}

// New constructs an Archiver.
func New(cfg Config) *Archiver {
	if cfg.Fetcher == nil {
		cfg.Fetcher = fetch.NewManager(fetch.Config{
			Concurrency: fetchConcurrency,
			Progress:    cfg.Progress,
			Logger:      cfg.Logger,
		})
	}
	if cfg.Keyer == nil {
		cfg.Keyer = spatial.NewSortKeyer(spatial.MGRSConverter{}, cfg.Logger)
	}
	return &Archiver{
		catalog: cfg.Catalog,
		store:   cfg.Store,
		fetcher: cfg.Fetcher,
		keyer:   cfg.Keyer,
		log:     cfg.Logger,
	}
}
