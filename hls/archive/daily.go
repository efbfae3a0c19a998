package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/go-hls/hls"
	"github.com/example/go-hls/hls/search"
)

// DailyInput parameterises one run of CacheDailyLinks.
type DailyInput struct {
	Collection hls.Collection
	// Date selects the calendar day (time-of-day is ignored; the query
	// window is 00:00:00 through 23:59:59 UTC inclusive).
	Date time.Time
	// BoundingBox optionally narrows the query spatially.
	BoundingBox *search.BoundingBox
	// Protocol selects the link scheme, "https" (default) or "s3".
	Protocol string
	// SkipExisting returns without work when the cache path already exists.
	SkipExisting bool
	// PageSize is the catalog page-size hint. Defaults to 2000.
	PageSize int
}

// CacheDailyLinks queries the catalog for one collection-day, extracts the
// STAC JSON links, and persists them as a JSON array at the day's
// deterministic cache path. A day with zero links is an error: every HLS day
// since the collection origin has data, so an empty result means the query
// or the catalog is wrong.
func (a *Archiver) CacheDailyLinks(ctx context.Context, in DailyInput) error {
	path := LinkPath(in.Collection, in.Date)

	if in.SkipExisting {
		exists, err := a.store.Head(ctx, path)
		if err != nil {
			return err
		}
		if exists {
			a.log.Info().Str("path", path).Msg("link cache already exists, skipping")
			return nil
		}
	}

	year, month, day := in.Date.Year(), in.Date.Month(), in.Date.Day()
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1).Add(-time.Second)

	builder := search.ParamsBuilder().
		AddConceptID(in.Collection.ConceptID()).
		Temporal(start, end)
	if bbox := in.BoundingBox; bbox != nil {
		builder = builder.BoundingBox(bbox.West, bbox.South, bbox.East, bbox.North)
	}
	params := builder.Build()

	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = 2000
	}

	granules, err := a.catalog.CollectGranules(ctx, params, pageSize)
	if err != nil {
		return fmt.Errorf("archive: collect granules for %s: %w", path, err)
	}

	links := hls.ExtractStacLinks(granules, in.Protocol)
	if len(links) == 0 {
		return &hls.EmptyResultError{Collection: in.Collection, Day: start}
	}

	urls := make([]string, 0, len(links))
	for _, link := range links {
		urls = append(urls, link.String())
	}
	data, err := json.Marshal(urls)
	if err != nil {
		return fmt.Errorf("archive: encode links for %s: %w", path, err)
	}

	if err := a.store.Put(ctx, path, data); err != nil {
		return err
	}
	a.log.Info().Str("path", path).Int("links", len(urls)).Msg("cached daily STAC links")
	return nil
}
