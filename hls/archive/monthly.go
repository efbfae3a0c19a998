package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/go-hls/hls"
	"github.com/example/go-hls/hls/fetch"
	"github.com/example/go-hls/hls/spatial"
	"github.com/example/go-hls/hls/stacparquet"
)

// MonthlyInput parameterises one run of WriteMonthlyArchive.
type MonthlyInput struct {
	Collection hls.Collection
	Year       int
	Month      int
	// Version namespaces the output path.
	Version string
	// RequireCompleteLinks fails the run unless every expected daily link
	// cache for the month is present, before any fetch work happens.
	RequireCompleteLinks bool
	// SkipExisting returns without work when the output already exists.
	SkipExisting bool
}

// WriteMonthlyArchive consolidates a month of cached daily link lists into
// one parquet file, ordered by Hilbert curve index so spatially adjacent
// tiles land near each other. A month with some unreachable documents is
// still written with whatever was fetched; only the completeness check is
// fatal.
func (a *Archiver) WriteMonthlyArchive(ctx context.Context, in MonthlyInput) error {
	if in.Month < 1 || in.Month > 12 {
		return fmt.Errorf("archive: invalid month %d", in.Month)
	}

	outPath := ArchivePath(in.Version, in.Collection, in.Year, in.Month)

	if in.SkipExisting {
		exists, err := a.store.Head(ctx, outPath)
		if err != nil {
			return err
		}
		if exists {
			a.log.Info().Str("path", outPath).Msg("archive already exists, skipping")
			return nil
		}
	}

	rawLinks, foundKeys, err := a.readMonthLinks(ctx, in.Collection, in.Year, in.Month)
	if err != nil {
		return err
	}
	a.log.Info().
		Str("collection", in.Collection.ID()).
		Int("links", len(rawLinks)).
		Msg("collected cached links")

	if in.RequireCompleteLinks {
		if err := verifyComplete(in.Collection, in.Year, in.Month, foundKeys, a.log); err != nil {
			return err
		}
	}

	a.log.Info().
		Str("collection", in.Collection.ID()).
		Int("links", len(rawLinks)).
		Msg("sorting links by spatial order")
	spatial.SortLinks(rawLinks, a.keyer)

	links, preFailed := parseLinks(rawLinks)
	items, failed := a.fetcher.Fetch(ctx, links)
	if n := len(failed) + len(preFailed); n > 0 {
		a.log.Warn().Int("failed", n).Msg("failed to retrieve some items")
	}

	for _, item := range items {
		item.SetCollection(in.Collection.ID())
	}

	if err := stacparquet.Write(ctx, a.store, outPath, items); err != nil {
		return err
	}
	a.log.Info().Str("path", outPath).Int("items", len(items)).Msg("wrote monthly archive")
	return nil
}

// readMonthLinks lists the month's daily caches and accumulates their link
// lists, recording which daily keys were actually present.
func (a *Archiver) readMonthLinks(ctx context.Context, c hls.Collection, year, month int) ([]string, []string, error) {
	objects, err := a.store.List(ctx, LinkPrefix(c, year, month))
	if err != nil {
		return nil, nil, err
	}

	var links []string
	var found []string
	for _, obj := range objects {
		data, err := a.store.Get(ctx, obj.Path)
		if err != nil {
			return nil, nil, err
		}
		var daily []string
		if err := json.Unmarshal(data, &daily); err != nil {
			return nil, nil, fmt.Errorf("archive: parse link cache %s: %w", obj.Path, err)
		}
		found = append(found, obj.Path)
		links = append(links, daily...)
	}
	return links, found, nil
}

// verifyComplete checks exact set-equality between the daily keys found in
// storage and the keys expected from calendar arithmetic. The origin month
// of a collection is partial: expected days start at the origin day.
func verifyComplete(c hls.Collection, year, month int, found []string, log zerolog.Logger) error {
	firstDay := 1
	if origin := c.OriginDate(); origin.Year() == year && int(origin.Month()) == month {
		firstDay = origin.Day()
		log.Info().Int("first_day", firstDay).Msg("origin month detected, expecting partial month")
	}

	var expected []string
	for day := firstDay; day <= lastDayOfMonth(year, month); day++ {
		expected = append(expected, LinkPath(c, time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)))
	}

	if !sameKeySet(expected, found) {
		sortedFound := append([]string{}, found...)
		sort.Strings(sortedFound)
		return &hls.IncompleteDataError{Expected: expected, Found: sortedFound}
	}
	return nil
}

func sameKeySet(expected, found []string) bool {
	if len(expected) != len(found) {
		return false
	}
	set := make(map[string]struct{}, len(expected))
	for _, key := range expected {
		set[key] = struct{}{}
	}
	for _, key := range found {
		if _, ok := set[key]; !ok {
			return false
		}
	}
	return true
}

func parseLinks(raw []string) ([]*url.URL, []fetch.FailedLink) {
	links := make([]*url.URL, 0, len(raw))
	var failed []fetch.FailedLink
	for _, s := range raw {
		u, err := url.Parse(s)
		if err != nil {
			failed = append(failed, fetch.FailedLink{Err: fmt.Errorf("archive: parse link %q: %w", s, err)})
			continue
		}
		links = append(links, u)
	}
	return links, failed
}
