package archive

import (
	"fmt"
	"time"

	"github.com/example/go-hls/hls"
)

// Storage layout:
//
//	links/{collection_id}/{year}/{month}/{year}-{month}-{day}.json
//	{version}/{collection_id}/year={year}/month={month}/{collection_id}-{year}-{month}.parquet
//
// Months and days are zero-padded so listings sort chronologically.

// LinkPrefix returns the storage prefix holding a month's daily link caches.
func LinkPrefix(c hls.Collection, year, month int) string {
	return fmt.Sprintf("links/%s/%d/%02d", c.ID(), year, month)
}

// LinkPath returns the daily link cache path for a calendar day. The key
// {collection, year, month, day} uniquely determines the path.
func LinkPath(c hls.Collection, date time.Time) string {
	return fmt.Sprintf("%s/%d-%02d-%02d.json",
		LinkPrefix(c, date.Year(), int(date.Month())), date.Year(), int(date.Month()), date.Day())
}

// ArchivePath returns the consolidated parquet path for a month, namespaced
// by version tag.
func ArchivePath(version string, c hls.Collection, year, month int) string {
	return fmt.Sprintf("%s/%s/year=%d/month=%02d/%s-%d-%02d.parquet",
		version, c.ID(), year, month, c.ID(), year, month)
}
