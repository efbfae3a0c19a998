package hls

import (
	"fmt"
	"strings"
	"time"
)

// UpstreamError reports a non-success response from the CMR catalog. The
// client does not retry these; retry and backoff policy belongs to the
// caller.
type UpstreamError struct {
	StatusCode int
	Status     string
	Body       string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("hls: catalog returned %s", e.Status)
	}
	return fmt.Sprintf("hls: catalog returned %s: %s", e.Status, e.Body)
}

// EmptyResultError reports a day that yielded zero STAC links where at least
// one was expected.
type EmptyResultError struct {
	Collection Collection
	Day        time.Time
}

// Error implements the error interface.
func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("hls: no STAC links found for %s on %s",
		e.Collection, e.Day.Format("2006-01-02"))
}

// IncompleteDataError reports a monthly completeness check failure: the set
// of daily link caches found in storage does not equal the expected set.
type IncompleteDataError struct {
	Expected []string
	Found    []string
}

// Error implements the error interface, enumerating both sets for diagnosis.
func (e *IncompleteDataError) Error() string {
	return fmt.Sprintf("hls: incomplete month: expected these links:\n%s\nfound these links:\n%s",
		strings.Join(e.Expected, "\n"), strings.Join(e.Found, "\n"))
}
