package hls

import (
	"context"
	"net/url"

	"github.com/example/go-hls/hls/model"
	"github.com/example/go-hls/hls/search"
)

// GranuleIterator provides streaming access to paginated granule search
// results. Pages are requested lazily; catalog response order is preserved.
type GranuleIterator struct {
	client      *Client
	params      search.Params
	query       url.Values
	pageSize    int
	searchAfter string
	index       int
	batch       []model.Granule
	lastErr     error
	started     bool
	lastPage    bool
	exhausted   bool
}

func newGranuleIterator(client *Client, params search.Params, pageSize int) *GranuleIterator {
	return &GranuleIterator{
		client:   client,
		params:   params,
		pageSize: clampPageSize(pageSize),
	}
}

// Next fetches the next granule. It returns false when iteration is complete
// or an error occurred.
func (it *GranuleIterator) Next(ctx context.Context) bool {
	if it.exhausted || it.lastErr != nil {
		return false
	}

	if it.index < len(it.batch) {
		it.index++
		return true
	}

	if it.started && it.lastPage {
		it.exhausted = true
		return false
	}

	if err := it.loadNext(ctx); err != nil {
		it.lastErr = err
		return false
	}

	if len(it.batch) == 0 {
		it.exhausted = true
		return false
	}

	it.index = 1
	return true
}

// Granule returns the current granule. Call after Next returns true.
func (it *GranuleIterator) Granule() model.Granule {
	if it.index == 0 || it.index > len(it.batch) {
		return model.Granule{}
	}
	return it.batch[it.index-1]
}

// Err reports any error encountered during iteration.
func (it *GranuleIterator) Err() error {
	return it.lastErr
}

func (it *GranuleIterator) loadNext(ctx context.Context) error {
	if !it.started {
		values, err := it.params.Encode()
		if err != nil {
			return err
		}
		it.query = values
		it.started = true
	}

	page, err := it.client.searchPage(ctx, it.query, it.params.Format, it.pageSize, it.searchAfter)
	if err != nil {
		return err
	}

	it.batch = page.Entries
	it.index = 0
	it.searchAfter = page.SearchAfter
	// A response without a cursor is the final page.
	it.lastPage = page.SearchAfter == ""
	return nil
}
