// Package store provides the object storage abstraction the archive pipeline
// reads and writes through: four operations (head, get, put, list) over
// URL-addressed backends.
package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Object describes one stored object returned by List.
type Object struct {
	Path string
	Size int64
}

// Store is a minimal object storage interface. Paths are /-separated keys
// relative to the store root.
type Store interface {
	// Head reports whether an object exists at path.
	Head(ctx context.Context, path string) (bool, error)
	// Get returns the full contents of the object at path.
	Get(ctx context.Context, path string) ([]byte, error)
	// Put writes data to path, overwriting any existing object.
	Put(ctx context.Context, path string, data []byte) error
	// List returns every object under prefix.
	List(ctx context.Context, prefix string) ([]Object, error)
}

// Error wraps a failed storage operation. Failure codes from the backing
// store are propagated unchanged through Unwrap.
type Error struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying backend error.
func (e *Error) Unwrap() error {
	return e.Err
}

// FromURL constructs a Store for a destination URL. Supported schemes are
// s3://bucket/prefix, file:///dir, mem:// (in-memory, for tests), and bare
// filesystem paths.
func FromURL(ctx context.Context, raw string) (Store, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("store: parse url %q: %w", raw, err)
	}
	switch u.Scheme {
	case "s3":
		return NewS3Store(ctx, u.Host, strings.Trim(u.Path, "/"))
	case "file":
		return NewFSStore(u.Host + u.Path), nil
	case "mem":
		return NewMemStore(), nil
	case "":
		return NewFSStore(raw), nil
	}
	return nil, fmt.Errorf("store: unsupported scheme %q", u.Scheme)
}
