package store

import "errors"

// ErrNotFound reports a missing object where existence was assumed.
var errNotFound = errors.New("object not found")

// IsNotFound reports whether err indicates a missing object in a MemStore or
// FSStore. S3 not-found conditions surface through Head instead.
func IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}
