package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FSStore implements Store on a local directory.
type FSStore struct {
	root string
}

// NewFSStore creates an FSStore rooted at dir. The directory is created on
// first Put.
func NewFSStore(dir string) *FSStore {
	return &FSStore{root: dir}
}

// Head implements Store.
func (s *FSStore) Head(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(s.localPath(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &Error{Op: "head", Path: path, Err: err}
	}
	return true, nil
}

// Get implements Store.
func (s *FSStore) Get(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(s.localPath(path))
	if err != nil {
		return nil, &Error{Op: "get", Path: path, Err: err}
	}
	return data, nil
}

// Put implements Store.
func (s *FSStore) Put(ctx context.Context, path string, data []byte) error {
	local := s.localPath(path)
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return &Error{Op: "put", Path: path, Err: err}
	}
	if err := os.WriteFile(local, data, 0o644); err != nil {
		return &Error{Op: "put", Path: path, Err: err}
	}
	return nil
}

// List implements Store.
func (s *FSStore) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		objects = append(objects, Object{Path: key, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, &Error{Op: "list", Path: prefix, Err: err}
	}
	return objects, nil
}

func (s *FSStore) localPath(path string) string {
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(path, "/")))
}
