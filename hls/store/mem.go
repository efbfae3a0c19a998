package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemStore is an in-memory Store used in tests.
type MemStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{objects: make(map[string][]byte)}
}

// Head implements Store.
func (s *MemStore) Head(ctx context.Context, path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[path]
	return ok, nil
}

// Get implements Store.
func (s *MemStore) Get(ctx context.Context, path string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[path]
	if !ok {
		return nil, &Error{Op: "get", Path: path, Err: errNotFound}
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// Put implements Store.
func (s *MemStore) Put(ctx context.Context, path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.objects[path] = cp
	return nil
}

// List implements Store.
func (s *MemStore) List(ctx context.Context, prefix string) ([]Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var objects []Object
	for path, data := range s.objects {
		if strings.HasPrefix(path, prefix) {
			objects = append(objects, Object{Path: path, Size: int64(len(data))})
		}
	}
	sort.Slice(objects, func(a, b int) bool { return objects[a].Path < objects[b].Path })
	return objects, nil
}
