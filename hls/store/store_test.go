package store

import (
	"context"
	"testing"
)

func testRoundtrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	exists, err := s.Head(ctx, "links/HLSS30_2.0/2025/10/2025-10-01.json")
	if err != nil {
		t.Fatalf("head before put: %v", err)
	}
	if exists {
		t.Fatalf("object should not exist yet")
	}

	if _, err := s.Get(ctx, "links/HLSS30_2.0/2025/10/2025-10-01.json"); err == nil {
		t.Fatalf("expected get of missing object to fail")
	}

	paths := []string{
		"links/HLSS30_2.0/2025/10/2025-10-01.json",
		"links/HLSS30_2.0/2025/10/2025-10-02.json",
		"links/HLSL30_2.0/2025/10/2025-10-01.json",
	}
	for i, p := range paths {
		if err := s.Put(ctx, p, []byte{byte(i), byte(i), byte(i)}); err != nil {
			t.Fatalf("put %s: %v", p, err)
		}
	}

	exists, err = s.Head(ctx, paths[0])
	if err != nil {
		t.Fatalf("head after put: %v", err)
	}
	if !exists {
		t.Fatalf("object should exist after put")
	}

	data, err := s.Get(ctx, paths[1])
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(data) != 3 || data[0] != 1 {
		t.Fatalf("unexpected contents %v", data)
	}

	// Overwrite.
	if err := s.Put(ctx, paths[1], []byte("replaced")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	data, err = s.Get(ctx, paths[1])
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if string(data) != "replaced" {
		t.Fatalf("unexpected contents %q", data)
	}

	objects, err := s.List(ctx, "links/HLSS30_2.0/2025/10/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(objects) != 2 {
		t.Fatalf("expected 2 objects under prefix, got %d: %v", len(objects), objects)
	}
	if objects[0].Path != paths[0] || objects[1].Path != paths[1] {
		t.Fatalf("unexpected list order: %v", objects)
	}
	if objects[1].Size != int64(len("replaced")) {
		t.Fatalf("unexpected size %d", objects[1].Size)
	}

	objects, err = s.List(ctx, "links/none/")
	if err != nil {
		t.Fatalf("list empty prefix: %v", err)
	}
	if len(objects) != 0 {
		t.Fatalf("expected no objects, got %v", objects)
	}
}

func TestMemStoreRoundtrip(t *testing.T) {
	testRoundtrip(t, NewMemStore())
}

func TestFSStoreRoundtrip(t *testing.T) {
	testRoundtrip(t, NewFSStore(t.TempDir()))
}

func TestFSStoreListMissingRoot(t *testing.T) {
	s := NewFSStore(t.TempDir() + "/does-not-exist")
	objects, err := s.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list on missing root: %v", err)
	}
	if len(objects) != 0 {
		t.Fatalf("expected no objects, got %v", objects)
	}
}

func TestFromURLDispatch(t *testing.T) {
	ctx := context.Background()

	s, err := FromURL(ctx, "mem://")
	if err != nil {
		t.Fatalf("mem: %v", err)
	}
	if _, ok := s.(*MemStore); !ok {
		t.Fatalf("expected *MemStore, got %T", s)
	}

	dir := t.TempDir()
	s, err = FromURL(ctx, "file://"+dir)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if _, ok := s.(*FSStore); !ok {
		t.Fatalf("expected *FSStore, got %T", s)
	}

	s, err = FromURL(ctx, dir)
	if err != nil {
		t.Fatalf("bare path: %v", err)
	}
	if _, ok := s.(*FSStore); !ok {
		t.Fatalf("expected *FSStore for bare path, got %T", s)
	}

	if _, err := FromURL(ctx, "ftp://host/dir"); err == nil {
		t.Fatalf("expected unsupported scheme error")
	}
}

func TestStoreErrorUnwraps(t *testing.T) {
	_, err := NewMemStore().Get(context.Background(), "missing.json")
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
