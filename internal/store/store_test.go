package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteBackendRoundTrip(t *testing.T) {
	dir := t.TempDir()
	backend, err := OpenSQLite(filepath.Join(dir, "nested", "slotlog.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = backend.Close()
	})
	exerciseBackend(t, backend)
}

func TestFileBackendRoundTrip(t *testing.T) {
	backend, err := OpenFile(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("open file backend: %v", err)
	}
	exerciseBackend(t, backend)
}

func TestFileBackendRejectsPathKeys(t *testing.T) {
	backend, err := OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("open file backend: %v", err)
	}
	for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
		if err := backend.Put(context.Background(), key, []byte("{}")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestSQLiteBackendPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slotlog.db")
	ctx := context.Background()
	backend, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := backend.Put(ctx, HistoryKey, []byte(`{"2024-01-01":[]}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := backend.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = reopened.Close()
	})
	value, ok, err := reopened.Get(ctx, HistoryKey)
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%v err=%v", ok, err)
	}
	if string(value) != `{"2024-01-01":[]}` {
		t.Fatalf("unexpected value %q", value)
	}
}

func exerciseBackend(t *testing.T, backend Backend) {
	t.Helper()
	ctx := context.Background()
	if _, ok, err := backend.Get(ctx, TemplateKey); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}
	if err := backend.Put(ctx, TemplateKey, []byte(`[1]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := backend.Put(ctx, TemplateKey, []byte(`[2]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, ok, err := backend.Get(ctx, TemplateKey)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(value) != `[2]` {
		t.Fatalf("expected overwritten value, got %q", value)
	}
}
