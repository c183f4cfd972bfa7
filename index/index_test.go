package index

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()

	idx, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })

	return idx
}

func TestAddAndHas(t *testing.T) {
	idx := openTestIndex(t)
	ctx := context.Background()

	url := "https://x.com/golang/status/123"

	if idx.Has(ctx, url) {
		t.Error("fresh index should not contain the URL")
	}

	idx.Add(ctx, url, "page-1", "tweet")

	if !idx.Has(ctx, url) {
		t.Error("URL should be present after Add")
	}
	if idx.Has(ctx, "https://example.com") {
		t.Error("unrelated URL should not be present")
	}
}

func TestAddIsIdempotent(t *testing.T) {
	idx := openTestIndex(t)
	ctx := context.Background()

	url := "https://example.com/article"

	idx.Add(ctx, url, "page-1", "website")
	idx.Add(ctx, url, "page-2", "website")

	if !idx.Has(ctx, url) {
		t.Error("URL should survive a repeated Add")
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	idx, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open index: %v", err)
	}
	idx.Add(ctx, "https://example.com", "page-1", "website")
	idx.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("failed to reopen index: %v", err)
	}
	defer reopened.Close()

	if !reopened.Has(ctx, "https://example.com") {
		t.Error("URL should persist across reopen")
	}
}
