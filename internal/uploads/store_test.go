package uploads

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	key := RandomKey("cakeshop")
	url, err := store.Upload(ctx, key, "image/png", strings.NewReader("fake-png-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.Contains(url, key) {
		t.Fatalf("url %q should reference key %q", url, key)
	}

	presigned, err := store.PresignGet(ctx, key, 15*time.Minute)
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	if presigned == "" {
		t.Fatalf("expected a presigned url")
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestRandomKeyIsPartitionedAndUnique(t *testing.T) {
	a := RandomKey("cakeshop")
	b := RandomKey("cakeshop")
	if a == b {
		t.Fatalf("keys should be unique: %q", a)
	}
	if !strings.HasPrefix(a, "cakeshop/") {
		t.Fatalf("key %q missing prefix", a)
	}
	if len(strings.Split(a, "/")) != 5 {
		t.Fatalf("key %q should be prefix/year/month/day/id", a)
	}
}

func TestIsImage(t *testing.T) {
	if !IsImage("image/jpeg") || !IsImage("image/png") {
		t.Fatalf("image types should be accepted")
	}
	if IsImage("application/pdf") || IsImage("text/html") || IsImage("") {
		t.Fatalf("non-image types should be rejected")
	}
}
