package storage

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestMemoryStore_UploadAndRemove(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	url, err := store.Upload(ctx, "previews/one.png", strings.NewReader("png-bytes"), 9, "image/png")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "memory://previews/one.png" {
		t.Errorf("Upload() url = %q", url)
	}

	data, ok := store.Get("previews/one.png")
	if !ok || !bytes.Equal(data, []byte("png-bytes")) {
		t.Errorf("Get() = %q, %v", data, ok)
	}

	if err := store.Remove(ctx, "previews/one.png"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, ok := store.Get("previews/one.png"); ok {
		t.Error("object still present after Remove()")
	}

	// Removing a missing key is a no-op.
	if err := store.Remove(ctx, "previews/never.png"); err != nil {
		t.Errorf("Remove(missing) error = %v", err)
	}
}

func TestMemoryStore_List(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	for _, key := range []string{"images/b.png", "images/a.png", "other/c.png"} {
		if _, err := store.Upload(ctx, key, strings.NewReader("x"), 1, "image/png"); err != nil {
			t.Fatalf("Upload(%s) error = %v", key, err)
		}
	}

	keys, err := store.List(ctx, "images/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"images/a.png", "images/b.png"}) {
		t.Errorf("List() = %v, want sorted images/ keys", keys)
	}

	keys, err = store.List(ctx, "missing/")
	if err != nil {
		t.Fatalf("List(missing) error = %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("List(missing) = %v, want empty", keys)
	}
}
