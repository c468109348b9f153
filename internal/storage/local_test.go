package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLocalStorageCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "uploads")

	if _, err := NewLocalStorage(root, "/uploads"); err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		t.Fatalf("stat root: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("%s is not a directory", root)
	}
}

func TestLocalStorageUpload(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root, "/uploads/")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	ctx := context.Background()
	if err := s.Upload(ctx, "1700000000000-42.txt", strings.NewReader("first"), 5, "text/plain"); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	// Same key again: silently replaced.
	if err := s.Upload(ctx, "1700000000000-42.txt", strings.NewReader("2nd"), 3, "text/plain"); err != nil {
		t.Fatalf("Upload (overwrite): %v", err)
	}

	got, err := os.ReadFile(filepath.Join(root, "1700000000000-42.txt"))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(got) != "2nd" {
		t.Errorf("stored content = %q, want %q", got, "2nd")
	}

	if url := s.PublicURL("1700000000000-42.txt"); url != "/uploads/1700000000000-42.txt" {
		t.Errorf("PublicURL = %q", url)
	}
}

func TestLocalStorageRecreatesRemovedRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStorage(root, "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	if err := os.RemoveAll(root); err != nil {
		t.Fatal(err)
	}

	if err := s.Upload(context.Background(), "a.bin", strings.NewReader("x"), 1, ""); err != nil {
		t.Fatalf("Upload after root removal: %v", err)
	}
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	for _, key := range []string{"", ".", "..", "../escape.txt", "a/b.txt", `a\b.txt`} {
		t.Run(key, func(t *testing.T) {
			err := s.Upload(context.Background(), key, strings.NewReader("x"), 1, "")
			if !errors.Is(err, ErrInvalidKey) {
				t.Errorf("Upload(%q) = %v, want ErrInvalidKey", key, err)
			}
		})
	}
}

func TestLocalStorageDelete(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root, "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	ctx := context.Background()

	if err := s.Upload(ctx, "gone.txt", strings.NewReader("x"), 1, ""); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "gone.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "gone.txt")); !os.IsNotExist(err) {
		t.Errorf("file still present after Delete: %v", err)
	}
	if err := s.Delete(ctx, "gone.txt"); err != nil {
		t.Errorf("Delete of missing key = %v, want nil", err)
	}
}

func TestLocalStorageCancelledContext(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root, "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Upload(ctx, "never.txt", strings.NewReader("x"), 1, ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("Upload = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(filepath.Join(root, "never.txt")); !os.IsNotExist(err) {
		t.Errorf("file written despite cancelled context")
	}
}

func TestPublicReadPolicy(t *testing.T) {
	p := publicReadPolicy("uploads")
	if !strings.Contains(p, `"arn:aws:s3:::uploads/*"`) || !strings.Contains(p, `"s3:GetObject"`) {
		t.Errorf("unexpected policy: %s", p)
	}
}
