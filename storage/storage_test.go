package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestLocalStorageDownload(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "data"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "data", "rates.json"), []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	data, err := ReadAll(context.Background(), s, "data/rates.json")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("data = %q, want {}", data)
	}

	_, err = s.Download(context.Background(), "data/missing.json")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file error = %v, want ErrNotFound", err)
	}
}

func TestLocalStorageStaysInsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "content")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := NewLocalStorage(root)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	if _, err := s.Download(context.Background(), "../secret.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Download(../secret.txt) error = %v, want ErrNotFound", err)
	}
}

func TestNewLocalStorageRequiresDirectory(t *testing.T) {
	if _, err := NewLocalStorage(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestFSStorage(t *testing.T) {
	s := NewFSStorage(fstest.MapFS{
		"faq.yaml": {Data: []byte("entries: []")},
	})

	data, err := ReadAll(context.Background(), s, "/faq.yaml")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "entries: []" {
		t.Errorf("data = %q", data)
	}
	if _, err := s.Download(context.Background(), "other.yaml"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestEmbeddedStorageHasDataset(t *testing.T) {
	s := NewEmbeddedStorage()
	if _, err := ReadAll(context.Background(), s, "data/judge_grant_rates.json"); err != nil {
		t.Fatalf("bundled dataset missing: %v", err)
	}
}

func TestNewStorageUnknownType(t *testing.T) {
	if _, err := NewStorage(context.Background(), StorageConfig{Type: "ftp"}); err == nil {
		t.Error("expected error for unknown storage type")
	}
	if _, err := NewStorage(context.Background(), StorageConfig{Type: StorageTypeS3}); err == nil {
		t.Error("expected error for S3 without bucket")
	}
}
