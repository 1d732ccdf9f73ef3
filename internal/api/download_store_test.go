package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDownloadStore_ExpiredTokenRemovesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "upload.xlsx")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	kept := filepath.Join(t.TempDir(), "report.xlsx")
	if err := os.WriteFile(kept, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := newDownloadStore()
	expired := s.put(download{filePath: path, removeAfter: true}, -time.Second)
	stale := s.put(download{filePath: kept}, -time.Second)

	if _, ok := s.take(expired); ok {
		t.Fatalf("expired token still valid")
	}
	if _, ok := s.take(stale); ok {
		t.Fatalf("expired token still valid")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("one-time file not removed on expiry: %v", err)
	}
	if _, err := os.Stat(kept); err != nil {
		t.Fatalf("regular file removed: %v", err)
	}
}

func TestDownloadStore_TakeIsOneShot(t *testing.T) {
	t.Parallel()

	s := newDownloadStore()
	token := s.put(download{filePath: "a.xlsx", filename: "a.xlsx"}, time.Minute)

	item, ok := s.take(token)
	if !ok || item.filename != "a.xlsx" {
		t.Fatalf("unexpected item: %+v %v", item, ok)
	}
	if _, ok := s.take(token); ok {
		t.Fatalf("token reused")
	}
}
