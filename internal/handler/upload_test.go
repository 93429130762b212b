package handler

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/TaiefArnob/InstaVista/internal/configs"
)

// recordingStorage is a test double capturing Delete calls.
type recordingStorage struct {
	mu      sync.Mutex
	deleted []string
}

func (s *recordingStorage) Upload(ctx context.Context, key string, mimeType string, body io.Reader) (string, error) {
	return "https://cdn.example.com/bucket/" + key, nil
}

func (s *recordingStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *recordingStorage) PublicURL(key string) string {
	return "https://cdn.example.com/bucket/" + key
}

func (s *recordingStorage) deletedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

func newStorageDeps(storage *recordingStorage) *AppDeps {
	return &AppDeps{
		StorageService: storage,
		Config: &configs.AppConfig{
			S3PublicBaseURL: "https://cdn.example.com/bucket",
		},
	}
}

func TestStoredImageKey(t *testing.T) {
	deps := newStorageDeps(&recordingStorage{})

	cases := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/bucket/avatars/abc.jpg", "avatars/abc.jpg"},
		{"https://cdn.example.com/bucket/posts/def.jpg", "posts/def.jpg"},
		{"https://elsewhere.example.com/avatars/abc.jpg", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := storedImageKey(deps, tc.url); got != tc.want {
			t.Errorf("storedImageKey(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestDeleteStoredImages(t *testing.T) {
	storage := &recordingStorage{}
	deps := newStorageDeps(storage)

	deleteStoredImages(deps,
		"https://cdn.example.com/bucket/posts/one.jpg",
		"https://elsewhere.example.com/posts/foreign.jpg",
		"https://cdn.example.com/bucket/posts/two.jpg",
	)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(storage.deletedKeys()) == 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	got := storage.deletedKeys()
	if len(got) != 2 || got[0] != "posts/one.jpg" || got[1] != "posts/two.jpg" {
		t.Errorf("deleted keys = %v, want the two bucket-local keys", got)
	}
}

func TestDeleteStoredImagesIgnoresForeignURLs(t *testing.T) {
	storage := &recordingStorage{}
	deps := newStorageDeps(storage)

	deleteStoredImages(deps, "https://elsewhere.example.com/posts/foreign.jpg")

	time.Sleep(100 * time.Millisecond)

	if got := storage.deletedKeys(); len(got) != 0 {
		t.Errorf("deleted keys = %v, want none", got)
	}
}
