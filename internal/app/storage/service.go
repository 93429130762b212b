package storage

import (
	"context"
	"io"
)

// ServiceConfig holds the connection settings for the object store.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicBaseURL   string
}

// StorageService is the public interface for the image object store.
type StorageService interface {
	// Upload writes the object under the given key and returns its
	// public URL.
	Upload(ctx context.Context, key string, mimeType string, body io.Reader) (string, error)

	// Delete removes the object with the given key.
	Delete(ctx context.Context, key string) error

	// PublicURL returns the public URL for an already-stored key.
	PublicURL(key string) string
}

// NewStorageService initializes the concrete S3-compatible implementation.
func NewStorageService(cfg ServiceConfig) (StorageService, error) {
	return newS3Client(cfg)
}
