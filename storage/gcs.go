// Package storage abstracts the object store holding report photos.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// FileStore stores photo bytes under object names and serves access URLs.
// Implementations must tolerate Delete on missing objects.
type FileStore interface {
	Store(ctx context.Context, objectName string, data []byte, contentType string) error
	URL(objectName string) string
	Delete(ctx context.Context, objectName string) error
}

// GCSStore is the Google Cloud Storage implementation.
type GCSStore struct {
	bucket string
}

func NewGCSStore(bucket string) (*GCSStore, error) {
	if bucket == "" {
		return nil, errors.New("GCS_BUCKET is required")
	}
	return &GCSStore{bucket: bucket}, nil
}

// getGoogleClient initializes a Google Cloud Storage client. ADC is preferred
// (service account / GOOGLE_APPLICATION_CREDENTIALS); explicit JSON via
// GCS_CREDENTIALS_JSON works for local runs.
func getGoogleClient(ctx context.Context) (*gcs.Client, error) {
	if credJSON := os.Getenv("GCS_CREDENTIALS_JSON"); strings.TrimSpace(credJSON) != "" {
		client, err := gcs.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return gcs.NewClient(ctx)
}

func (s *GCSStore) Store(ctx context.Context, objectName string, data []byte, contentType string) error {
	client, err := getGoogleClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	wc := client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType
	wc.Metadata = map[string]string{
		"x-goog-acl": "public-read",
	}
	if _, err := wc.Write(data); err != nil {
		return fmt.Errorf("failed to upload object to Google Cloud Storage: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %v", err)
	}
	return nil
}

func (s *GCSStore) URL(objectName string) string {
	if base := strings.TrimSpace(os.Getenv("STORAGE_ACCESS_BASE_URL")); base != "" {
		return strings.TrimRight(base, "/") + "/" + objectName
	}
	return "https://storage.googleapis.com/" + s.bucket + "/" + objectName
}

func (s *GCSStore) Delete(ctx context.Context, objectName string) error {
	client, err := getGoogleClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	err = client.Bucket(s.bucket).Object(objectName).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}
