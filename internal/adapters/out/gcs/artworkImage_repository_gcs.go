// internal/adapters/out/gcs/artworkImage_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
)

// ArtworkImageRepositoryGCS implements usecase.ImageStore backed by
// Google Cloud Storage. Objects are written under the configured bucket
// and addressed by the public storage URL.
type ArtworkImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
}

func NewArtworkImageRepositoryGCS(client *storage.Client, bucket string) *ArtworkImageRepositoryGCS {
	return &ArtworkImageRepositoryGCS{
		Client: client,
		Bucket: strings.TrimSpace(bucket),
	}
}

func (r *ArtworkImageRepositoryGCS) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	if r.Client == nil {
		return "", errors.New("gcs: storage client is nil")
	}
	b := strings.TrimSpace(r.Bucket)
	if b == "" {
		return "", errors.New("gcs: bucket is empty")
	}
	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	if obj == "" {
		return "", errors.New("gcs: object path is empty")
	}
	if len(data) == 0 {
		return "", errors.New("gcs: empty payload")
	}

	w := r.Client.Bucket(b).Object(obj).NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("gcs: write %s: %w", obj, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs: close %s: %w", obj, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b, obj), nil
}
