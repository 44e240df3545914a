package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/sangkips/shopbill-api/internal/config"
	"google.golang.org/api/option"
)

type gcsDisk struct {
	client *gcs.Client
	bucket string
}

// NewGCSDisk connects to Google Cloud Storage. Without a credentials file the
// client falls back to application default credentials.
func NewGCSDisk(ctx context.Context, cfg *config.StorageConfig) (Disk, error) {
	if cfg.GCSBucket == "" {
		return nil, fmt.Errorf("storage/gcs: GCS_BUCKET is not configured")
	}

	var opts []option.ClientOption
	if cfg.GCSCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCSCredentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage/gcs: new client: %w", err)
	}
	return &gcsDisk{client: client, bucket: cfg.GCSBucket}, nil
}

func (d *gcsDisk) Put(ctx context.Context, path string, content []byte, contentType string) error {
	w := d.client.Bucket(d.bucket).Object(path).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := w.Write(content); err != nil {
		_ = w.Close()
		return fmt.Errorf("storage/gcs: write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("storage/gcs: close %s: %w", path, err)
	}
	return nil
}

func (d *gcsDisk) Delete(ctx context.Context, path string) error {
	err := d.client.Bucket(d.bucket).Object(path).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("storage/gcs: delete %s: %w", path, err)
	}
	return nil
}

func (d *gcsDisk) URL(path string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", d.bucket, strings.TrimLeft(path, "/"))
}
