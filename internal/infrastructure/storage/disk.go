// Package storage stores rendered bill documents and hands back their URLs.
//
// Three drivers are available:
//   - "local" local filesystem served under STORAGE_PUBLIC_URL
//   - "s3"    S3-compatible object storage (AWS S3, MinIO, R2)
//   - "gcs"   Google Cloud Storage
package storage

import (
	"context"
	"fmt"

	"github.com/sangkips/shopbill-api/internal/config"
)

// Disk is the driver interface every backend implements.
type Disk interface {
	// Put writes content to path, replacing any existing object.
	Put(ctx context.Context, path string, content []byte, contentType string) error
	// Delete removes the object. Missing objects are not an error.
	Delete(ctx context.Context, path string) error
	// URL returns the public retrieval URL for path.
	URL(path string) string
}

// New builds the disk selected by cfg.Driver.
func New(ctx context.Context, cfg *config.StorageConfig) (Disk, error) {
	switch cfg.Driver {
	case "local", "":
		return NewLocalDisk(cfg.Path, cfg.PublicURL)
	case "s3":
		return NewS3Disk(ctx, cfg)
	case "gcs":
		return NewGCSDisk(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q (supported: local, s3, gcs)", cfg.Driver)
	}
}
