// Package storage writes photo objects to local disk, S3 or GCS and
// returns the path or URL they can be fetched from.
package storage

import (
	"context"
	"fmt"

	"github.com/findlocalfirewood/firewood-api/internal/config"
)

type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// New builds the store selected by conf.Backend.
func New(ctx context.Context, conf *config.StorageConfig) (ObjectStore, error) {
	switch conf.Backend {
	case "s3":
		return NewS3Store(conf.S3Region, conf.S3Bucket)
	case "gcs":
		return NewGCSStore(ctx, conf.GCSBucket, conf.GCSCredentialsFile)
	case "local", "":
		return NewLocalStore(conf.LocalPath)
	}

	return nil, fmt.Errorf("unknown storage backend %q", conf.Backend)
}
