package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSStore struct {
	client     *storage.Client
	bucketName string
}

func NewGCSStore(ctx context.Context, bucketName, credentialsFile string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient -> %w", err)
	}

	return &GCSStore{
		client:     client,
		bucketName: bucketName,
	}, nil
}

func (c *GCSStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	writer := c.client.Bucket(c.bucketName).Object(key).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("writer.Write -> %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("writer.Close -> %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, key), nil
}

func (c *GCSStore) Close() error {
	return c.client.Close()
}
