package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type S3Store struct {
	s3     s3iface.S3API
	bucket string
}

func NewS3Store(region, bucket string) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("session.NewSession -> %w", err)
	}

	return &S3Store{
		s3:     s3.New(sess),
		bucket: bucket,
	}, nil
}

func (c *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := c.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("c.s3.PutObjectWithContext -> %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", c.bucket, key), nil
}
