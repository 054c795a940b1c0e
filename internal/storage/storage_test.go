package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findlocalfirewood/firewood-api/internal/config"
)

func TestLocalStorePut(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	path, err := store.Put(context.Background(), "checkins/2024/10/01/a.jpg", []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "checkins/2024/10/01/a.jpg", path)

	data, err := os.ReadFile(filepath.Join(dir, "checkins", "2024", "10", "01", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "../escape.jpg", []byte("x"), "image/jpeg")
	assert.Error(t, err)
}

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.input = in
	return &s3.PutObjectOutput{}, nil
}

func TestS3StorePut(t *testing.T) {
	fake := &fakeS3{}
	store := &S3Store{s3: fake, bucket: "firewood-photos"}

	url, err := store.Put(context.Background(), "stands/x.jpg", []byte("abc"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "https://firewood-photos.s3.amazonaws.com/stands/x.jpg", url)
	assert.Equal(t, "stands/x.jpg", aws.StringValue(fake.input.Key))
	assert.Equal(t, int64(3), aws.Int64Value(fake.input.ContentLength))
	assert.Equal(t, "image/jpeg", aws.StringValue(fake.input.ContentType))
}

func TestNewDefaultsToLocal(t *testing.T) {
	store, err := New(context.Background(), &config.StorageConfig{Backend: "local", LocalPath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	_, err = New(context.Background(), &config.StorageConfig{Backend: "ftp"})
	assert.Error(t, err)
}
