package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      bool

	putKey string
	putErr error

	getRC  io.ReadCloser
	getErr error

	removedKey string
	removeErr  error

	statErr error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}
func (f *fakeMinio) MakeBucket(_ context.Context, _ string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = true
	return f.makeBucketErr
}
func (f *fakeMinio) PutObject(_ context.Context, _ string, key string, _ io.Reader, _ int64, _ minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.putKey = key
	return minioLib.UploadInfo{}, f.putErr
}
func (f *fakeMinio) GetObject(_ context.Context, _ string, _ string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	return f.getRC, f.getErr
}
func (f *fakeMinio) RemoveObject(_ context.Context, _ string, key string, _ minioLib.RemoveObjectOptions) error {
	f.removedKey = key
	return f.removeErr
}
func (f *fakeMinio) StatObject(_ context.Context, _ string, _ string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return minioLib.ObjectInfo{}, f.statErr
}

func TestNewClientWithAPI_BucketExists(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: true}

	c, err := newClientWithAPI(ctx, api, "media")
	require.NoError(t, err)
	assert.Equal(t, "media", c.bucket)
	assert.False(t, api.madeBucket)
}

func TestNewClientWithAPI_CreatesMissingBucket(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: false}

	_, err := newClientWithAPI(ctx, api, "media")
	require.NoError(t, err)
	assert.True(t, api.madeBucket)
}

func TestNewClientWithAPI_BucketErrors(t *testing.T) {
	ctx := context.Background()

	_, err := newClientWithAPI(ctx, &fakeMinio{bucketExistsErr: errors.New("boom")}, "media")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure bucket exists")

	_, err = newClientWithAPI(ctx, &fakeMinio{makeBucketErr: errors.New("boom")}, "media")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure bucket exists")
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: true}
	c, err := newClientWithAPI(ctx, api, "media")
	require.NoError(t, err)

	require.NoError(t, c.Upload(ctx, "posts/p/0", bytes.NewReader([]byte{1, 2, 3})))
	assert.Equal(t, "posts/p/0", api.putKey)

	api.putErr = errors.New("boom")
	require.Error(t, c.Upload(ctx, "posts/p/1", bytes.NewReader(nil)))
}

func TestClient_Download(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: true, getRC: io.NopCloser(bytes.NewReader([]byte("img")))}
	c, err := newClientWithAPI(ctx, api, "media")
	require.NoError(t, err)

	rc, err := c.Download(ctx, "avatars/u")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: true}
	c, err := newClientWithAPI(ctx, api, "media")
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, "posts/p/0"))
	assert.Equal(t, "posts/p/0", api.removedKey)
}

func TestClient_Exists(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: true}
	c, err := newClientWithAPI(ctx, api, "media")
	require.NoError(t, err)

	exists, err := c.Exists(ctx, "avatars/u")
	require.NoError(t, err)
	assert.True(t, exists)

	api.statErr = minioLib.ErrorResponse{Code: "NoSuchKey"}
	exists, err = c.Exists(ctx, "avatars/missing")
	require.NoError(t, err)
	assert.False(t, exists)

	api.statErr = errors.New("boom")
	_, err = c.Exists(ctx, "avatars/u")
	require.Error(t, err)
}
