package storage

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"solar/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"gocloud.dev/blob/memblob"
)

func TestBucketStorage_PutAndDelete(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	store := NewBucketStorage(bucket, "https://cdn.example.com/")
	ctx := context.Background()

	obj, err := store.Put(ctx, "/invoices/INV-1.pdf", []byte("%PDF-1.3"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "invoices/INV-1.pdf", obj.Key)
	assert.Equal(t, "https://cdn.example.com/invoices/INV-1.pdf", obj.URL)

	attrs, err := bucket.Attributes(ctx, obj.Key)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", attrs.ContentType)

	require.NoError(t, store.Delete(ctx, obj.Key))
	exists, err := bucket.Exists(ctx, obj.Key)
	require.NoError(t, err)
	assert.False(t, exists)

	// deleting a missing object is not an error
	assert.NoError(t, store.Delete(ctx, obj.Key))
}

func TestBucketStorage_EmptyKey(t *testing.T) {
	store := NewBucketStorage(memblob.OpenBucket(nil), "")

	_, err := store.Put(context.Background(), "", []byte("x"), "text/plain")
	assert.Error(t, err)
}

func TestResolveBucket(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *config.Config
		wantBucket string
		wantBase   string
	}{
		{
			name: "local",
			cfg: func() *config.Config {
				c := &config.Config{}
				c.HTTP.PublicURL = "http://localhost:8080/"
				return c
			}(),
			wantBase: "http://localhost:8080/uploads",
		},
		{
			name:       "s3 from aws block",
			cfg:        &config.Config{AWS: &config.AWSConfig{S3Bucket: "media", Region: "ap-south-1"}},
			wantBucket: "s3://media?region=ap-south-1",
			wantBase:   "https://media.s3.ap-south-1.amazonaws.com",
		},
		{
			name:       "explicit bucket url wins",
			cfg:        &config.Config{Storage: config.StorageConfig{BucketURL: "mem://", PublicBaseURL: "https://cdn"}, AWS: &config.AWSConfig{S3Bucket: "media"}},
			wantBucket: "mem://",
			wantBase:   "https://cdn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, base := resolveBucket(tt.cfg)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantBucket == "", IsLocal(tt.cfg))
		})
	}
}

func TestNew_LocalDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	cfg := &config.Config{Storage: config.StorageConfig{LocalDir: dir}}

	lc := fxtest.NewLifecycle(t)
	store, err := New(Params{Lc: lc, Config: cfg, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)

	obj, err := store.Put(context.Background(), "media/logo.png", []byte("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/media/logo.png", obj.URL)

	data, err := os.ReadFile(filepath.Join(dir, "media", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	lc.RequireStart().RequireStop()
}
