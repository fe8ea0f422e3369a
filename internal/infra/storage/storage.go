// Package storage writes uploaded media and generated documents to a
// gocloud blob bucket: S3 when a bucket is configured, a local directory
// otherwise.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"solar/config"
	"solar/internal/domain/lifecycle"
	"solar/internal/domain/service"
	"solar/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

// LocalURLPrefix is where the HTTP server exposes the local upload directory.
const LocalURLPrefix = "/uploads"

// Params defines the dependencies of the object storage.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

type bucketStorage struct {
	bucket  *blob.Bucket
	baseURL string
}

// New opens the configured bucket. Precedence: storage.bucketUrl, then
// aws.s3Bucket, then the local directory storage.localDir.
func New(params Params) (service.ObjectStorage, error) {
	cfg := params.Config
	bucketURL, baseURL := resolveBucket(cfg)

	var (
		bucket *blob.Bucket
		err    error
	)

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	if bucketURL != "" {
		bucket, err = blob.OpenBucket(ctx, bucketURL)
	} else {
		bucket, err = fileblob.OpenBucket(cfg.Storage.LocalDir, &fileblob.Options{CreateDir: true, NoTempDir: true})
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to open storage bucket")
	}

	params.Logger.Info("Object storage ready",
		slog.String("bucket", redact(bucketURL, cfg.Storage.LocalDir)),
		slog.String("base_url", baseURL),
	)

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return NewBucketStorage(bucket, baseURL), nil
}

// NewBucketStorage wraps an open bucket; object URLs are baseURL + "/" + key.
func NewBucketStorage(bucket *blob.Bucket, baseURL string) service.ObjectStorage {
	return &bucketStorage{
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// IsLocal reports whether uploads land in the local directory served by the API.
func IsLocal(cfg *config.Config) bool {
	bucketURL, _ := resolveBucket(cfg)

	return bucketURL == ""
}

func resolveBucket(cfg *config.Config) (bucketURL, baseURL string) {
	baseURL = cfg.Storage.PublicBaseURL

	switch {
	case cfg.Storage.BucketURL != "":
		bucketURL = cfg.Storage.BucketURL
	case cfg.AWS != nil && cfg.AWS.S3Bucket != "":
		query := url.Values{}
		if cfg.AWS.Region != "" {
			query.Set("region", cfg.AWS.Region)
		}
		bucketURL = "s3://" + cfg.AWS.S3Bucket
		if encoded := query.Encode(); encoded != "" {
			bucketURL += "?" + encoded
		}
		if baseURL == "" {
			baseURL = s3PublicURL(cfg.AWS.S3Bucket, cfg.AWS.Region)
		}
	default:
		if baseURL == "" {
			baseURL = strings.TrimRight(cfg.HTTP.PublicURL, "/") + LocalURLPrefix
		}
	}

	return bucketURL, baseURL
}

func s3PublicURL(bucket, region string) string {
	if region == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
}

func redact(bucketURL, localDir string) string {
	if bucketURL == "" {
		return "file://" + localDir
	}
	if u, err := url.Parse(bucketURL); err == nil {
		return u.Scheme + "://" + u.Host
	}

	return bucketURL
}

func (s *bucketStorage) Put(ctx context.Context, key string, data []byte, contentType string) (*service.StoredObject, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return nil, errors.New("storage key is empty")
	}

	if err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return nil, errors.Wrapf(err, "failed to write object %s", key)
	}

	return &service.StoredObject{
		Key: key,
		URL: s.baseURL + "/" + key,
	}, nil
}

func (s *bucketStorage) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, strings.TrimLeft(key, "/"))
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "failed to delete object %s", key)
	}

	return nil
}
