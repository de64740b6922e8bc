// Package objectstore puts transcripts into an S3-compatible bucket.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	apperrors "audio2text/internal/app/errors"
	"audio2text/internal/config"
)

// Store wraps a minio client. Buckets are created on first use.
type Store struct {
	client *minio.Client
	logger *zap.Logger

	mu      sync.Mutex
	ensured map[string]bool
}

// New connects to the endpoint in settings. Credentials are static V4 keys.
func New(settings config.StorageSettings, logger *zap.Logger) (*Store, error) {
	if settings.Endpoint == "" {
		return nil, apperrors.RequiredField("MINIO_ENDPOINT")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	endpoint := settings.Endpoint
	secure := settings.UseSSL
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		secure = secure || u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(settings.AccessKey, settings.SecretKey, ""),
		Secure: secure,
		Region: "us-east-1",
	})
	if err != nil {
		return nil, apperrors.KindWrap(apperrors.ErrStorage, err, "failed to create MinIO client")
	}

	return &Store{client: client, logger: logger, ensured: make(map[string]bool)}, nil
}

func (s *Store) ensureBucket(ctx context.Context, bucket string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ensured[bucket] {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return apperrors.KindWrap(apperrors.ErrStorage, err, "failed to check bucket %s", bucket)
	}
	if !exists {
		s.logger.Info("creating bucket", zap.String("bucket", bucket))
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return apperrors.KindWrap(apperrors.ErrStorage, err, "failed to create bucket %s", bucket)
		}
	}
	s.ensured[bucket] = true
	return nil
}

// Put uploads body as bucket/key.
func (s *Store) Put(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	if err := s.ensureBucket(ctx, bucket); err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"written-by": "a2t",
			"written-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return apperrors.KindWrap(apperrors.ErrStorage, err, "failed to upload s3://%s/%s", bucket, key)
	}

	s.logger.Debug("uploaded object",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.Int64("size", info.Size),
		zap.String("etag", info.ETag))
	return nil
}

// ParseURL splits s3://bucket/key. ok is false when raw is not an s3 URL.
func ParseURL(raw string) (bucket, key string, ok bool, err error) {
	if !strings.HasPrefix(strings.ToLower(raw), "s3://") {
		return "", "", false, nil
	}
	rest := raw[len("s3://"):]
	bucket, key, _ = strings.Cut(rest, "/")
	key = strings.TrimLeft(key, "/")
	if bucket == "" || key == "" {
		return "", "", true, apperrors.InvalidField("output", fmt.Sprintf("%q must look like s3://bucket/key", raw))
	}
	return bucket, key, true, nil
}
