package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"contacts-api/config"
)

type MinIO struct {
	logger *zap.Logger
	client *minio.Client
	bucket string
}

// NewMinIO connects and creates the bucket when it does not exist yet.
func NewMinIO(ctx context.Context, logger *zap.Logger, cfg config.MinIO) (*MinIO, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("minio bucket created", zap.String("bucket", cfg.Bucket))
	}

	return &MinIO{
		logger: logger,
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

func (m *MinIO) Upload(
	ctx context.Context,
	key string,
	body io.Reader,
	size int64,
	contentType string,
) (string, error) {
	if _, err := m.client.PutObject(
		ctx,
		m.bucket,
		key,
		body,
		size,
		minio.PutObjectOptions{ContentType: contentType},
	); err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	u := *m.client.EndpointURL()
	u.Path = "/" + m.bucket + "/" + key

	return u.String(), nil
}
