package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"contacts-api/config"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3 struct {
	logger  *zap.Logger
	api     putObjectAPI
	region  string
	bucket  string
	baseURL string
}

func NewS3(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.S3,
) (*S3, error) {
	if cfg.BucketUploads == "" {
		return nil, fmt.Errorf("s3: bucket is not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &S3{
		logger:  logger,
		api:     s3.NewFromConfig(awsCfg),
		region:  cfg.Region,
		bucket:  cfg.BucketUploads,
		baseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

func (c *S3) Upload(
	ctx context.Context,
	key string,
	body io.Reader,
	size int64,
	contentType string,
) (string, error) {
	if _, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=86400"),
	}); err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}

	c.logger.Debug("avatar stored", zap.String("bucket", c.bucket), zap.String("key", key))

	return c.GetPublicURL(key), nil
}

func (c *S3) GetPublicURL(key string) string {
	if c.baseURL != "" {
		return c.baseURL + "/" + escapeKey(key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, escapeKey(key))
}

func (c *S3) GetBucket() string { return c.bucket }

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
