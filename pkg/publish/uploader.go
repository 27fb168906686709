package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrNoBucket is returned when publishing is requested without a bucket
var ErrNoBucket = errors.New("no S3 bucket configured")

// Uploader publishes rendered images to an S3-compatible bucket
type Uploader struct {
	client s3iface.S3API
	bucket string
	prefix string
	logger *slog.Logger
}

// NewUploader wraps an existing S3 client
func NewUploader(client s3iface.S3API, bucket, prefix string, logger *slog.Logger) (*Uploader, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}
	return &Uploader{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: core.LoggerOrNop(logger),
	}, nil
}

// NewS3Uploader creates an uploader from the S3 settings. Static credentials are
// used when an access key is set; otherwise the SDK's default chain applies.
func NewS3Uploader(cfg config.S3Config, logger *slog.Logger) (*Uploader, error) {
	if !cfg.Enabled() {
		return nil, ErrNoBucket
	}

	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return NewUploader(s3.New(sess), cfg.Bucket, cfg.Prefix, logger)
}

// Key returns the object key for name under the configured prefix
func (u *Uploader) Key(name string) string {
	name = strings.TrimLeft(path.Base(name), "/")
	if u.prefix == "" {
		return name
	}
	return path.Join(u.prefix, name)
}

// Upload stores data under Key(name) and returns the full key
func (u *Uploader) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := u.Key(name)
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	u.logger.Info("uploaded render", "bucket", u.bucket, "key", key, "bytes", len(data))
	return key, nil
}
