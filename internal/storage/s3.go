package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Client is the slice of the S3 API this package uses. Tests swap in
// a mock to keep operations off the network.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Config holds configuration for S3-compatible storage
// Works with AWS S3, MinIO, DigitalOcean Spaces, Leapcell, etc.
type S3Config struct {
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	Endpoint   string // Optional: for S3-compatible services
	CDNBaseURL string // Optional: public CDN base that already includes the bucket
}

// validate reports every missing required field at once.
func (c S3Config) validate() error {
	var missing []string
	if c.AccessKey == "" {
		missing = append(missing, "S3_ACCESS_KEY")
	}
	if c.SecretKey == "" {
		missing = append(missing, "S3_SECRET_KEY")
	}
	if c.Bucket == "" {
		missing = append(missing, "S3_BUCKET")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

// S3Storage persists photos in an S3-compatible bucket, used in
// production. Objects are append-mostly: Delete keeps the remote bytes
// and only the owning record loses its reference.
type S3Storage struct {
	client S3Client
	cfg    S3Config
}

// NewS3Storage creates a remote store. Credentials are checked before
// any client is built so a misconfigured deployment fails fast instead
// of falling back to local storage.
func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	err := cfg.validate()
	if err != nil {
		return nil, err
	}

	client, err := newS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}

	slog.Info("initialized S3 storage", "bucket", cfg.Bucket, "region", cfg.Region, "endpoint", cfg.Endpoint)
	return &S3Storage{client: client, cfg: cfg}, nil
}

// newS3Client builds an S3 client with static credentials and an
// optional custom endpoint (path-style for MinIO and friends).
func newS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Endpoint != "" {
		return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // Required for MinIO and some S3-compatible services
		}), nil
	}
	return s3.NewFromConfig(awsCfg), nil
}

// Put uploads the photo under photos/<generated-name> and returns its
// public URL.
func (s *S3Storage) Put(ctx context.Context, content []byte, originalFilename string) (string, error) {
	// Re-checked here so a hand-constructed instance still fails before
	// any network call when credentials are absent.
	err := s.cfg.validate()
	if err != nil {
		return "", err
	}

	name := uniqueFilename(originalFilename)
	key := path.Join(photoPrefix, name)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType(name)),
	})
	if err != nil {
		return "", wrapS3Error("put", key, err)
	}

	return s.publicURL(key), nil
}

// Delete is a no-op for remote storage: ensure-absence
// cannot be guaranteed cheaply against a bucket, so remote objects are
// retained and only the owning record drops its URL.
func (s *S3Storage) Delete(_ context.Context, url string) error {
	slog.Info("remote photo retained, record reference removed", "url", url)
	return nil
}

// publicURL composes the object URL from the CDN base when configured,
// otherwise from the endpoint (or standard AWS host) plus bucket.
func (s *S3Storage) publicURL(key string) string {
	if s.cfg.CDNBaseURL != "" {
		// CDN base already includes the bucket, just append the key
		return strings.TrimSuffix(s.cfg.CDNBaseURL, "/") + "/" + key
	}
	if s.cfg.Endpoint != "" {
		return strings.TrimSuffix(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

// wrapS3Error converts a provider failure into a StorageError, keeping
// the provider's error code when the SDK surfaces one.
func wrapS3Error(op, key string, err error) error {
	serr := &StorageError{Op: op, Key: key, Err: err}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		serr.Code = apiErr.ErrorCode()
	}
	return serr
}
