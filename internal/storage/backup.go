package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	cfg "github.com/fastopp/fastopp/internal/config"
)

// BackupSync bulk-copies files between the local upload root and the
// bucket. Both directions are best-effort and non-transactional: a
// single file's failure is recorded and the pass continues, and reruns
// overwrite whatever is already there.
type BackupSync struct {
	client S3Client
	bucket string
}

// NewBackupSync builds a sync helper against the configured bucket.
// Missing credentials fail fast with a ConfigError.
func NewBackupSync(ctx context.Context, c *cfg.Config) (*BackupSync, error) {
	s3cfg := S3Config{
		Region:    c.S3Region,
		Bucket:    c.S3Bucket,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
		Endpoint:  c.S3Endpoint,
	}

	err := s3cfg.validate()
	if err != nil {
		return nil, err
	}

	client, err := newS3Client(ctx, s3cfg)
	if err != nil {
		return nil, err
	}

	return &BackupSync{client: client, bucket: s3cfg.Bucket}, nil
}

// Backup walks every file under localRoot and uploads each one under a
// key derived from its path relative to the root. It returns the number
// of files uploaded plus one error per file that could not be copied.
func (b *BackupSync) Backup(ctx context.Context, localRoot string) (int, []error) {
	var count int
	var errs []error

	walkErr := filepath.WalkDir(localRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, fmt.Errorf("walk %s: %w", p, err))
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(localRoot, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("rel %s: %w", p, err))
			return nil
		}
		key := filepath.ToSlash(rel)

		err = b.uploadFile(ctx, p, key)
		if err != nil {
			errs = append(errs, err)
			return nil
		}

		slog.Debug("backed up file", "path", p, "key", key)
		count++
		return nil
	})
	if walkErr != nil {
		errs = append(errs, fmt.Errorf("walk %s: %w", localRoot, walkErr))
	}

	return count, errs
}

func (b *BackupSync) uploadFile(ctx context.Context, p, key string) error {
	f, err := os.Open(p)
	if err != nil {
		return &StorageError{Op: "backup", Key: key, Err: err}
	}
	defer f.Close()

	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType(key)),
	})
	if err != nil {
		return wrapS3Error("backup", key, err)
	}

	return nil
}

// Restore lists every object under prefix and downloads each one to the
// matching path under localRoot, creating parent directories as needed.
// Existing local files are overwritten byte-for-byte with the remote
// copy. Same best-effort accumulation as Backup.
func (b *BackupSync) Restore(ctx context.Context, prefix, localRoot string) (int, []error) {
	var count int
	var errs []error

	var token *string
	for {
		out, err := b.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(b.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			errs = append(errs, wrapS3Error("list", prefix, err))
			return count, errs
		}

		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") {
				continue // directory placeholder
			}

			err = b.downloadObject(ctx, key, localRoot)
			if err != nil {
				errs = append(errs, err)
				continue
			}

			slog.Debug("restored file", "key", key)
			count++
		}

		if out.NextContinuationToken == nil {
			break
		}
		token = out.NextContinuationToken
	}

	return count, errs
}

func (b *BackupSync) downloadObject(ctx context.Context, key, localRoot string) error {
	// Buckets accept ".." in keys; a key whose cleaned path is not
	// local would write outside the restore root.
	rel := filepath.FromSlash(path.Clean(key))
	if !filepath.IsLocal(rel) {
		return &StorageError{Op: "restore", Key: key, Err: errors.New("key escapes the restore root")}
	}

	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return wrapS3Error("restore", key, err)
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return &StorageError{Op: "restore", Key: key, Err: err}
	}

	dst := filepath.Join(localRoot, rel)
	err = os.MkdirAll(filepath.Dir(dst), 0755)
	if err != nil {
		return &StorageError{Op: "restore", Key: key, Err: err}
	}

	err = os.WriteFile(dst, content, 0644)
	if err != nil {
		return &StorageError{Op: "restore", Key: key, Err: err}
	}

	return nil
}
