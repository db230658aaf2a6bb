package storage

import (
	"context"
	"mime"
	"path/filepath"

	"github.com/google/uuid"

	cfg "github.com/fastopp/fastopp/internal/config"
)

// photoPrefix namespaces uploaded photos within the upload root and the
// bucket (local: <upload-root>/photos/<name>, remote: photos/<name>).
const photoPrefix = "photos"

// Storage is the capability contract for photo persistence. The backend
// is chosen once at construction time and stays fixed for the life of
// the instance; callers never re-check the driver per call.
type Storage interface {
	// Put persists the photo bytes under a collision-resistant
	// generated filename and returns the public URL.
	Put(ctx context.Context, content []byte, originalFilename string) (string, error)

	// Delete ensures the photo behind a previously returned URL is
	// absent. An already-missing photo is not an error.
	Delete(ctx context.Context, url string) error
}

// New selects the storage backend from config. "local" writes under the
// upload directory, "s3" talks to an S3-compatible bucket. An unknown
// driver or missing remote credentials is a ConfigError; there is no
// silent fallback to local.
func New(c *cfg.Config) (Storage, error) {
	switch c.StorageDriver {
	case "local":
		return NewLocalStorage(c.UploadDir), nil
	case "s3":
		return NewS3Storage(context.Background(), S3Config{
			Region:     c.S3Region,
			Bucket:     c.S3Bucket,
			AccessKey:  c.S3AccessKey,
			SecretKey:  c.S3SecretKey,
			Endpoint:   c.S3Endpoint,
			CDNBaseURL: c.S3CDNBaseURL,
		})
	default:
		return nil, &ConfigError{Missing: []string{"STORAGE_DRIVER (local or s3), got " + c.StorageDriver}}
	}
}

// uniqueFilename generates a collision-resistant filename, keeping the
// original extension and defaulting to .jpg when there is none.
func uniqueFilename(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	if ext == "" {
		ext = ".jpg"
	}
	return uuid.New().String() + ext
}

// contentType maps a filename to a MIME type, defaulting to image/jpeg.
func contentType(filename string) string {
	ct := mime.TypeByExtension(filepath.Ext(filename))
	if ct == "" {
		ct = "image/jpeg"
	}
	return ct
}
