package storage

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// localURLPrefix is where the HTTP layer serves the upload root.
const localURLPrefix = "/static/uploads"

// LocalStorage persists photos on the local filesystem, used in
// development. URLs are path-based and served by the static mount.
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root}
}

// Put writes the photo bytes under <root>/photos/<generated-name>,
// creating parent directories as needed.
func (l *LocalStorage) Put(_ context.Context, content []byte, originalFilename string) (string, error) {
	name := uniqueFilename(originalFilename)

	dir := filepath.Join(l.root, photoPrefix)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", &StorageError{Op: "mkdir", Key: dir, Err: err}
	}

	dst := filepath.Join(dir, name)
	err = os.WriteFile(dst, content, 0644)
	if err != nil {
		return "", &StorageError{Op: "write", Key: dst, Err: err}
	}

	return path.Join(localURLPrefix, photoPrefix, name), nil
}

// Delete removes the file behind a URL previously returned by Put. A
// missing file counts as success since the goal is ensuring absence.
func (l *LocalStorage) Delete(_ context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, localURLPrefix+"/")
	if !ok {
		return &StorageError{Op: "delete", Key: url, Err: ErrNotFound}
	}

	// The URL comes from a database row, not necessarily from Put.
	rel = filepath.FromSlash(path.Clean(rel))
	if !filepath.IsLocal(rel) {
		return &StorageError{Op: "delete", Key: url, Err: errors.New("url escapes the upload root")}
	}

	dst := filepath.Join(l.root, rel)
	err := os.Remove(dst)
	if err != nil && !os.IsNotExist(err) {
		return &StorageError{Op: "delete", Key: dst, Err: err}
	}

	return nil
}
