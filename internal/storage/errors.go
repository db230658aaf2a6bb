package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a referenced object does not exist.
// Delete treats it as benign; reads treat it as a failure.
var ErrNotFound = errors.New("storage: object not found")

// ConfigError reports missing or invalid storage settings. It is never
// retryable; an operator has to fix the deployment configuration.
// Remote mode must fail with this instead of silently falling back to
// local storage.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("storage: missing configuration: %s", strings.Join(e.Missing, ", "))
}

// StorageError reports an I/O or provider failure for a single
// operation. Code carries the provider's error code when one is
// available. Whether to retry is the caller's decision.
type StorageError struct {
	Op   string
	Key  string
	Code string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("storage: %s %s: %s: %v", e.Op, e.Key, e.Code, e.Err)
	}
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
