package pixieshare

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrFileNotFound indicates no descriptor exists for the requested id
	ErrFileNotFound = errors.New("file not found")

	// ErrBlobMissing indicates the descriptor exists but its blob is gone from disk
	ErrBlobMissing = errors.New("file content no longer available")

	// ErrFileTooLarge indicates an upload exceeded the per-file size limit
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

	// ErrNoFiles indicates an upload request carried no file parts
	ErrNoFiles = errors.New("no files in upload")

	// ErrPersistFailed indicates the metadata document could not be written
	ErrPersistFailed = errors.New("failed to persist metadata")
)

// StorageError represents an error related to blob storage operations
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
