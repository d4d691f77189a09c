// Package pixieshare provides the core file-sharing library: uploading
// blobs to a storage backend, recording file descriptors in a repository,
// and resolving stored files for raw, view and download access.
//
// The package is storage-agnostic. Concrete backends live in the storage/
// and repo/ subpackages; the HTTP surface lives in internal/api.
package pixieshare
