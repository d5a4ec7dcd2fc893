package storage

import (
	"context"
	"fmt"
	"time"
)

// Package storage contains the remote object-store capability set used by the
// upload service. Implementations must avoid using local disk; uploads are
// already fully buffered by the time they reach this layer.

// PutOptions define optional parameters for direct uploads.
// ContentType and Metadata are optional.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// UploadedObject identifies a stored object after a successful direct upload.
type UploadedObject struct {
	Key string
	URL string
}

// FileEntry is one raw listing entry as reported by the backend.
// UploadedAt is epoch milliseconds; CustomID is empty when the backend has none.
type FileEntry struct {
	Name       string
	Key        string
	Size       int64
	UploadedAt int64
	CustomID   string
}

// Backend is the remote object-store capability set.
type Backend interface {
	// Put uploads the bytes under key in a single call with metadata attached.
	Put(ctx context.Context, key string, data []byte, opt PutOptions) (UploadedObject, error)
	// PresignPut returns a time-limited URL authorizing a raw PUT of the object.
	PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error)
	// Transfer performs the raw PUT of body to an arbitrary (typically presigned) URL.
	Transfer(ctx context.Context, url string, body []byte, contentType string) error
	// ResolveURLs maps each existing key to its public URL; missing keys are
	// omitted from the result rather than reported as errors.
	ResolveURLs(ctx context.Context, keys []string) (map[string]string, error)
	// DeleteKeys removes the objects identified by keys.
	DeleteKeys(ctx context.Context, keys []string) error
	// List returns every stored object's raw entry in backend order.
	List(ctx context.Context) ([]FileEntry, error)
	// PublicURL deterministically synthesizes the public URL for a key.
	PublicURL(key string) string
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// TransferError reports a non-success response from a presigned transfer.
type TransferError struct {
	StatusCode int
	Status     string
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer rejected: %s", e.Status)
}
