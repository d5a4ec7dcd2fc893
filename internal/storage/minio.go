package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"mediaapi/internal/config"
)

// customIDMetaKey is how MinIO reports the custom-id user metadata in listings.
const customIDMetaKey = "X-Amz-Meta-Custom-Id"

// minioBackend implements the Backend interface using an S3-compatible store
// (MinIO, AWS S3, etc.). It is safe for concurrent use by multiple goroutines.
type minioBackend struct {
	client     *minio.Client
	httpClient *http.Client
	bucket     string
	publicBase string
}

// NewMinIO creates a new S3-compatible storage backend.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (Backend, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	publicBase := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicBase == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicBase = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	mb := &minioBackend{
		client: cli,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		bucket:     cfg.Bucket,
		publicBase: publicBase,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return mb, nil
}

// Put uploads a fully buffered object in a single call with metadata attached.
func (m *minioBackend) Put(ctx context.Context, key string, data []byte, opt PutOptions) (UploadedObject, error) {
	putOpts := minio.PutObjectOptions{
		ContentType:  opt.ContentType,
		UserMetadata: opt.Metadata,
	}
	if _, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), putOpts); err != nil {
		return UploadedObject{}, err
	}
	return UploadedObject{Key: key, URL: m.PublicURL(key)}, nil
}

// PresignPut generates a pre-signed URL for PUT with the specified expiry.
func (m *minioBackend) PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedPutObject(ctx, m.bucket, key, expiry)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Transfer PUTs body to the given URL with the declared content type.
// A non-2xx response is reported as a *TransferError carrying the status.
func (m *minioBackend) Transfer(ctx context.Context, url string, body []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build transfer request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(body))

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("transfer: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &TransferError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return nil
}

// ResolveURLs stats each key and maps the ones that exist to their public URL.
// Missing keys are simply absent from the result.
func (m *minioBackend) ResolveURLs(ctx context.Context, keys []string) (map[string]string, error) {
	urls := make(map[string]string, len(keys))
	for _, key := range keys {
		if _, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{}); err != nil {
			errResp := minio.ToErrorResponse(err)
			if errResp.Code == "NoSuchKey" || errResp.StatusCode == http.StatusNotFound {
				continue
			}
			return nil, fmt.Errorf("stat object %q: %w", key, err)
		}
		urls[key] = m.PublicURL(key)
	}
	return urls, nil
}

// DeleteKeys removes the given objects. The first failure aborts the batch.
func (m *minioBackend) DeleteKeys(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove object %q: %w", key, err)
		}
	}
	return nil
}

// List returns raw entries for every object in the bucket, in backend order.
func (m *minioBackend) List(ctx context.Context) ([]FileEntry, error) {
	entries := []FileEntry{}
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Recursive:    true,
		WithMetadata: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		entries = append(entries, FileEntry{
			Name:       path.Base(obj.Key),
			Key:        obj.Key,
			Size:       obj.Size,
			UploadedAt: obj.LastModified.UnixMilli(),
			CustomID:   obj.UserMetadata[customIDMetaKey],
		})
	}
	return entries, nil
}

// PublicURL synthesizes the browser-accessible URL for a key.
func (m *minioBackend) PublicURL(key string) string {
	return m.publicBase + "/f/" + key
}

// Ping checks bucket reachability.
func (m *minioBackend) Ping(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", m.bucket)
	}
	return nil
}
