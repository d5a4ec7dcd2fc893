package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"mediaapi/internal/apierr"
	"mediaapi/internal/model"
	"mediaapi/internal/storage"
)

// UploadService defines the use cases for handling media assets.
type UploadService interface {
	// UploadMedia stores the file using the direct strategy, falling back to a
	// presigned transfer when the direct upload fails, and retires the
	// previously stored asset best-effort. The returned result reports which
	// strategy produced the URL.
	UploadMedia(ctx context.Context, file model.DecodedFile, intent model.UploadIntent) (*model.UploadResult, error)

	// ListAssets returns normalized records for every stored object,
	// in the order the backend reports them.
	ListAssets(ctx context.Context) ([]model.AssetRecord, error)
}

// uploadService is a concrete implementation of UploadService.
type uploadService struct {
	store         storage.Backend
	logger        log.Logger
	presignExpiry time.Duration
	protected     map[string]struct{}
}

// NewUploadService constructs a new UploadService.
// protectedURLs lists default asset URLs that must never be deleted.
func NewUploadService(store storage.Backend, logger log.Logger, protectedURLs []string, presignExpiry time.Duration) UploadService {
	protected := make(map[string]struct{}, len(protectedURLs))
	for _, u := range protectedURLs {
		protected[u] = struct{}{}
	}
	return &uploadService{
		store:         store,
		logger:        logger,
		presignExpiry: presignExpiry,
		protected:     protected,
	}
}

// uploadAttempt is the tagged outcome of a single strategy attempt. Exactly
// one fallback level exists: a failed direct attempt is replaced by one
// presigned attempt, never retried.
type uploadAttempt struct {
	method model.UploadMethod
	url    string
	err    error
}

func (s *uploadService) UploadMedia(ctx context.Context, file model.DecodedFile, intent model.UploadIntent) (*model.UploadResult, error) {
	nowMillis := time.Now().UnixMilli()

	ownerID := intent.CallerID
	if ownerID == "" {
		ownerID = fmt.Sprintf("user-%d", nowMillis)
	}

	// The key is built once and reused verbatim by both strategies, so a
	// fallback cannot land the object under a second name.
	key := fmt.Sprintf("%s/%s/%d-%s", intent.Category.Directory(), ownerID, nowMillis, file.FileName)

	meta := model.StorageMetadata{
		OwnerID:   ownerID,
		OwnerRole: intent.CallerRole,
		AssetKind: intent.Category.AssetKind(),
	}

	attempt := s.attemptDirect(ctx, key, file, meta)
	if attempt.err != nil {
		level.Warn(s.logger).Log("msg", "direct upload failed, trying presigned URL", "key", key, "err", attempt.err)
		attempt = s.attemptPresigned(ctx, key, file)
	}
	if attempt.err != nil {
		// Both strategies failed; the presigned failure is what the caller can act on.
		return nil, attempt.err
	}

	if intent.PreviousAssetURL != "" {
		s.retireAsset(ctx, intent.PreviousAssetURL)
	}

	level.Info(s.logger).Log("msg", "file uploaded", "role", intent.CallerRole, "method", attempt.method, "url", attempt.url)
	return &model.UploadResult{URL: attempt.url, Method: attempt.method}, nil
}

// attemptDirect hands the buffer to the backend's single-call upload.
// Its failures never surface to the caller; they only select the fallback.
func (s *uploadService) attemptDirect(ctx context.Context, key string, file model.DecodedFile, meta model.StorageMetadata) uploadAttempt {
	obj, err := s.store.Put(ctx, key, file.Buffer, storage.PutOptions{
		ContentType: file.MimeType,
		Metadata: map[string]string{
			"owner-id":   meta.OwnerID,
			"owner-role": meta.OwnerRole,
			"asset-kind": meta.AssetKind,
		},
	})
	if err != nil {
		return uploadAttempt{err: err}
	}
	if obj.URL == "" {
		return uploadAttempt{err: errors.New("direct upload returned no URL")}
	}
	return uploadAttempt{method: model.MethodDirect, url: obj.URL}
}

// attemptPresigned performs the three-step fallback: presign, raw PUT, resolve.
func (s *uploadService) attemptPresigned(ctx context.Context, key string, file model.DecodedFile) uploadAttempt {
	target, err := s.store.PresignPut(ctx, key, s.presignExpiry)
	if err != nil {
		return uploadAttempt{err: apierr.Internal("PRESIGNED_URL_FAILED", "Error generating presigned URL").Wrap(err)}
	}

	if err := s.store.Transfer(ctx, target, file.Buffer, file.MimeType); err != nil {
		apiErr := apierr.Internal("PRESIGNED_UPLOAD_FAILED", "Error uploading to presigned URL")
		var tErr *storage.TransferError
		if errors.As(err, &tErr) {
			apiErr.Details = []string{tErr.Status}
		}
		return uploadAttempt{err: apiErr.Wrap(err)}
	}

	// Resolve by the exact key sent at upload time. A miss here means the
	// backend derived a different key and must not be papered over with a
	// synthesized URL.
	urls, err := s.store.ResolveURLs(ctx, []string{key})
	if err != nil {
		return uploadAttempt{err: apierr.Internal("URL_RESOLUTION_FAILED", "Could not get file URL").Wrap(err)}
	}
	url, ok := urls[key]
	if !ok || url == "" {
		return uploadAttempt{err: apierr.Internal("URL_RESOLUTION_FAILED", "Could not get file URL")}
	}
	return uploadAttempt{method: model.MethodPresigned, url: url}
}

// retireAsset deletes a superseded asset best-effort. Failures are logged and
// swallowed; retirement never affects the upload's outcome.
func (s *uploadService) retireAsset(ctx context.Context, assetURL string) {
	if _, ok := s.protected[assetURL]; ok {
		level.Info(s.logger).Log("msg", "protected default asset, skipping deletion", "url", assetURL)
		return
	}

	parts := strings.Split(assetURL, "/")
	key := parts[len(parts)-1]
	if key == "" {
		level.Warn(s.logger).Log("msg", "could not extract key from asset URL", "url", assetURL)
		return
	}

	if err := s.store.DeleteKeys(ctx, []string{key}); err != nil {
		level.Error(s.logger).Log("msg", "failed to delete old asset", "key", key, "err", err)
		return
	}
	level.Info(s.logger).Log("msg", "old asset deleted", "key", key)
}

// assetTimeLayout matches the millisecond-precision ISO-8601 form of listings.
const assetTimeLayout = "2006-01-02T15:04:05.000Z"

func (s *uploadService) ListAssets(ctx context.Context) ([]model.AssetRecord, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		level.Error(s.logger).Log("msg", "failed to list files", "err", err)
		return nil, apierr.Internal("LIST_FILES_FAILED", "Error listing files").Wrap(err)
	}

	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}

	urls, err := s.store.ResolveURLs(ctx, keys)
	if err != nil {
		level.Error(s.logger).Log("msg", "failed to resolve file URLs", "err", err)
		return nil, apierr.Internal("LIST_FILES_FAILED", "Error listing files").Wrap(err)
	}

	// An absent or empty resolution result degrades to always-miss; every
	// record then carries the synthesized URL.
	records := make([]model.AssetRecord, len(entries))
	for i, e := range entries {
		url := urls[e.Key]
		if url == "" {
			url = s.store.PublicURL(e.Key)
		}
		records[i] = model.AssetRecord{
			Name:       e.Name,
			Key:        e.Key,
			SizeBytes:  e.Size,
			UploadedAt: time.UnixMilli(e.UploadedAt).UTC().Format(assetTimeLayout),
			CustomID:   e.CustomID,
			URL:        url,
		}
	}
	return records, nil
}
