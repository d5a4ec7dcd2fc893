package model

// Package model contains domain models/data structures.
// These are pure domain types with no transport or storage dependencies
// so they can be shared across layers (HTTP, service, storage) freely.

// MediaCategory discriminates what kind of asset is being uploaded.
// The zero value is the profile image, matching the request default.
type MediaCategory int

const (
	CategoryProfile MediaCategory = iota
	CategoryPostImage
	CategoryPostGIF
)

// Directory returns the storage directory prefix for the category.
func (c MediaCategory) Directory() string {
	switch c {
	case CategoryPostImage:
		return "posts"
	case CategoryPostGIF:
		return "gifs"
	default:
		return "profiles"
	}
}

// AssetKind returns the metadata tag recorded alongside uploads of this category.
func (c MediaCategory) AssetKind() string {
	switch c {
	case CategoryPostImage:
		return "post-image"
	case CategoryPostGIF:
		return "post-gif"
	default:
		return "profile-image"
	}
}

// DecodedFile is a fully buffered upload produced by the multipart decoder.
// It is immutable once created and discarded after the orchestrator consumes it.
type DecodedFile struct {
	Buffer   []byte
	MimeType string
	FileName string
}

// UploadIntent carries the caller-supplied context for an upload.
type UploadIntent struct {
	Category         MediaCategory
	CallerID         string // optional; a synthetic owner id is derived when empty
	CallerRole       string
	PreviousAssetURL string // optional; triggers best-effort retirement when set
}

// StorageMetadata is attached to every upload attempt.
type StorageMetadata struct {
	OwnerID   string
	OwnerRole string
	AssetKind string
}

// UploadMethod reports which strategy produced the stored asset's URL.
type UploadMethod string

const (
	MethodDirect    UploadMethod = "direct"
	MethodPresigned UploadMethod = "presignedUrl"
)

// UploadResult is the terminal output of a successful upload.
// Both fields are always populated; a failed upload yields no result at all.
type UploadResult struct {
	URL    string       `json:"fileUrl"`
	Method UploadMethod `json:"method"`
}

// AssetRecord is one normalized entry of the storage listing.
type AssetRecord struct {
	Name       string `json:"name"`
	Key        string `json:"key"`
	SizeBytes  int64  `json:"size"`
	UploadedAt string `json:"uploadedAt"` // ISO-8601
	CustomID   string `json:"customId,omitempty"`
	URL        string `json:"url"`
}

// Principal is the caller identity derived from a verified credential.
// It lives on the request context only and is never persisted.
type Principal struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	ID    string `json:"id"`
}
