package handler

import (
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"mediaapi/internal/apierr"
	"mediaapi/internal/http/middleware"
	"mediaapi/internal/model"
	"mediaapi/internal/service"
)

const (
	// fileField is the only multipart file field accepted by the upload endpoint.
	fileField = "file"

	maxFileSizeMB    = 4
	maxFileSizeBytes = maxFileSizeMB << 20
)

// decodeImageFile extracts and buffers the uploaded image from the multipart
// body, translating decoder failures into the typed validation errors callers
// branch on. It returns (nil, nil) when the request simply carries no file.
func decodeImageFile(c *fiber.Ctx) (*model.DecodedFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, apierr.BadRequest("FILE_PROCESSING_ERROR", "Error processing file").Wrap(err)
	}

	for field := range form.File {
		if field != fileField {
			return nil, apierr.BadRequest("LIMIT_UNEXPECTED_FILE", "Invalid file field name")
		}
	}

	files := form.File[fileField]
	if len(files) == 0 {
		return nil, nil
	}

	fh := files[0]
	if fh.Size > maxFileSizeBytes {
		return nil, apierr.BadRequest("LIMIT_FILE_SIZE", "File exceeds size limit (4MB)")
	}

	mimeType := fh.Header.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, apierr.BadRequest("INVALID_FILE_TYPE", "Only image files are allowed")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apierr.BadRequest("FILE_PROCESSING_ERROR", "Error processing file").Wrap(err)
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, apierr.BadRequest("FILE_PROCESSING_ERROR", "Error processing file").Wrap(err)
	}

	return &model.DecodedFile{Buffer: buf, MimeType: mimeType, FileName: fh.Filename}, nil
}

// parseMediaType reads the required mediaType form field. The field must be
// present and coercible to a non-negative integer; only 1 and 2 remap away
// from the profile category.
func parseMediaType(c *fiber.Ctx) (model.MediaCategory, error) {
	raw := strings.TrimSpace(c.FormValue("mediaType"))
	if raw == "" {
		return 0, apierr.BadRequest("INVALID_MEDIA_TYPE", "Missing or invalid media type")
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apierr.BadRequest("INVALID_MEDIA_TYPE", "Missing or invalid media type")
	}

	switch n {
	case 1:
		return model.CategoryPostImage, nil
	case 2:
		return model.CategoryPostGIF, nil
	default:
		return model.CategoryProfile, nil
	}
}

// UploadMedia handles the unified upload endpoint for multipart clients.
func UploadMedia(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
		if !strings.Contains(contentType, "multipart/form-data") {
			return apierr.BadRequest("INVALID_REQUEST_TYPE", "Invalid request type")
		}

		file, err := decodeImageFile(c)
		if err != nil {
			return err
		}

		category, err := parseMediaType(c)
		if err != nil {
			return err
		}

		if file == nil {
			return apierr.BadRequest("NO_FILE_UPLOADED", "No image file was provided")
		}

		var callerRole string
		if principal := middleware.PrincipalFromCtx(c); principal != nil {
			callerRole = principal.Role
		}

		result, err := svc.UploadMedia(c.UserContext(), *file, model.UploadIntent{
			Category:         category,
			CallerID:         c.FormValue("userId"),
			CallerRole:       callerRole,
			PreviousAssetURL: c.FormValue("oldImageUrl"),
		})
		if err != nil {
			return err
		}

		message := "Image uploaded successfully"
		if result.Method == model.MethodPresigned {
			message += " (using presigned URL)"
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": message,
			"fileUrl": result.URL,
		})
	}
}

// ListFiles handles the normalized directory listing endpoint.
func ListFiles(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, err := svc.ListAssets(c.UserContext())
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message":   "Files retrieved successfully",
			"fileCount": len(files),
			"files":     files,
		})
	}
}
