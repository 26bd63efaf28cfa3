package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()
)

// Init registers custom validation tags on Gin's binding engine.
func Init() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("failed to access validator engine")
	}

	if err := v.RegisterValidation("slug", validateSlug); err != nil {
		return fmt.Errorf("failed to register slug validation: %w", err)
	}
	return nil
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

// SanitizeStrict strips all HTML from user-supplied plain-text fields.
func SanitizeStrict(input string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}

// SanitizeHTML keeps a safe subset of markup for rich description fields.
func SanitizeHTML(input string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(input))
}

var allowedUploadExtensions = map[string]string{
	".jpg":  "image",
	".jpeg": "image",
	".png":  "image",
	".webp": "image",
	".gif":  "image",
	".pdf":  "document",
	".mp4":  "video",
	".webm": "video",
}

// ValidateUpload checks the extension and size of an uploaded file and
// returns the file kind ("image", "document" or "video").
func ValidateUpload(header *multipart.FileHeader, maxSize int64) (string, error) {
	if header == nil {
		return "", fmt.Errorf("no file provided")
	}
	if header.Size > maxSize {
		return "", fmt.Errorf("file exceeds maximum size of %d bytes", maxSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	kind, ok := allowedUploadExtensions[ext]
	if !ok {
		return "", fmt.Errorf("file type %q is not allowed", ext)
	}
	return kind, nil
}
