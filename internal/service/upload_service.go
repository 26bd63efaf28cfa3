package service

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"coach-library-backend/internal/apperrors"
	"coach-library-backend/pkg/logger"
	"coach-library-backend/pkg/validator"
)

var fileTypeDirPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// UploadService writes uploads in two phases: the file lands in a temp
// directory first and is renamed into its final directory only when the
// write completed, so a failed upload never leaves a half-written file
// in the served tree.
type UploadService struct {
	uploadDir string
	baseURL   string
	maxSize   int64
}

func NewUploadService(uploadDir, baseURL string, maxSize int64) *UploadService {
	return &UploadService{
		uploadDir: uploadDir,
		baseURL:   strings.TrimRight(baseURL, "/"),
		maxSize:   maxSize,
	}
}

func (s *UploadService) Store(header *multipart.FileHeader, fileType string) (string, error) {
	fileType = strings.ToLower(strings.TrimSpace(fileType))
	if !fileTypeDirPattern.MatchString(fileType) {
		return "", apperrors.Validation("invalid file_type")
	}

	if _, err := validator.ValidateUpload(header, s.maxSize); err != nil {
		return "", apperrors.BadRequest(err.Error())
	}

	tempDir := filepath.Join(s.uploadDir, "temp")
	finalDir := filepath.Join(s.uploadDir, fileType)
	for _, dir := range []string{tempDir, finalDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", apperrors.Internal("failed to prepare upload directory", err)
		}
	}

	filename := uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))
	tempPath := filepath.Join(tempDir, filename)
	finalPath := filepath.Join(finalDir, filename)

	if err := s.writeTemp(header, tempPath); err != nil {
		return "", apperrors.Internal("failed to store upload", err)
	}

	if err := os.Rename(tempPath, finalPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Error(removeErr, "Failed to clean up temp upload", map[string]interface{}{
				"path": tempPath,
			})
		}
		return "", apperrors.Internal("failed to move upload", err)
	}

	logger.Info("File uploaded", map[string]interface{}{
		"file_type": fileType,
		"filename":  filename,
	})
	return s.baseURL + "/" + fileType + "/" + filename, nil
}

func (s *UploadService) writeTemp(header *multipart.FileHeader, tempPath string) error {
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(tempPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(tempPath)
		return err
	}
	return dst.Close()
}
