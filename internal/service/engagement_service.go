package service

import (
	"errors"

	"coach-library-backend/internal/apperrors"
	"coach-library-backend/internal/models"
	"coach-library-backend/internal/repository"
)

// EngagementService records view and download clicks. A repeated click by
// the same user increments the same counter row rather than creating a
// new one.
type EngagementService struct {
	contentRepo    repository.ContentRepository
	engagementRepo repository.EngagementRepository
}

func NewEngagementService(contentRepo repository.ContentRepository, engagementRepo repository.EngagementRepository) *EngagementService {
	return &EngagementService{
		contentRepo:    contentRepo,
		engagementRepo: engagementRepo,
	}
}

func (s *EngagementService) AddVideoView(slug string, userID uint) error {
	content, err := s.contentRepo.GetActiveBySlug(slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Video not found")
		}
		return apperrors.Internal("failed to load content", err)
	}
	if content.FileType == models.FileTypePDF {
		return apperrors.NotFound("Video not found")
	}

	if err := s.engagementRepo.IncrementVideoView(content.ID, userID); err != nil {
		return apperrors.Internal("failed to record view", err)
	}
	return nil
}

func (s *EngagementService) AddPdfDownload(slug string, userID uint) error {
	content, err := s.contentRepo.GetActiveBySlug(slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("PDF not found")
		}
		return apperrors.Internal("failed to load content", err)
	}
	if content.FileType != models.FileTypePDF {
		return apperrors.NotFound("PDF not found")
	}

	if err := s.engagementRepo.IncrementPdfDownload(content.ID, userID); err != nil {
		return apperrors.Internal("failed to record download", err)
	}
	return nil
}
