package service

import (
	"errors"
	"time"

	"coach-library-backend/internal/apperrors"
	"coach-library-backend/internal/models"
	"coach-library-backend/internal/repository"
	"coach-library-backend/pkg/cache"
)

type LandingService struct {
	landingRepo repository.LandingRepository
	cache       *cache.Cache
}

func NewLandingService(landingRepo repository.LandingRepository, cacheService *cache.Cache) *LandingService {
	return &LandingService{
		landingRepo: landingRepo,
		cache:       cacheService,
	}
}

func (s *LandingService) Store(bannerImage string) (*models.LandingPage, error) {
	page, err := s.landingRepo.Upsert(bannerImage)
	if err != nil {
		return nil, apperrors.Internal("failed to save landing page", err)
	}

	if s.cache != nil {
		s.cache.InvalidateLandingBanner()
	}
	return page, nil
}

func (s *LandingService) List() ([]models.LandingPage, error) {
	pages, err := s.landingRepo.List()
	if err != nil {
		return nil, apperrors.Internal("failed to list landing pages", err)
	}
	return pages, nil
}

func (s *LandingService) Update(id uint, bannerImage string) error {
	if err := s.landingRepo.Update(id, bannerImage); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Landing page not found")
		}
		return apperrors.Internal("failed to update landing page", err)
	}

	if s.cache != nil {
		s.cache.InvalidateLandingBanner()
	}
	return nil
}

func (s *LandingService) Delete(id uint) error {
	if err := s.landingRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Landing page not found")
		}
		return apperrors.Internal("failed to delete landing page", err)
	}

	if s.cache != nil {
		s.cache.InvalidateLandingBanner()
	}
	return nil
}

// Banner serves the public landing banner, cached when Redis is enabled.
func (s *LandingService) Banner() (*models.LandingPage, error) {
	if s.cache != nil {
		var page models.LandingPage
		if err := s.cache.Get(cache.LandingBannerKey, &page); err == nil {
			return &page, nil
		}
	}

	page, err := s.landingRepo.Latest()
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Landing page not found")
		}
		return nil, apperrors.Internal("failed to load landing page", err)
	}

	if s.cache != nil {
		_ = s.cache.Set(cache.LandingBannerKey, page, 1*time.Hour)
	}
	return page, nil
}
