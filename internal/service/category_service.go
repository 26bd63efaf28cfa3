package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"coach-library-backend/internal/apperrors"
	"coach-library-backend/internal/models"
	"coach-library-backend/internal/repository"
	"coach-library-backend/pkg/cache"
	"coach-library-backend/pkg/logger"
	"coach-library-backend/pkg/utils"
	"coach-library-backend/pkg/validator"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
	cache        *cache.Cache
}

func NewCategoryService(categoryRepo repository.CategoryRepository, cacheService *cache.Cache) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		cache:        cacheService,
	}
}

// kindWord picks the noun used in duplicate-name messages. Subcategories
// get their own wording so admins see which level collided.
func kindWord(parentID *uint) string {
	if parentID != nil {
		return "Subcategory"
	}
	return "Category"
}

func (s *CategoryService) translateCategoryError(err error, parentID *uint) error {
	word := kindWord(parentID)
	switch {
	case errors.Is(err, repository.ErrDuplicateArabicName):
		return apperrors.BadRequest(word + " name (Arabic) already exists")
	case errors.Is(err, repository.ErrDuplicateEnglishName):
		return apperrors.BadRequest(word + " name (English) already exists")
	case errors.Is(err, repository.ErrDuplicateSlug):
		return apperrors.BadRequest(word + " with this name already exists")
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(word + " not found")
	case err != nil:
		return apperrors.Internal("failed to save "+strings.ToLower(word), err)
	}
	return nil
}

func (s *CategoryService) Store(req models.CategoryStoreRequest) (*models.Category, error) {
	nameEn := validator.SanitizeStrict(req.NameEn)
	nameAr := validator.SanitizeStrict(req.NameAr)
	if nameEn == "" || nameAr == "" {
		return nil, apperrors.Validation("name_en and name_ar are required")
	}

	if req.ParentID != nil {
		if _, err := s.categoryRepo.GetByID(*req.ParentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.BadRequest("Parent category not found")
			}
			return nil, apperrors.Internal("failed to verify parent category", err)
		}
	}

	category := &models.Category{
		Slug:        utils.GenerateSlug(nameEn),
		Status:      models.StatusActive,
		CoverImage:  req.CoverImage,
		BannerImage: req.BannerImage,
		ParentID:    req.ParentID,
	}
	translations := []models.CategoryTranslation{
		{Lang: models.LangEnglish, Name: nameEn, Description: validator.SanitizeHTML(req.DescriptionEn)},
		{Lang: models.LangArabic, Name: nameAr, Description: validator.SanitizeHTML(req.DescriptionAr)},
	}

	if err := s.categoryRepo.CreateWithTranslations(category, translations); err != nil {
		return nil, s.translateCategoryError(err, req.ParentID)
	}

	logger.Info("Category created", map[string]interface{}{
		"slug":      category.Slug,
		"parent_id": category.ParentID,
	})
	if s.cache != nil {
		s.cache.InvalidateCategories()
	}

	category.Translations = translations
	return category, nil
}

func (s *CategoryService) Update(slug string, req models.CategoryUpdateRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Category not found")
		}
		return nil, apperrors.Internal("failed to load category", err)
	}

	nameEn := validator.SanitizeStrict(req.NameEn)
	nameAr := validator.SanitizeStrict(req.NameAr)
	if nameEn == "" || nameAr == "" {
		return nil, apperrors.Validation("name_en and name_ar are required")
	}

	// The slug follows the English name.
	category.Slug = utils.GenerateSlug(nameEn)
	if req.ParentID != nil {
		if *req.ParentID == category.ID {
			return nil, apperrors.BadRequest("Category cannot be its own parent")
		}
		if _, err := s.categoryRepo.GetByID(*req.ParentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.BadRequest("Parent category not found")
			}
			return nil, apperrors.Internal("failed to verify parent category", err)
		}
		category.ParentID = req.ParentID
	}
	if req.Status != nil {
		category.Status = *req.Status
	}
	if req.CoverImage != nil {
		category.CoverImage = *req.CoverImage
	}
	if req.BannerImage != nil {
		category.BannerImage = *req.BannerImage
	}

	translations := []models.CategoryTranslation{
		{CategoryID: category.ID, Lang: models.LangEnglish, Name: nameEn, Description: validator.SanitizeHTML(req.DescriptionEn)},
		{CategoryID: category.ID, Lang: models.LangArabic, Name: nameAr, Description: validator.SanitizeHTML(req.DescriptionAr)},
	}

	if err := s.categoryRepo.UpdateWithTranslations(category, translations); err != nil {
		return nil, s.translateCategoryError(err, category.ParentID)
	}

	if s.cache != nil {
		s.cache.InvalidateCategories()
	}

	category.Translations = translations
	return category, nil
}

func (s *CategoryService) Destroy(slug string) error {
	if err := s.categoryRepo.DeleteWithTranslations(slug); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Category not found")
		}
		return apperrors.Internal("failed to delete category", err)
	}

	logger.Info("Category deleted", map[string]interface{}{"slug": slug})
	if s.cache != nil {
		s.cache.InvalidateCategories()
	}
	return nil
}

func (s *CategoryService) ChangeStatus(slug, status string) error {
	if status != models.StatusActive && status != models.StatusInactive {
		return apperrors.BadRequest("status must be active or inactive")
	}
	if err := s.categoryRepo.ChangeStatus(slug, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Category not found")
		}
		return apperrors.Internal("failed to change category status", err)
	}

	if s.cache != nil {
		s.cache.InvalidateCategories()
	}
	return nil
}

func (s *CategoryService) AdminList(filter repository.CategoryListFilter) ([]repository.CategoryListing, int64, error) {
	listings, total, err := s.categoryRepo.AdminList(filter)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list categories", err)
	}
	return listings, total, nil
}

// PublicList serves the active category listing with per-row content
// counts, cached when Redis is enabled.
func (s *CategoryService) PublicList(filter repository.CategoryListFilter) ([]repository.PublicCategoryListing, int64, error) {
	type cached struct {
		Listings []repository.PublicCategoryListing `json:"listings"`
		Total    int64                              `json:"total"`
	}

	cacheKey := ""
	if s.cache != nil && filter.Page == 1 {
		parent := ""
		if filter.ParentID != nil {
			parent = strconv.FormatUint(uint64(*filter.ParentID), 10)
		}
		cacheKey = cache.CategoryListKey(parent, filter.Search)
		var hit cached
		if err := s.cache.Get(cacheKey, &hit); err == nil {
			return hit.Listings, hit.Total, nil
		}
	}

	listings, total, err := s.categoryRepo.PublicList(filter)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list categories", err)
	}

	if cacheKey != "" {
		_ = s.cache.Set(cacheKey, cached{Listings: listings, Total: total}, 30*time.Minute)
	}
	return listings, total, nil
}

// ParentDetails loads the localized names and banner of the parent the
// public listing was scoped to.
func (s *CategoryService) ParentDetails(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Category not found")
		}
		return nil, apperrors.Internal("failed to load category", err)
	}
	return category, nil
}
