package service

import (
	"errors"
	"time"

	"coach-library-backend/internal/apperrors"
	"coach-library-backend/internal/models"
	"coach-library-backend/internal/repository"
	"coach-library-backend/pkg/cache"
	"coach-library-backend/pkg/logger"
	"coach-library-backend/pkg/utils"
	"coach-library-backend/pkg/validator"
)

const contentSlugLength = 20

type ContentService struct {
	contentRepo    repository.ContentRepository
	categoryRepo   repository.CategoryRepository
	engagementRepo repository.EngagementRepository
	cache          *cache.Cache
}

func NewContentService(
	contentRepo repository.ContentRepository,
	categoryRepo repository.CategoryRepository,
	engagementRepo repository.EngagementRepository,
	cacheService *cache.Cache,
) *ContentService {
	return &ContentService{
		contentRepo:    contentRepo,
		categoryRepo:   categoryRepo,
		engagementRepo: engagementRepo,
		cache:          cacheService,
	}
}

// ContentView is a content row localized for one language, with the
// summed engagement counters attached.
type ContentView struct {
	ID              uint       `json:"id"`
	Slug            string     `json:"slug"`
	Status          string     `json:"status"`
	CoverImage      string     `json:"cover_image"`
	FileURL         string     `json:"file_url"`
	FileType        string     `json:"file_type"`
	UploadMethod    string     `json:"upload_method"`
	VideoLength     string     `json:"video_length,omitempty"`
	NumberOfPages   int        `json:"number_of_pages,omitempty"`
	IsFeatured      *time.Time `json:"is_featured,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	CoachName       string     `json:"coach_name"`
	CategoryID      uint       `json:"category_id"`
	CategoryName    string     `json:"category_name"`
	SubcategoryID   *uint      `json:"subcategory_id,omitempty"`
	SubcategoryName string     `json:"subcategory_name,omitempty"`
	Views           int64      `json:"views"`
	Downloads       int64      `json:"downloads"`
	CreatedAt       time.Time  `json:"created_at"`
}

// PublicContentPage carries a public listing page plus the display
// metadata of the category scope it was requested for.
type PublicContentPage struct {
	Items           []ContentView `json:"items"`
	Total           int64         `json:"total"`
	CategoryID      *uint         `json:"category_id,omitempty"`
	CategoryName    string        `json:"category_name,omitempty"`
	SubcategoryID   *uint         `json:"subcategory_id,omitempty"`
	SubcategoryName string        `json:"subcategory_name,omitempty"`
	BannerImage     string        `json:"banner_image,omitempty"`
}

// translationField returns the requested language's value, falling back
// to the other language field by field when it is empty.
func translationField(translations []models.ContentTranslation, lang string, pick func(models.ContentTranslation) string) string {
	var primary, fallback string
	for _, tr := range translations {
		if tr.Lang == lang {
			primary = pick(tr)
		} else {
			fallback = pick(tr)
		}
	}
	if primary != "" {
		return primary
	}
	return fallback
}

func categoryName(category *models.Category, lang string) string {
	if category == nil {
		return ""
	}
	var primary, fallback string
	for _, tr := range category.Translations {
		if tr.Lang == lang {
			primary = tr.Name
		} else {
			fallback = tr.Name
		}
	}
	if primary != "" {
		return primary
	}
	return fallback
}

func (s *ContentService) toView(content models.Content, lang string, views, downloads map[uint]int64) ContentView {
	view := ContentView{
		ID:            content.ID,
		Slug:          content.Slug,
		Status:        content.Status,
		CoverImage:    content.CoverImage,
		FileURL:       content.FileURL,
		FileType:      content.FileType,
		UploadMethod:  content.UploadMethod,
		VideoLength:   content.VideoLength,
		NumberOfPages: content.NumberOfPages,
		IsFeatured:    content.IsFeatured,
		CategoryID:    content.CategoryID,
		SubcategoryID: content.SubcategoryID,
		CreatedAt:     content.CreatedAt,
	}
	view.Title = translationField(content.Translations, lang, func(t models.ContentTranslation) string { return t.Title })
	view.Description = translationField(content.Translations, lang, func(t models.ContentTranslation) string { return t.Description })
	view.CoachName = translationField(content.Translations, lang, func(t models.ContentTranslation) string { return t.CoachName })
	view.CategoryName = categoryName(&content.Category, lang)
	view.SubcategoryName = categoryName(content.Subcategory, lang)
	view.Views = views[content.ID]
	view.Downloads = downloads[content.ID]
	return view
}

func (s *ContentService) checkCategories(categoryID uint, subcategoryID *uint) error {
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.BadRequest("Category not found")
		}
		return apperrors.Internal("failed to verify category", err)
	}
	if subcategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*subcategoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.BadRequest("Subcategory not found")
			}
			return apperrors.Internal("failed to verify subcategory", err)
		}
	}
	return nil
}

func (s *ContentService) Store(req models.ContentStoreRequest) (*models.Content, error) {
	titleEn := validator.SanitizeStrict(req.TitleEn)
	titleAr := validator.SanitizeStrict(req.TitleAr)
	if titleEn == "" || titleAr == "" {
		return nil, apperrors.Validation("title_en and title_ar are required")
	}

	if err := s.checkCategories(req.CategoryID, req.SubcategoryID); err != nil {
		return nil, err
	}

	taken, err := s.contentRepo.TitleExists([]string{titleEn, titleAr}, 0)
	if err != nil {
		return nil, apperrors.Internal("failed to check title", err)
	}
	if taken != "" {
		return nil, apperrors.BadRequest("Content title already exists: " + taken)
	}

	content := &models.Content{
		Slug:          utils.GenerateRandomString(contentSlugLength),
		Status:        models.StatusActive,
		CoverImage:    req.CoverImage,
		FileURL:       req.FileURL,
		FileType:      req.FileType,
		UploadMethod:  req.UploadMethod,
		VideoLength:   req.VideoLength,
		NumberOfPages: req.NumberOfPages,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
	}
	if req.IsFeatured {
		now := time.Now()
		content.IsFeatured = &now
	}

	translations := []models.ContentTranslation{
		{
			Lang:          models.LangEnglish,
			Title:         titleEn,
			Description:   validator.SanitizeHTML(req.DescriptionEn),
			CoachName:     validator.SanitizeStrict(req.CoachName),
			CategoryID:    req.CategoryID,
			SubcategoryID: req.SubcategoryID,
		},
		{
			Lang:          models.LangArabic,
			Title:         titleAr,
			Description:   validator.SanitizeHTML(req.DescriptionAr),
			CoachName:     validator.SanitizeStrict(req.CoachName),
			CategoryID:    req.CategoryID,
			SubcategoryID: req.SubcategoryID,
		},
	}

	if err := s.contentRepo.CreateWithTranslations(content, translations); err != nil {
		if errors.Is(err, repository.ErrDuplicateTitle) {
			return nil, apperrors.BadRequest("Content title already exists")
		}
		return nil, apperrors.Internal("failed to create content", err)
	}

	logger.Info("Content created", map[string]interface{}{
		"slug":      content.Slug,
		"file_type": content.FileType,
	})
	if s.cache != nil {
		s.cache.InvalidateCategories()
	}

	content.Translations = translations
	return content, nil
}

func (s *ContentService) Update(slug string, req models.ContentUpdateRequest) (*models.Content, error) {
	content, err := s.contentRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Content not found")
		}
		return nil, apperrors.Internal("failed to load content", err)
	}

	var titles []string
	if req.TitleEn != nil {
		titles = append(titles, validator.SanitizeStrict(*req.TitleEn))
	}
	if req.TitleAr != nil {
		titles = append(titles, validator.SanitizeStrict(*req.TitleAr))
	}
	if len(titles) > 0 {
		taken, err := s.contentRepo.TitleExists(titles, content.ID)
		if err != nil {
			return nil, apperrors.Internal("failed to check title", err)
		}
		if taken != "" {
			return nil, apperrors.BadRequest("Content title already exists: " + taken)
		}
	}

	if req.CategoryID != nil || req.SubcategoryID != nil {
		categoryID := content.CategoryID
		if req.CategoryID != nil {
			categoryID = *req.CategoryID
		}
		subcategoryID := content.SubcategoryID
		if req.SubcategoryID != nil {
			subcategoryID = req.SubcategoryID
		}
		if err := s.checkCategories(categoryID, subcategoryID); err != nil {
			return nil, err
		}
		content.CategoryID = categoryID
		content.SubcategoryID = subcategoryID
	}

	if req.CoverImage != nil {
		content.CoverImage = *req.CoverImage
	}
	if req.FileURL != nil {
		content.FileURL = *req.FileURL
	}
	if req.FileType != nil {
		content.FileType = *req.FileType
	}
	if req.UploadMethod != nil {
		content.UploadMethod = *req.UploadMethod
	}
	if req.VideoLength != nil {
		content.VideoLength = *req.VideoLength
	}
	if req.NumberOfPages != nil {
		content.NumberOfPages = *req.NumberOfPages
	}
	if req.IsFeatured != nil {
		if *req.IsFeatured {
			if content.IsFeatured == nil {
				now := time.Now()
				content.IsFeatured = &now
			}
		} else {
			content.IsFeatured = nil
		}
	}

	translations := make([]models.ContentTranslation, 0, len(content.Translations))
	for _, tr := range content.Translations {
		if tr.Lang == models.LangEnglish {
			if req.TitleEn != nil {
				tr.Title = validator.SanitizeStrict(*req.TitleEn)
			}
			if req.DescriptionEn != nil {
				tr.Description = validator.SanitizeHTML(*req.DescriptionEn)
			}
		} else {
			if req.TitleAr != nil {
				tr.Title = validator.SanitizeStrict(*req.TitleAr)
			}
			if req.DescriptionAr != nil {
				tr.Description = validator.SanitizeHTML(*req.DescriptionAr)
			}
		}
		if req.CoachName != nil {
			tr.CoachName = validator.SanitizeStrict(*req.CoachName)
		}
		tr.CategoryID = content.CategoryID
		tr.SubcategoryID = content.SubcategoryID
		translations = append(translations, tr)
	}

	// Preloaded associations must not be resaved alongside the row.
	content.Translations = nil
	content.Category = models.Category{}
	content.Subcategory = nil

	if err := s.contentRepo.UpdateWithTranslations(content, translations); err != nil {
		if errors.Is(err, repository.ErrDuplicateTitle) {
			return nil, apperrors.BadRequest("Content title already exists")
		}
		return nil, apperrors.Internal("failed to update content", err)
	}

	if s.cache != nil {
		s.cache.InvalidateCategories()
	}

	content.Translations = translations
	return content, nil
}

func (s *ContentService) Destroy(slug string) error {
	if err := s.contentRepo.DeleteWithTranslations(slug); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Content not found")
		}
		return apperrors.Internal("failed to delete content", err)
	}

	logger.Info("Content deleted", map[string]interface{}{"slug": slug})
	if s.cache != nil {
		s.cache.InvalidateCategories()
	}
	return nil
}

func (s *ContentService) ChangeStatus(slug, status string) error {
	if status != models.StatusActive && status != models.StatusInactive {
		return apperrors.BadRequest("status must be active or inactive")
	}
	if err := s.contentRepo.ChangeStatus(slug, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Content not found")
		}
		return apperrors.Internal("failed to change content status", err)
	}

	if s.cache != nil {
		s.cache.InvalidateCategories()
	}
	return nil
}

func (s *ContentService) viewsFor(contents []models.Content, lang string) ([]ContentView, error) {
	ids := make([]uint, 0, len(contents))
	for _, c := range contents {
		ids = append(ids, c.ID)
	}

	views, err := s.engagementRepo.VideoViewTotals(ids)
	if err != nil {
		return nil, apperrors.Internal("failed to load view totals", err)
	}
	downloads, err := s.engagementRepo.PdfDownloadTotals(ids)
	if err != nil {
		return nil, apperrors.Internal("failed to load download totals", err)
	}

	result := make([]ContentView, 0, len(contents))
	for _, c := range contents {
		result = append(result, s.toView(c, lang, views, downloads))
	}
	return result, nil
}

func (s *ContentService) AdminList(filter repository.ContentListFilter) ([]ContentView, int64, error) {
	contents, total, err := s.contentRepo.AdminList(filter)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list contents", err)
	}
	result, err := s.viewsFor(contents, filter.Lang)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (s *ContentService) AdminShow(slug, lang string) (*ContentView, error) {
	content, err := s.contentRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Content not found")
		}
		return nil, apperrors.Internal("failed to load content", err)
	}

	result, err := s.viewsFor([]models.Content{*content}, lang)
	if err != nil {
		return nil, err
	}
	return &result[0], nil
}

// PublicList serves the web listing. When the scoped subcategory has no
// active content, the page still carries the subcategory and parent
// metadata so the client can render the empty section.
func (s *ContentService) PublicList(filter repository.ContentListFilter) (*PublicContentPage, error) {
	contents, total, err := s.contentRepo.PublicList(filter)
	if err != nil {
		return nil, apperrors.Internal("failed to list contents", err)
	}

	items, err := s.viewsFor(contents, filter.Lang)
	if err != nil {
		return nil, err
	}

	page := &PublicContentPage{Items: items, Total: total}
	if len(contents) > 0 {
		first := contents[0]
		page.CategoryID = &first.CategoryID
		page.CategoryName = categoryName(&first.Category, filter.Lang)
		page.BannerImage = first.Category.BannerImage
		page.SubcategoryID = first.SubcategoryID
		page.SubcategoryName = categoryName(first.Subcategory, filter.Lang)
		if first.Subcategory != nil && first.Subcategory.BannerImage != "" {
			page.BannerImage = first.Subcategory.BannerImage
		}
		return page, nil
	}

	if filter.SubcategoryID != nil {
		subcategory, err := s.categoryRepo.GetByID(*filter.SubcategoryID)
		if err == nil {
			page.SubcategoryID = &subcategory.ID
			page.SubcategoryName = categoryName(subcategory, filter.Lang)
			page.BannerImage = subcategory.BannerImage
			if subcategory.ParentID != nil {
				if parent, perr := s.categoryRepo.GetByID(*subcategory.ParentID); perr == nil {
					page.CategoryID = &parent.ID
					page.CategoryName = categoryName(parent, filter.Lang)
					if page.BannerImage == "" {
						page.BannerImage = parent.BannerImage
					}
				}
			}
		}
	}
	return page, nil
}

func (s *ContentService) PublicShow(id uint, lang string) (*ContentView, error) {
	content, err := s.contentRepo.GetActiveByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Content not found")
		}
		return nil, apperrors.Internal("failed to load content", err)
	}

	result, err := s.viewsFor([]models.Content{*content}, lang)
	if err != nil {
		return nil, err
	}
	return &result[0], nil
}
