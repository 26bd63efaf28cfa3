package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coach-library-backend/internal/models"
)

// isDuplicateTitle matches unique-index violations on
// content_translations.title raised when a concurrent writer (or a
// soft-deleted content's surviving translation rows) slips past the
// pre-insert check.
func isDuplicateTitle(err error) bool {
	return err != nil && strings.Contains(err.Error(), "idx_content_translations_title")
}

type ContentListFilter struct {
	FileTypes     []string
	SubcategoryID *uint
	FeaturedOnly  bool
	Lang          string
	Search        string
	Page          int
	Limit         int
}

type ContentRepository interface {
	CreateWithTranslations(content *models.Content, translations []models.ContentTranslation) error
	UpdateWithTranslations(content *models.Content, translations []models.ContentTranslation) error
	TitleExists(titles []string, excludeContentID uint) (string, error)
	GetBySlug(slug string) (*models.Content, error)
	GetActiveByID(id uint) (*models.Content, error)
	GetActiveBySlug(slug string) (*models.Content, error)
	DeleteWithTranslations(slug string) error
	ChangeStatus(slug, status string) error
	AdminList(filter ContentListFilter) ([]models.Content, int64, error)
	PublicList(filter ContentListFilter) ([]models.Content, int64, error)
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

// TitleExists reports the first of the given titles already used by
// another content's translation, or "" when all are free.
func (r *contentRepository) TitleExists(titles []string, excludeContentID uint) (string, error) {
	query := r.db.Model(&models.ContentTranslation{}).
		Joins("JOIN contents ON contents.id = content_translations.content_id AND contents.deleted_at IS NULL").
		Where("content_translations.title IN ?", titles)
	if excludeContentID != 0 {
		query = query.Where("content_translations.content_id <> ?", excludeContentID)
	}

	var taken models.ContentTranslation
	err := query.First(&taken).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return taken.Title, nil
}

// maintainFeaturedSlots locks the currently featured rows and unsets the
// oldest ones so that after the caller's row becomes featured, at most
// models.FeaturedSlots rows carry a featured timestamp.
func maintainFeaturedSlots(tx *gorm.DB, excludeID uint) error {
	var featured []models.Content
	query := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("is_featured IS NOT NULL")
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Order("is_featured ASC").Find(&featured).Error; err != nil {
		return err
	}

	ids := featuredEvictions(featured)
	if len(ids) == 0 {
		return nil
	}
	return tx.Model(&models.Content{}).
		Where("id IN ?", ids).
		Update("is_featured", nil).Error
}

// featuredEvictions picks which of the currently featured rows (ordered
// oldest first) must lose their slot so one more row can become featured.
func featuredEvictions(featured []models.Content) []uint {
	excess := len(featured) - (models.FeaturedSlots - 1)
	if excess <= 0 {
		return nil
	}
	ids := make([]uint, 0, excess)
	for _, row := range featured[:excess] {
		ids = append(ids, row.ID)
	}
	return ids
}

func (r *contentRepository) CreateWithTranslations(content *models.Content, translations []models.ContentTranslation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if content.IsFeatured != nil {
			if err := maintainFeaturedSlots(tx, 0); err != nil {
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Create(content).Error; err != nil {
			return err
		}

		for i := range translations {
			translations[i].ContentID = content.ID
		}
		result := tx.Create(&translations)
		if result.Error != nil {
			if isDuplicateTitle(result.Error) {
				return ErrDuplicateTitle
			}
			return result.Error
		}
		if result.RowsAffected != int64(len(translations)) {
			return ErrTranslationCount
		}
		return nil
	})
}

func (r *contentRepository) UpdateWithTranslations(content *models.Content, translations []models.ContentTranslation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if content.IsFeatured != nil {
			if err := maintainFeaturedSlots(tx, content.ID); err != nil {
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Save(content).Error; err != nil {
			return err
		}

		for i := range translations {
			if err := tx.Model(&models.ContentTranslation{}).
				Where("content_id = ? AND lang = ?", content.ID, translations[i].Lang).
				Updates(map[string]interface{}{
					"title":          translations[i].Title,
					"description":    translations[i].Description,
					"coach_name":     translations[i].CoachName,
					"category_id":    translations[i].CategoryID,
					"subcategory_id": translations[i].SubcategoryID,
				}).Error; err != nil {
				if isDuplicateTitle(err) {
					return ErrDuplicateTitle
				}
				return err
			}
		}
		return nil
	})
}

func (r *contentRepository) GetBySlug(slug string) (*models.Content, error) {
	var content models.Content
	err := r.db.
		Preload("Translations").
		Preload("Category.Translations").
		Preload("Subcategory.Translations").
		Where("slug = ?", slug).
		First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &content, err
}

func (r *contentRepository) GetActiveByID(id uint) (*models.Content, error) {
	var content models.Content
	err := r.db.
		Preload("Translations").
		Preload("Category.Translations").
		Preload("Subcategory.Translations").
		Where("status = ?", models.StatusActive).
		First(&content, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &content, err
}

func (r *contentRepository) GetActiveBySlug(slug string) (*models.Content, error) {
	var content models.Content
	err := r.db.
		Where("slug = ? AND status = ?", slug, models.StatusActive).
		First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &content, err
}

// DeleteWithTranslations hard-deletes the translation rows before
// soft-deleting the content so the freed titles can be reused.
func (r *contentRepository) DeleteWithTranslations(slug string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var content models.Content
		err := tx.Where("slug = ?", slug).First(&content).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.Where("content_id = ?", content.ID).Delete(&models.ContentTranslation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&content).Error
	})
}

func (r *contentRepository) ChangeStatus(slug, status string) error {
	result := r.db.Model(&models.Content{}).
		Where("slug = ?", slug).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *contentRepository) AdminList(filter ContentListFilter) ([]models.Content, int64, error) {
	query := r.db.Model(&models.Content{}).
		Joins("JOIN content_translations t ON t.content_id = contents.id AND t.lang = ?", filter.Lang)

	if len(filter.FileTypes) > 0 {
		query = query.Where("contents.file_type IN ?", filter.FileTypes)
	}
	if filter.Search != "" {
		query = query.Where("t.title ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Distinct("contents.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contents []models.Content
	err := query.
		Preload("Translations").
		Preload("Category.Translations").
		Preload("Subcategory.Translations").
		Order("contents.id DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&contents).Error
	return contents, total, err
}

func (r *contentRepository) PublicList(filter ContentListFilter) ([]models.Content, int64, error) {
	query := r.db.Model(&models.Content{}).
		Where("contents.status = ?", models.StatusActive)

	if filter.SubcategoryID != nil {
		query = query.Where("contents.subcategory_id = ?", *filter.SubcategoryID)
	}
	if len(filter.FileTypes) > 0 {
		query = query.Where("contents.file_type IN ?", filter.FileTypes)
	}
	if filter.FeaturedOnly {
		query = query.Where("contents.is_featured IS NOT NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contents []models.Content
	err := query.
		Preload("Translations").
		Preload("Category.Translations").
		Preload("Subcategory.Translations").
		Order("contents.is_featured DESC NULLS LAST, contents.id DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&contents).Error
	return contents, total, err
}
