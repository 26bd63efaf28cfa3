package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"coach-library-backend/internal/models"
)

type CategoryListFilter struct {
	ParentID *uint // nil means top level
	Search   string
	Page     int
	Limit    int
}

// CategoryListing is a category row with both translations flattened, as
// the admin listing returns it.
type CategoryListing struct {
	ID            uint      `json:"id"`
	Slug          string    `json:"slug"`
	Status        string    `json:"status"`
	CoverImage    string    `json:"cover_image"`
	BannerImage   string    `json:"banner_image"`
	ParentID      *uint     `json:"parent_id"`
	NameEn        string    `json:"name_en"`
	NameAr        string    `json:"name_ar"`
	DescriptionEn string    `json:"description_en"`
	DescriptionAr string    `json:"description_ar"`
	CreatedAt     time.Time `json:"created_at"`
}

// PublicCategoryListing adds the per-row content counts the public
// listing shows.
type PublicCategoryListing struct {
	CategoryListing
	VideoCount       int64 `json:"video_count"`
	PdfCount         int64 `json:"pdf_count"`
	SubcategoryCount int64 `json:"subcategory_count"`
}

type CategoryRepository interface {
	CreateWithTranslations(category *models.Category, translations []models.CategoryTranslation) error
	UpdateWithTranslations(category *models.Category, translations []models.CategoryTranslation) error
	DeleteWithTranslations(slug string) error
	ChangeStatus(slug, status string) error
	GetBySlug(slug string) (*models.Category, error)
	GetByID(id uint) (*models.Category, error)
	AdminList(filter CategoryListFilter) ([]CategoryListing, int64, error)
	PublicList(filter CategoryListFilter) ([]PublicCategoryListing, int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// CreateWithTranslations runs the duplicate checks and both inserts in one
// transaction so a failed translation insert never leaves a bare category.
func (r *categoryRepository) CreateWithTranslations(category *models.Category, translations []models.CategoryTranslation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, tr := range translations {
			sentinel := ErrDuplicateEnglishName
			if tr.Lang == models.LangArabic {
				sentinel = ErrDuplicateArabicName
			}
			var count int64
			err := tx.Model(&models.CategoryTranslation{}).
				Joins("JOIN categories ON categories.id = category_translations.category_id AND categories.deleted_at IS NULL").
				Where("category_translations.lang = ? AND category_translations.name = ?", tr.Lang, tr.Name).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				return sentinel
			}
		}

		var count int64
		if err := tx.Model(&models.Category{}).Where("slug = ?", category.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateSlug
		}

		if err := tx.Create(category).Error; err != nil {
			return err
		}

		for i := range translations {
			translations[i].CategoryID = category.ID
		}
		result := tx.Create(&translations)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(translations)) {
			return ErrTranslationCount
		}
		return nil
	})
}

// UpdateWithTranslations repeats the duplicate checks excluding the
// category's own rows, then applies all writes in one transaction.
func (r *categoryRepository) UpdateWithTranslations(category *models.Category, translations []models.CategoryTranslation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, tr := range translations {
			sentinel := ErrDuplicateEnglishName
			if tr.Lang == models.LangArabic {
				sentinel = ErrDuplicateArabicName
			}
			var count int64
			err := tx.Model(&models.CategoryTranslation{}).
				Joins("JOIN categories ON categories.id = category_translations.category_id AND categories.deleted_at IS NULL").
				Where("category_translations.lang = ? AND category_translations.name = ?", tr.Lang, tr.Name).
				Where("category_translations.category_id <> ?", category.ID).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				return sentinel
			}
		}

		var count int64
		err := tx.Model(&models.Category{}).
			Where("slug = ? AND id <> ?", category.Slug, category.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateSlug
		}

		if err := tx.Save(category).Error; err != nil {
			return err
		}
		for i := range translations {
			if err := tx.Model(&models.CategoryTranslation{}).
				Where("category_id = ? AND lang = ?", category.ID, translations[i].Lang).
				Updates(map[string]interface{}{
					"name":        translations[i].Name,
					"description": translations[i].Description,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *categoryRepository) DeleteWithTranslations(slug string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		err := tx.Where("slug = ?", slug).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", category.ID).Delete(&models.CategoryTranslation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}

func (r *categoryRepository) ChangeStatus(slug, status string) error {
	result := r.db.Model(&models.Category{}).
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

func (r *categoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.Preload("Translations").Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &category, err
}

func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.Preload("Translations").First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &category, err
}

func (r *categoryRepository) listQuery(filter CategoryListFilter, status string) *gorm.DB {
	query := r.db.Model(&models.Category{}).
		Select(`categories.id, categories.slug, categories.status,
			categories.cover_image, categories.banner_image,
			categories.parent_id, categories.created_at,
			en.name AS name_en, en.description AS description_en,
			ar.name AS name_ar, ar.description AS description_ar`).
		Joins("JOIN category_translations en ON en.category_id = categories.id AND en.lang = 'en'").
		Joins("JOIN category_translations ar ON ar.category_id = categories.id AND ar.lang = 'ar'")

	if filter.ParentID != nil {
		query = query.Where("categories.parent_id = ?", *filter.ParentID)
	} else {
		query = query.Where("categories.parent_id IS NULL")
	}
	if status != "" {
		query = query.Where("categories.status = ?", status)
	}
	if filter.Search != "" {
		query = query.Where("en.name ILIKE ? OR ar.name ILIKE ?",
			"%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	return query
}

func (r *categoryRepository) AdminList(filter CategoryListFilter) ([]CategoryListing, int64, error) {
	query := r.listQuery(filter, "")

	var total int64
	if err := query.Distinct("categories.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []CategoryListing
	err := query.
		Order("categories.id DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Scan(&listings).Error
	return listings, total, err
}

func (r *categoryRepository) PublicList(filter CategoryListFilter) ([]PublicCategoryListing, int64, error) {
	query := r.listQuery(filter, models.StatusActive)

	var total int64
	if err := query.Distinct("categories.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []PublicCategoryListing
	err := query.
		Select(`categories.id, categories.slug, categories.status,
			categories.cover_image, categories.banner_image,
			categories.parent_id, categories.created_at,
			en.name AS name_en, en.description AS description_en,
			ar.name AS name_ar, ar.description AS description_ar,
			(SELECT COUNT(*) FROM contents
				WHERE (contents.category_id = categories.id OR contents.subcategory_id = categories.id)
				AND contents.file_type <> 'pdf'
				AND contents.status = 'active'
				AND contents.deleted_at IS NULL) AS video_count,
			(SELECT COUNT(*) FROM contents
				WHERE (contents.category_id = categories.id OR contents.subcategory_id = categories.id)
				AND contents.file_type = 'pdf'
				AND contents.status = 'active'
				AND contents.deleted_at IS NULL) AS pdf_count,
			(SELECT COUNT(*) FROM categories sub
				WHERE sub.parent_id = categories.id
				AND sub.status = 'active'
				AND sub.deleted_at IS NULL) AS subcategory_count`).
		Order("categories.id DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Scan(&listings).Error
	return listings, total, err
}
