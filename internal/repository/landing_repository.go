package repository

import (
	"errors"

	"gorm.io/gorm"

	"coach-library-backend/internal/models"
)

type LandingRepository interface {
	Upsert(bannerImage string) (*models.LandingPage, error)
	Latest() (*models.LandingPage, error)
	List() ([]models.LandingPage, error)
	Update(id uint, bannerImage string) error
	Delete(id uint) error
}

type landingRepository struct {
	db *gorm.DB
}

func NewLandingRepository(db *gorm.DB) LandingRepository {
	return &landingRepository{db: db}
}

// Upsert updates the existing landing row when one exists, otherwise
// creates it, so the table keeps a single meaningful row.
func (r *landingRepository) Upsert(bannerImage string) (*models.LandingPage, error) {
	var page models.LandingPage
	err := r.db.Transaction(func(tx *gorm.DB) error {
		findErr := tx.Order("id DESC").First(&page).Error
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			page = models.LandingPage{BannerImage: bannerImage}
			return tx.Create(&page).Error
		}
		if findErr != nil {
			return findErr
		}
		page.BannerImage = bannerImage
		return tx.Save(&page).Error
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *landingRepository) Latest() (*models.LandingPage, error) {
	var page models.LandingPage
	err := r.db.Order("id DESC").First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &page, err
}

func (r *landingRepository) List() ([]models.LandingPage, error) {
	var pages []models.LandingPage
	err := r.db.Order("id DESC").Find(&pages).Error
	return pages, err
}

func (r *landingRepository) Update(id uint, bannerImage string) error {
	result := r.db.Model(&models.LandingPage{}).
		Where("id = ?", id).
		Update("banner_image", bannerImage)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *landingRepository) Delete(id uint) error {
	result := r.db.Delete(&models.LandingPage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
