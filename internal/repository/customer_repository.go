package repository

import (
	"gorm.io/gorm"

	"coach-library-backend/internal/models"
)

type CustomerRepository interface {
	Create(detail *models.CustomerDetail) error
	List(page, limit int) ([]models.CustomerDetail, int64, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(detail *models.CustomerDetail) error {
	return r.db.Create(detail).Error
}

func (r *customerRepository) List(page, limit int) ([]models.CustomerDetail, int64, error) {
	var total int64
	if err := r.db.Model(&models.CustomerDetail{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var details []models.CustomerDetail
	err := r.db.
		Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&details).Error
	return details, total, err
}
