package repository

import (
	"errors"

	"gorm.io/gorm"

	"coach-library-backend/internal/models"
)

type UserTokenRepository interface {
	Create(token *models.UserToken) error
	GetByToken(token string) (*models.UserToken, error)
	DeleteByToken(token string) error
	Replace(old string, fresh *models.UserToken) error
	DeleteForUser(userID uint) error
}

type userTokenRepository struct {
	db *gorm.DB
}

func NewUserTokenRepository(db *gorm.DB) UserTokenRepository {
	return &userTokenRepository{db: db}
}

func (r *userTokenRepository) Create(token *models.UserToken) error {
	return r.db.Create(token).Error
}

func (r *userTokenRepository) GetByToken(token string) (*models.UserToken, error) {
	var row models.UserToken
	err := r.db.Where("token = ?", token).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &row, err
}

func (r *userTokenRepository) DeleteByToken(token string) error {
	result := r.db.Where("token = ?", token).Delete(&models.UserToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Replace swaps the caller's stored token for a fresh one atomically so a
// refresh never leaves the session without a valid row.
func (r *userTokenRepository) Replace(old string, fresh *models.UserToken) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("token = ?", old).Delete(&models.UserToken{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Create(fresh).Error
	})
}

func (r *userTokenRepository) DeleteForUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.UserToken{}).Error
}
