package service

import (
	"strings"

	"coach-library-backend/internal/apperrors"
	"coach-library-backend/internal/models"
	"coach-library-backend/internal/repository"
	"coach-library-backend/pkg/validator"
)

type CustomerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

func (s *CustomerService) Store(req models.CustomerStoreRequest) (*models.CustomerDetail, error) {
	detail := &models.CustomerDetail{
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       validator.SanitizeStrict(req.Phone),
		Description: validator.SanitizeStrict(req.Description),
	}
	if detail.Description == "" {
		return nil, apperrors.Validation("description is required")
	}

	if err := s.customerRepo.Create(detail); err != nil {
		return nil, apperrors.Internal("failed to save contact request", err)
	}
	return detail, nil
}

func (s *CustomerService) List(page, limit int) ([]models.CustomerDetail, int64, error) {
	details, total, err := s.customerRepo.List(page, limit)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list contact requests", err)
	}
	return details, total, nil
}
