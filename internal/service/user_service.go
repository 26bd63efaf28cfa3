package service

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"coach-library-backend/internal/apperrors"
	"coach-library-backend/internal/models"
	"coach-library-backend/internal/repository"
	"coach-library-backend/pkg/logger"
)

// UserService covers the admin user-management surface.
type UserService struct {
	userRepo   repository.UserRepository
	bcryptCost int
}

func NewUserService(userRepo repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(filter)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list users", err)
	}
	return users, total, nil
}

func (s *UserService) Create(req models.CreateUserRequest) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := &models.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Username:  strings.TrimSpace(req.Username),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  string(hashed),
		Gender:    req.Gender,
		Role:      models.RoleUser,
		Status:    models.StatusActive,
	}

	if err := s.userRepo.Create(user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, apperrors.BadRequest("User with this email already exists")
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, apperrors.BadRequest("User with this username already exists")
		}
		return nil, apperrors.Internal("failed to create user", err)
	}

	logger.Info("User created by admin", map[string]interface{}{"username": user.Username})
	return user, nil
}

func (s *UserService) Delete(id uint) error {
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("User not found")
		}
		return apperrors.Internal("failed to delete user", err)
	}
	return nil
}

func (s *UserService) ChangeStatus(username, status string) error {
	if status != models.StatusActive && status != models.StatusInactive {
		return apperrors.BadRequest("status must be active or inactive")
	}
	if err := s.userRepo.UpdateStatus(username, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("User not found")
		}
		return apperrors.Internal("failed to change user status", err)
	}
	return nil
}

func (s *UserService) ChangePassword(username, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}
	if err := s.userRepo.UpdatePassword(username, string(hashed)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("User not found")
		}
		return apperrors.Internal("failed to change password", err)
	}
	return nil
}
