package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"coach-library-backend/internal/apperrors"
	"coach-library-backend/internal/models"
	"coach-library-backend/internal/repository"
	"coach-library-backend/pkg/logger"
	"coach-library-backend/pkg/utils"
)

const resetCodeLength = 32

// Notifier delivers account emails. Implementations must not block the
// request; failures are logged, not surfaced.
type Notifier interface {
	SendRegistrationEmail(to, name string)
	SendPasswordResetEmail(to, code string)
}

type AuthService struct {
	userRepo     repository.UserRepository
	tokenRepo    repository.UserTokenRepository
	notifier     Notifier
	jwtSecret    string
	tokenTTL     time.Duration
	resetCodeTTL time.Duration
	bcryptCost   int
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.UserTokenRepository,
	notifier Notifier,
	jwtSecret string,
	tokenTTL time.Duration,
	resetCodeTTL time.Duration,
	bcryptCost int,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		notifier:     notifier,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
		resetCodeTTL: resetCodeTTL,
		bcryptCost:   bcryptCost,
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, apperrors.BadRequest("User with this email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal("failed to check email", err)
	}
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, apperrors.BadRequest("User with this username already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal("failed to check username", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := &models.User{
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Username:        username,
		Email:           email,
		Password:        string(hashed),
		Gender:          req.Gender,
		Role:            models.RoleUser,
		Status:          models.StatusActive,
		EmailVerifyCode: utils.GenerateRandomString(resetCodeLength),
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

	if s.notifier != nil {
		s.notifier.SendRegistrationEmail(user.Email, user.FirstName)
	}

	logger.Info("User registered", map[string]interface{}{"username": user.Username})
	return user, nil
}

func (s *AuthService) signToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// issueToken signs a JWT and stores the server-side session row that
// actually carries the session's authority.
func (s *AuthService) issueToken(user *models.User) (string, error) {
	signed, err := s.signToken(user)
	if err != nil {
		return "", apperrors.Internal("failed to sign token", err)
	}
	if err := s.tokenRepo.Create(&models.UserToken{UserID: user.ID, Token: signed}); err != nil {
		return "", apperrors.Internal("failed to store token", err)
	}
	return signed, nil
}

func (s *AuthService) completeLogin(user *models.User) (string, error) {
	now := time.Now()
	if user.FirstLoginAt == nil {
		user.FirstLoginAt = &now
	}
	user.LastLoginAt = &now
	user.ForgotPasswordCode = ""
	user.ForgotPasswordCodeSentAt = nil
	if err := s.userRepo.Update(user); err != nil {
		return "", apperrors.Internal("failed to update login state", err)
	}
	return s.issueToken(user)
}

// AdminLogin authenticates the dashboard; only admins get in.
func (s *AuthService) AdminLogin(req models.LoginRequest) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil || user.Role != models.RoleAdmin || user.Status != models.StatusActive {
		return "", nil, apperrors.Unauthorized("Invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return "", nil, apperrors.Unauthorized("Invalid credentials")
	}

	token, err := s.completeLogin(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// WebLogin accepts email or username. Inactive accounts get an explicit
// message instead of the generic credentials error.
func (s *AuthService) WebLogin(req models.LoginRequest) (string, *models.User, error) {
	login := req.Email
	if login == "" {
		login = req.Username
	}
	if login == "" {
		return "", nil, apperrors.Validation("email or username is required")
	}

	user, err := s.userRepo.GetActiveByLogin(login)
	if errors.Is(err, repository.ErrNotFound) {
		// Distinguish an inactive account from a wrong password.
		if byEmail, emailErr := s.userRepo.GetByEmail(login); emailErr == nil && byEmail.Status == models.StatusInactive {
			return "", nil, apperrors.Forbidden("Your account is inactive, please contact support")
		}
		return "", nil, apperrors.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return "", nil, apperrors.Internal("failed to load user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return "", nil, apperrors.Unauthorized("Invalid credentials")
	}

	token, err := s.completeLogin(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// RefreshToken swaps the caller's stored token for a fresh one.
func (s *AuthService) RefreshToken(oldToken string, user *models.User) (string, error) {
	signed, err := s.signToken(user)
	if err != nil {
		return "", apperrors.Internal("failed to sign token", err)
	}
	if err := s.tokenRepo.Replace(oldToken, &models.UserToken{UserID: user.ID, Token: signed}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.Unauthorized("Invalid token")
		}
		return "", apperrors.Internal("failed to refresh token", err)
	}
	return signed, nil
}

func (s *AuthService) Logout(token string) error {
	if err := s.tokenRepo.DeleteByToken(token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Token not found")
		}
		return apperrors.Internal("failed to logout", err)
	}
	return nil
}

func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("User not found")
		}
		return apperrors.Internal("failed to load user", err)
	}

	now := time.Now()
	user.ForgotPasswordCode = utils.GenerateRandomString(resetCodeLength)
	user.ForgotPasswordCodeSentAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.Internal("failed to store reset code", err)
	}

	if s.notifier != nil {
		s.notifier.SendPasswordResetEmail(user.Email, user.ForgotPasswordCode)
	}
	return nil
}

func (s *AuthService) checkResetCode(email, code string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal("failed to load user", err)
	}
	if user.ForgotPasswordCode == "" || user.ForgotPasswordCode != code {
		return nil, apperrors.BadRequest("Invalid or expired reset code")
	}
	if s.resetCodeTTL > 0 {
		if user.ForgotPasswordCodeSentAt == nil || time.Since(*user.ForgotPasswordCodeSentAt) > s.resetCodeTTL {
			return nil, apperrors.BadRequest("Invalid or expired reset code")
		}
	}
	return user, nil
}

func (s *AuthService) CheckResetToken(email, code string) error {
	_, err := s.checkResetCode(email, code)
	return err
}

func (s *AuthService) ResetPassword(email, code, password string) error {
	user, err := s.checkResetCode(email, code)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}

	user.Password = string(hashed)
	user.ForgotPasswordCode = ""
	user.ForgotPasswordCodeSentAt = nil
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.Internal("failed to reset password", err)
	}

	// Old sessions die with the old password.
	_ = s.tokenRepo.DeleteForUser(user.ID)
	return nil
}

func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("User not found")
		}
		return apperrors.Internal("failed to load user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return apperrors.BadRequest("Incorrect old password")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}

	user.Password = string(hashed)
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.Internal("failed to change password", err)
	}
	return nil
}
