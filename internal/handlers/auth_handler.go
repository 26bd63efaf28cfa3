package handlers

import (
	"github.com/gin-gonic/gin"

	"coach-library-backend/internal/apperrors"
	"coach-library-backend/internal/middleware"
	"coach-library-backend/internal/models"
	"coach-library-backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, user, "Registration successful")
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, user, err := h.authService.AdminLogin(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"token": token, "user": user}, "Login successful")
}

func (h *AuthHandler) WebLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, user, err := h.authService.WebLogin(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"token": token, "user": user}, "Login successful")
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Password reset instructions sent")
}

func (h *AuthHandler) CheckResetToken(c *gin.Context) {
	var req models.CheckResetTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.authService.CheckResetToken(req.Email, req.Code); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Reset code is valid")
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.authService.ResetPassword(req.Email, req.Code, req.Password); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Password reset successful")
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID := c.GetUint("user_id")
	if err := h.authService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Password changed successfully")
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	userVal, _ := c.Get(middleware.ContextUserKey)
	user, ok := userVal.(*models.User)
	if !ok {
		respondError(c, apperrors.Unauthorized("Invalid token"))
		return
	}

	token, err := h.authService.RefreshToken(c.GetString(middleware.ContextTokenKey), user)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"token": token}, "Token refreshed")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.GetString(middleware.ContextTokenKey)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Logout successful")
}
