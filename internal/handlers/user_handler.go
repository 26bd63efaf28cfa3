package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"coach-library-backend/internal/apperrors"
	"coach-library-backend/internal/models"
	"coach-library-backend/internal/repository"
	"coach-library-backend/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	filter := repository.UserListFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	users, total, err := h.userService.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPaginated(c, users, total, page, limit, "Users fetched")
}

func (h *UserHandler) Store(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, user, "User created")
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, apperrors.BadRequest("invalid user id"))
		return
	}

	if err := h.userService.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "User deleted")
}

func (h *UserHandler) ChangeStatus(c *gin.Context) {
	var req models.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.userService.ChangeStatus(c.Param("username"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "User status updated")
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req models.AdminChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.userService.ChangePassword(c.Param("username"), req.Password); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Password updated")
}
