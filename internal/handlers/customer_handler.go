package handlers

import (
	"github.com/gin-gonic/gin"

	"coach-library-backend/internal/models"
	"coach-library-backend/internal/service"
)

type CustomerHandler struct {
	customerService *service.CustomerService
}

func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

func (h *CustomerHandler) Store(c *gin.Context) {
	var req models.CustomerStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	detail, err := h.customerService.Store(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, detail, "Contact request received")
}

func (h *CustomerHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	details, total, err := h.customerService.List(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPaginated(c, details, total, page, limit, "Contact requests fetched")
}
