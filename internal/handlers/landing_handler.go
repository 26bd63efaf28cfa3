package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"coach-library-backend/internal/apperrors"
	"coach-library-backend/internal/models"
	"coach-library-backend/internal/service"
)

type LandingHandler struct {
	landingService *service.LandingService
	uploadService  *service.UploadService
}

func NewLandingHandler(landingService *service.LandingService, uploadService *service.UploadService) *LandingHandler {
	return &LandingHandler{
		landingService: landingService,
		uploadService:  uploadService,
	}
}

func (h *LandingHandler) Store(c *gin.Context) {
	var req models.LandingStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.landingService.Store(req.BannerImage)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, page, "Landing page saved")
}

func (h *LandingHandler) List(c *gin.Context) {
	pages, err := h.landingService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, pages, "Landing pages fetched")
}

func (h *LandingHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, apperrors.BadRequest("invalid landing page id"))
		return
	}

	var req models.LandingStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.landingService.Update(uint(id), req.BannerImage); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Landing page updated")
}

func (h *LandingHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, apperrors.BadRequest("invalid landing page id"))
		return
	}

	if err := h.landingService.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Landing page deleted")
}

func (h *LandingHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperrors.BadRequest("file is required"))
		return
	}
	fileType := c.PostForm("file_type")
	if fileType == "" {
		respondError(c, apperrors.Validation("file_type is required"))
		return
	}

	url, err := h.uploadService.Store(header, fileType)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, gin.H{"url": url, "file_type": fileType}, "File uploaded")
}
