package handlers

import (
	"github.com/gin-gonic/gin"

	"coach-library-backend/internal/middleware"
	"coach-library-backend/internal/models"
	"coach-library-backend/internal/repository"
	"coach-library-backend/internal/service"
)

type ContentHandler struct {
	contentService *service.ContentService
}

func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (h *ContentHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	filter := repository.ContentListFilter{
		Lang:   middleware.Lang(c),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}
	if fileType := c.Query("file_type"); fileType != "" {
		filter.FileTypes = []string{fileType}
	}

	contents, total, err := h.contentService.AdminList(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPaginated(c, contents, total, page, limit, "Contents fetched")
}

func (h *ContentHandler) Show(c *gin.Context) {
	content, err := h.contentService.AdminShow(c.Param("slug"), middleware.Lang(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, content, "Content fetched")
}

func (h *ContentHandler) Store(c *gin.Context) {
	var req models.ContentStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	content, err := h.contentService.Store(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, content, "Content created")
}

func (h *ContentHandler) Update(c *gin.Context) {
	var req models.ContentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	content, err := h.contentService.Update(c.Param("slug"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, content, "Content updated")
}

func (h *ContentHandler) Delete(c *gin.Context) {
	if err := h.contentService.Destroy(c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Content deleted")
}

func (h *ContentHandler) ChangeStatus(c *gin.Context) {
	var req models.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.contentService.ChangeStatus(c.Param("slug"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Content status updated")
}
