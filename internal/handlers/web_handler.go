package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"coach-library-backend/internal/apperrors"
	"coach-library-backend/internal/middleware"
	"coach-library-backend/internal/models"
	"coach-library-backend/internal/repository"
	"coach-library-backend/internal/service"
)

// WebHandler serves the public read layer and the click counters.
type WebHandler struct {
	contentService    *service.ContentService
	categoryService   *service.CategoryService
	landingService    *service.LandingService
	engagementService *service.EngagementService
}

func NewWebHandler(
	contentService *service.ContentService,
	categoryService *service.CategoryService,
	landingService *service.LandingService,
	engagementService *service.EngagementService,
) *WebHandler {
	return &WebHandler{
		contentService:    contentService,
		categoryService:   categoryService,
		landingService:    landingService,
		engagementService: engagementService,
	}
}

func (h *WebHandler) Contents(c *gin.Context) {
	page, limit := pagination(c)
	filter := repository.ContentListFilter{
		Lang:  middleware.Lang(c),
		Page:  page,
		Limit: limit,
	}

	if raw := c.Param("id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(c, apperrors.BadRequest("invalid subcategory id"))
			return
		}
		subcategory := uint(id)
		filter.SubcategoryID = &subcategory
	}

	if raw := c.Query("file_type"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				filter.FileTypes = append(filter.FileTypes, part)
			}
		}
	}
	if featured := c.Query("is_featured"); featured == "true" || featured == "1" {
		filter.FeaturedOnly = true
	}

	result, err := h.contentService.PublicList(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPaginated(c, result, result.Total, page, limit, "Contents fetched")
}

func (h *WebHandler) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, apperrors.BadRequest("invalid content id"))
		return
	}

	content, err := h.contentService.PublicShow(uint(id), middleware.Lang(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, content, "Content fetched")
}

func (h *WebHandler) CategoryList(c *gin.Context) {
	filter := categoryListFilter(c)
	listings, total, err := h.categoryService.PublicList(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	if filter.ParentID == nil {
		respondPaginated(c, listings, total, filter.Page, filter.Limit, "Categories fetched")
		return
	}

	parent, err := h.categoryService.ParentDetails(*filter.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPaginated(c, gin.H{
		"categories": listings,
		"parent":     parent,
	}, total, filter.Page, filter.Limit, "Categories fetched")
}

func (h *WebHandler) LandingBanner(c *gin.Context) {
	page, err := h.landingService.Banner()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, page, "Landing banner fetched")
}

func (h *WebHandler) AddVideoView(c *gin.Context) {
	var req models.CounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.engagementService.AddVideoView(req.Slug, c.GetUint("user_id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "View recorded")
}

func (h *WebHandler) AddPdfDownload(c *gin.Context) {
	var req models.CounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.engagementService.AddPdfDownload(req.Slug, c.GetUint("user_id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Download recorded")
}
