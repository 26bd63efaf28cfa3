package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"coach-library-backend/internal/models"
	"coach-library-backend/internal/repository"
	"coach-library-backend/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// categorySlugURI rejects malformed slugs before they reach the service;
// category slugs are always lowercase words joined by dashes.
type categorySlugURI struct {
	Slug string `uri:"slug" binding:"required,slug"`
}

func bindCategorySlug(c *gin.Context) (string, bool) {
	var uri categorySlugURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return "", false
	}
	return uri.Slug, true
}

func categoryListFilter(c *gin.Context) repository.CategoryListFilter {
	page, limit := pagination(c)
	filter := repository.CategoryListFilter{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}
	if raw := c.Query("parent_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			parent := uint(id)
			filter.ParentID = &parent
		}
	}
	return filter
}

func (h *CategoryHandler) List(c *gin.Context) {
	filter := categoryListFilter(c)
	listings, total, err := h.categoryService.AdminList(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPaginated(c, listings, total, filter.Page, filter.Limit, "Categories fetched")
}

func (h *CategoryHandler) Store(c *gin.Context) {
	var req models.CategoryStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.categoryService.Store(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, category, "Category created")
}

func (h *CategoryHandler) Update(c *gin.Context) {
	slug, ok := bindCategorySlug(c)
	if !ok {
		return
	}
	var req models.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.categoryService.Update(slug, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, category, "Category updated")
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	slug, ok := bindCategorySlug(c)
	if !ok {
		return
	}
	if err := h.categoryService.Destroy(slug); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Category deleted")
}

func (h *CategoryHandler) ChangeStatus(c *gin.Context) {
	slug, ok := bindCategorySlug(c)
	if !ok {
		return
	}
	var req models.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.categoryService.ChangeStatus(slug, req.Status); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Category status updated")
}
