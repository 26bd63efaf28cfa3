package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coach-library-backend/internal/apperrors"
	"coach-library-backend/pkg/logger"
)

// Every response uses the same envelope: ack, optional data, optional
// pagination meta, and a message.

type meta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

func respondOK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, gin.H{
		"ack":     true,
		"data":    data,
		"message": message,
	})
}

func respondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, gin.H{
		"ack":     true,
		"data":    data,
		"message": message,
	})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"ack":     true,
		"message": message,
	})
}

func respondPaginated(c *gin.Context, data interface{}, total int64, page, limit int, message string) {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	c.JSON(http.StatusOK, gin.H{
		"ack":  true,
		"data": data,
		"meta": meta{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: pages,
		},
		"message": message,
	})
}

func respondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Kind == apperrors.KindInternal {
		logger.Error(appErr, "Request failed", map[string]interface{}{
			"path":   c.FullPath(),
			"method": c.Request.Method,
		})
	}
	c.JSON(appErr.Status(), gin.H{
		"ack":     false,
		"message": appErr.Message,
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"ack":     false,
		"message": err.Error(),
	})
}

func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
