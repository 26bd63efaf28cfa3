package middleware

import (
	"github.com/gin-gonic/gin"

	"coach-library-backend/pkg/lang"
)

const ContextLangKey = "lang"

// LanguageMiddleware resolves the response language: an explicit ?lang=
// parameter wins, then the Accept-Language header, then English.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		resolved := lang.Resolve(c.Query("lang"), c.GetHeader("Accept-Language"))
		c.Set(ContextLangKey, resolved)
		c.Header("Content-Language", resolved)
		c.Next()
	}
}

// Lang reads the resolved language from the request context.
func Lang(c *gin.Context) string {
	if value, exists := c.Get(ContextLangKey); exists {
		if code, ok := value.(string); ok {
			return code
		}
	}
	return lang.Default
}
