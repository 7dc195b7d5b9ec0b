package middlewares

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps request bodies; max <= 0 disables the cap. A declared
// Content-Length over the cap is refused before the handler runs, anything
// else is cut off by http.MaxBytesReader while binding.
func MaxBodyBytes(max int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if max <= 0 || ctx.Request.Body == nil {
			ctx.Next()
			return
		}

		if ctx.Request.ContentLength > max {
			ctx.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": gin.H{
					"code":    "body_too_large",
					"message": "Request body is too large",
					"details": gin.H{"limit": max},
				},
			})
			return
		}

		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, max)
		ctx.Next()
	}
}

// RequireJSON rejects article writes that are not application/json.
func RequireJSON() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		switch ctx.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			// parameters such as charset are fine
			mediaType, _, err := mime.ParseMediaType(ctx.GetHeader("Content-Type"))
			if err != nil || mediaType != gin.MIMEJSON {
				ctx.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
					"error": gin.H{
						"code":    "unsupported_media_type",
						"message": "Content-Type must be application/json",
					},
				})
				return
			}
		}
		ctx.Next()
	}
}
