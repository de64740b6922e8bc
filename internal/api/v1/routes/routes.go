package routes

import (
	"github.com/gin-gonic/gin"

	"audio2text/internal/api/middleware"
	"audio2text/internal/api/v1/handlers"
)

// RegisterRoutes registers the OpenAI-compatible audio routes on a /v1 group.
func RegisterRoutes(router *gin.RouterGroup, apiKey string, transcriptions *handlers.TranscriptionHandler) {
	audio := router.Group("/audio", middleware.BearerAuth(apiKey))
	{
		audio.POST("/transcriptions", transcriptions.Create)
		audio.POST("/translations", transcriptions.Create)
	}
}
