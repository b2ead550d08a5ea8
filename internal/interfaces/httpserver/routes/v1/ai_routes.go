package v1

import (
	"github.com/gin-gonic/gin"

	"moodcanvas-server/internal/interfaces/httpserver/handlers"
)

func registerAIRoutes(router gin.IRoutes, handler *handlers.AIHandler) {
	router.POST("/ai/image", handler.GenerateImage)
	router.POST("/ai/quote", handler.GenerateQuote)
	router.POST("/ai/prompt", handler.GeneratePrompt)
	router.POST("/ai/insight", handler.GenerateInsight)
}
