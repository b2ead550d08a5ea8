package v1

import (
	"github.com/gin-gonic/gin"

	"moodcanvas-server/internal/interfaces/httpserver/handlers"
)

func registerDiaryRoutes(router gin.IRoutes, handler *handlers.DiaryHandler) {
	router.POST("/diaries/preview", handler.Preview)
	router.POST("/diaries/quick", handler.QuickCreate)
	router.POST("/diaries", handler.Create)
	router.GET("/diaries", handler.List)
	router.GET("/diaries/date/:date", handler.ByDate)
	router.GET("/diaries/month/:year/:month", handler.ByMonth)
	router.GET("/diaries/:id", handler.Get)
	router.DELETE("/diaries/:id", handler.Delete)
}

func registerDashboardRoutes(router gin.IRoutes, handler *handlers.DashboardHandler) {
	router.GET("/dashboard", handler.Get)
}
