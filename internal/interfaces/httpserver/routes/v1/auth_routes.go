package v1

import (
	"github.com/gin-gonic/gin"

	"moodcanvas-server/internal/interfaces/httpserver/handlers"
)

func registerPublicAuthRoutes(router gin.IRoutes, handler *handlers.AuthHandler) {
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)
	router.GET("/auth/stats", handler.Stats)
}

func registerAuthRoutes(router gin.IRoutes, handler *handlers.AuthHandler) {
	router.POST("/auth/logout", handler.Logout)
	router.GET("/auth/me", handler.Me)
}
