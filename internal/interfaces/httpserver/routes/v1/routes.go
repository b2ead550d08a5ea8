package v1

import (
	"github.com/gin-gonic/gin"

	"moodcanvas-server/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{handlers: handlerProvider}
}

// Register attaches all v1 routes under the /v1 prefix. Routes registered
// after requireAuth need an authenticated caller.
func (r *Routes) Register(router gin.IRouter, requireAuth gin.HandlerFunc) {
	public := router.Group("/v1")
	registerPublicAuthRoutes(public, r.handlers.Auth)
	public.GET("/ai/providers", r.handlers.AI.Providers)

	protected := router.Group("/v1")
	protected.Use(requireAuth)
	registerAuthRoutes(protected, r.handlers.Auth)
	registerAIRoutes(protected, r.handlers.AI)
	registerDiaryRoutes(protected, r.handlers.Diary)
	registerDashboardRoutes(protected, r.handlers.Dashboard)
}
