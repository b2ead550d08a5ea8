package interfaces

import (
	"context"

	"github.com/google/wire"
	"gorm.io/gorm"

	"moodcanvas-server/internal/config"
	"moodcanvas-server/internal/domain/diary"
	"moodcanvas-server/internal/domain/generation"
	"moodcanvas-server/internal/domain/session"
	"moodcanvas-server/internal/domain/user"
	"moodcanvas-server/internal/infrastructure/auth"
	"moodcanvas-server/internal/infrastructure/database"
	"moodcanvas-server/internal/infrastructure/storage"
	"moodcanvas-server/internal/interfaces/httpserver"
	"moodcanvas-server/internal/interfaces/httpserver/handlers"
	"moodcanvas-server/internal/interfaces/httpserver/middlewares"
	"moodcanvas-server/internal/interfaces/httpserver/routes"
)

var InterfacesProvider = wire.NewSet(
	ProvideCookieSettings,
	ProvideImageURL,
	ProvideReadinessChecks,
	handlers.NewProvider,
	routes.NewProvider,
	httpserver.New,

	wire.Bind(new(handlers.UserService), new(*user.Service)),
	wire.Bind(new(handlers.SessionManager), new(*session.Manager)),
	wire.Bind(new(handlers.TokenIssuer), new(*auth.TokenIssuer)),
	wire.Bind(new(handlers.GenerationService), new(*generation.Service)),
	wire.Bind(new(handlers.DiaryService), new(*diary.Service)),
	wire.Bind(new(middlewares.Authenticator), new(*auth.Authenticator)),
)

func ProvideCookieSettings(cfg *config.Config) handlers.CookieSettings {
	return handlers.CookieSettings{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.Session.Timeout,
		Secure: cfg.Environment == "production",
	}
}

// ProvideImageURL maps stored diary image paths onto the active backend's URLs.
// Paths that do not name a generated image are returned unchanged.
func ProvideImageURL(images storage.ImageStorage) handlers.ImageURLFunc {
	return func(path string) string {
		filename, ok := generation.FilenameFromPath(path)
		if !ok {
			return path
		}
		return images.URL(filename)
	}
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ProvideReadinessChecks lists the dependencies /readyz probes.
func ProvideReadinessChecks(db *gorm.DB, images storage.ImageStorage, store session.Store) []httpserver.ReadinessCheck {
	checks := []httpserver.ReadinessCheck{
		{Name: "database", Check: func(ctx context.Context) error { return database.Ping(ctx, db) }},
		{Name: "storage", Check: images.Health},
	}
	if hc, ok := store.(healthChecker); ok {
		checks = append(checks, httpserver.ReadinessCheck{Name: "session_store", Check: hc.HealthCheck})
	}
	return checks
}
