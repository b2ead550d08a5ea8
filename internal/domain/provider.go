package domain

import (
	"github.com/google/wire"

	"moodcanvas-server/internal/config"
	"moodcanvas-server/internal/domain/diary"
	"moodcanvas-server/internal/domain/generation"
	"moodcanvas-server/internal/domain/session"
	"moodcanvas-server/internal/domain/user"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// User domain
	user.NewService,
	ProvideSessionManager,

	// Generation domain
	ProvideSuppressor,
	ProvidePhraseBank,
	generation.NewLocalQuoteGenerator,
	generation.NewService,

	// Diary domain
	diary.NewService,
	wire.Bind(new(diary.ImageRemover), new(*generation.Service)),
)

func ProvideSessionManager(store session.Store, cfg *config.Config) *session.Manager {
	return session.NewManager(store, cfg.Session.Timeout)
}

func ProvideSuppressor(cfg *config.Config) *generation.Suppressor {
	return generation.NewSuppressor(cfg.Generation.Cooldown)
}

func ProvidePhraseBank(cfg *config.Config) (*generation.PhraseBank, error) {
	return generation.LoadPhraseBank(cfg.Generation.PhraseBankPath)
}
