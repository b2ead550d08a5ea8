//go:build wireinject

package main

import (
	"moodcanvas-server/internal/domain"
	"moodcanvas-server/internal/infrastructure"
	"moodcanvas-server/internal/interfaces"

	"github.com/google/wire"
)

func CreateApplication() (*Application, func(), error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}
