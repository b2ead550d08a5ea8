package repository

import (
	"github.com/google/wire"

	"moodcanvas-server/internal/infrastructure/database/repository/diaryrepo"
	"moodcanvas-server/internal/infrastructure/database/repository/userrepo"
)

var RepositoryProvider = wire.NewSet(
	userrepo.NewUserGormRepository,
	diaryrepo.NewDiaryGormRepository,
)
