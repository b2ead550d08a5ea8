package diaryrepo

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"moodcanvas-server/internal/domain/diary"
	"moodcanvas-server/internal/infrastructure/database/entities"
	"moodcanvas-server/internal/utils/platformerrors"
)

type DiaryGormRepository struct {
	db *gorm.DB
}

var _ diary.Repository = (*DiaryGormRepository)(nil)

func NewDiaryGormRepository(db *gorm.DB) diary.Repository {
	return &DiaryGormRepository{db: db}
}

func (repo *DiaryGormRepository) Create(ctx context.Context, d *diary.Diary) error {
	entity := entities.NewSchemaDiary(d)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create diary", err, "diary-create-failed")
	}
	*d = *entity.EtoD()
	return nil
}

func (repo *DiaryGormRepository) FindByID(ctx context.Context, userID, id uint) (*diary.Diary, error) {
	var entity entities.Diary
	err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to find diary", err, "diary-find-failed")
	}
	return entity.EtoD(), nil
}

func (repo *DiaryGormRepository) ListByUser(ctx context.Context, userID uint, filter diary.Filter) ([]*diary.Diary, error) {
	query := repo.db.WithContext(ctx).Where("user_id = ?", userID)
	if !filter.From.IsZero() {
		query = query.Where("diary_date >= ?", datatypes.Date(filter.From))
	}
	if !filter.To.IsZero() {
		query = query.Where("diary_date <= ?", datatypes.Date(filter.To))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []entities.Diary
	if err := query.Order("diary_date DESC").Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list diaries", err, "diary-list-failed")
	}

	out := make([]*diary.Diary, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].EtoD())
	}
	return out, nil
}

func (repo *DiaryGormRepository) Delete(ctx context.Context, userID, id uint) (bool, error) {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.Diary{})
	if result.Error != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete diary", result.Error, "diary-delete-failed")
	}
	return result.RowsAffected > 0, nil
}

func (repo *DiaryGormRepository) ImagePaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := repo.db.WithContext(ctx).
		Model(&entities.Diary{}).
		Where("image_path IS NOT NULL AND image_path <> ''").
		Distinct().
		Pluck("image_path", &paths).
		Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list diary image paths", err, "diary-image-paths-failed")
	}
	return paths, nil
}

func (repo *DiaryGormRepository) CountImageReferences(ctx context.Context, path string) (int64, error) {
	var n int64
	err := repo.db.WithContext(ctx).
		Model(&entities.Diary{}).
		Where("image_path = ?", path).
		Count(&n).
		Error
	if err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count image references", err, "diary-image-refs-failed")
	}
	return n, nil
}
