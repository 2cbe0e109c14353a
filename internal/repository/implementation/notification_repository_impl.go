package implementation

import (
	"context"
	"errors"
	"time"

	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/mapper"
	"ai-mathteach-be/internal/model"
	"ai-mathteach-be/internal/pkg/apperrors"
	"ai-mathteach-be/internal/repository/contract"
	"ai-mathteach-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NotificationMapper
}

func NewNotificationRepository(db *gorm.DB) contract.NotificationRepository {
	return &NotificationRepositoryImpl{
		db:     db,
		mapper: mapper.NewNotificationMapper(),
	}
}

func (r *NotificationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, notification *entity.Notification) error {
	m := r.mapper.ToModel(notification)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperrors.NewPersistenceError("notification create", err)
	}
	*notification = *r.mapper.ToEntity(m)
	return nil
}

func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id uuid.UUID, userId uuid.UUID) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userId).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if res.Error != nil {
		return apperrors.NewPersistenceError("notification mark read", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("notification")
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllRead(ctx context.Context, userId uuid.UUID) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = false", userId).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
	if err != nil {
		return apperrors.NewPersistenceError("notification mark all read", err)
	}
	return nil
}

func (r *NotificationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error) {
	var models []*model.Notification
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.NewPersistenceError("notification list", err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NotificationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Notification{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, apperrors.NewPersistenceError("notification count", err)
	}
	return count, nil
}

type DifficultyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DifficultyMapper
}

func NewDifficultyRepository(db *gorm.DB) contract.DifficultyRepository {
	return &DifficultyRepositoryImpl{
		db:     db,
		mapper: mapper.NewDifficultyMapper(),
	}
}

func (r *DifficultyRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DifficultyRepositoryImpl) Upsert(ctx context.Context, difficulty *entity.Difficulty) error {
	m := r.mapper.ToModel(difficulty)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"level"}),
	}).Create(m).Error
	if err != nil {
		return apperrors.NewPersistenceError("difficulty upsert", err)
	}
	*difficulty = *r.mapper.ToEntity(m)
	return nil
}

func (r *DifficultyRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Difficulty, error) {
	var m model.Difficulty
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewPersistenceError("difficulty find", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DifficultyRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Difficulty, error) {
	var models []*model.Difficulty
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.NewPersistenceError("difficulty list", err)
	}
	return r.mapper.ToEntities(models), nil
}
