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
)

type AiRequestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AiRequestMapper
}

func NewAiRequestRepository(db *gorm.DB) contract.AiRequestRepository {
	return &AiRequestRepositoryImpl{
		db:     db,
		mapper: mapper.NewAiRequestMapper(),
	}
}

func (r *AiRequestRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AiRequestRepositoryImpl) Create(ctx context.Context, request *entity.AiRequest) error {
	m := r.mapper.ToModel(request)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperrors.NewPersistenceError("ai_request create", err)
	}
	*request = *r.mapper.ToEntity(m)
	return nil
}

// MarkCompleted seals a Pending record as Completed. The WHERE clause on
// status makes the transition atomic: a record that already sealed is left
// untouched and the caller gets InvalidTransitionError.
func (r *AiRequestRepositoryImpl) MarkCompleted(ctx context.Context, id uuid.UUID, response string, metadata map[string]interface{}) error {
	// A cancelled caller must not orphan a Pending record; the sealing
	// write always runs to completion.
	ctx = context.WithoutCancel(ctx)
	now := time.Now()

	res := r.db.WithContext(ctx).Model(&model.AiRequest{}).
		Where("id = ? AND status = ?", id, string(entity.AiRequestStatusPending)).
		Updates(map[string]interface{}{
			"status":       string(entity.AiRequestStatusCompleted),
			"response":     response,
			"metadata":     mapper.MarshalMetadata(metadata),
			"completed_at": now,
		})
	if res.Error != nil {
		return apperrors.NewPersistenceError("ai_request complete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewInvalidTransitionError(id.String(), string(entity.AiRequestStatusCompleted))
	}
	return nil
}

// MarkFailed seals a Pending record as Failed, same guard as MarkCompleted.
func (r *AiRequestRepositoryImpl) MarkFailed(ctx context.Context, id uuid.UUID, cause string) error {
	ctx = context.WithoutCancel(ctx)
	now := time.Now()

	res := r.db.WithContext(ctx).Model(&model.AiRequest{}).
		Where("id = ? AND status = ?", id, string(entity.AiRequestStatusPending)).
		Updates(map[string]interface{}{
			"status":       string(entity.AiRequestStatusFailed),
			"error":        cause,
			"completed_at": now,
		})
	if res.Error != nil {
		return apperrors.NewPersistenceError("ai_request fail", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewInvalidTransitionError(id.String(), string(entity.AiRequestStatusFailed))
	}
	return nil
}

func (r *AiRequestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AiRequest, error) {
	var m model.AiRequest
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewPersistenceError("ai_request find", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AiRequestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AiRequest, error) {
	var models []*model.AiRequest
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.NewPersistenceError("ai_request list", err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AiRequestRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AiRequest{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, apperrors.NewPersistenceError("ai_request count", err)
	}
	return count, nil
}
