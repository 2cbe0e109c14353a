package implementation

import (
	"context"
	"errors"

	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/mapper"
	"ai-mathteach-be/internal/model"
	"ai-mathteach-be/internal/pkg/apperrors"
	"ai-mathteach-be/internal/repository/contract"
	"ai-mathteach-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LessonPlanRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LessonPlanMapper
}

func NewLessonPlanRepository(db *gorm.DB) contract.LessonPlanRepository {
	return &LessonPlanRepositoryImpl{
		db:     db,
		mapper: mapper.NewLessonPlanMapper(),
	}
}

func (r *LessonPlanRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LessonPlanRepositoryImpl) Create(ctx context.Context, plan *entity.LessonPlan) error {
	m := r.mapper.ToModel(plan)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperrors.NewPersistenceError("lesson_plan create", err)
	}
	*plan = *r.mapper.ToEntity(m)
	return nil
}

func (r *LessonPlanRepositoryImpl) Update(ctx context.Context, plan *entity.LessonPlan) error {
	m := r.mapper.ToModel(plan)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return apperrors.NewPersistenceError("lesson_plan update", err)
	}
	*plan = *r.mapper.ToEntity(m)
	return nil
}

func (r *LessonPlanRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.LessonPlan{}, id).Error; err != nil {
		return apperrors.NewPersistenceError("lesson_plan delete", err)
	}
	return nil
}

func (r *LessonPlanRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LessonPlan, error) {
	var m model.LessonPlan
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewPersistenceError("lesson_plan find", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LessonPlanRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LessonPlan, error) {
	var models []*model.LessonPlan
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.NewPersistenceError("lesson_plan list", err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LessonPlanRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.LessonPlan{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, apperrors.NewPersistenceError("lesson_plan count", err)
	}
	return count, nil
}
