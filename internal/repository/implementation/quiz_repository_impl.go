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

type QuizRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuizMapper
}

func NewQuizRepository(db *gorm.DB) contract.QuizRepository {
	return &QuizRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuizMapper(),
	}
}

func (r *QuizRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QuizRepositoryImpl) Create(ctx context.Context, quiz *entity.Quiz) error {
	m := r.mapper.ToModel(quiz)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperrors.NewPersistenceError("quiz create", err)
	}
	*quiz = *r.mapper.ToEntity(m)
	return nil
}

func (r *QuizRepositoryImpl) Update(ctx context.Context, quiz *entity.Quiz) error {
	m := r.mapper.ToModel(quiz)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return apperrors.NewPersistenceError("quiz update", err)
	}
	*quiz = *r.mapper.ToEntity(m)
	return nil
}

func (r *QuizRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.Quiz{}, id).Error; err != nil {
		return apperrors.NewPersistenceError("quiz delete", err)
	}
	return nil
}

func (r *QuizRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Quiz, error) {
	var m model.Quiz
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewPersistenceError("quiz find", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QuizRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Quiz, error) {
	var models []*model.Quiz
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.NewPersistenceError("quiz list", err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QuizRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Quiz{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, apperrors.NewPersistenceError("quiz count", err)
	}
	return count, nil
}

type QuizAttemptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuizAttemptMapper
}

func NewQuizAttemptRepository(db *gorm.DB) contract.QuizAttemptRepository {
	return &QuizAttemptRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuizAttemptMapper(),
	}
}

func (r *QuizAttemptRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QuizAttemptRepositoryImpl) Create(ctx context.Context, attempt *entity.QuizAttempt) error {
	m := r.mapper.ToModel(attempt)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperrors.NewPersistenceError("quiz_attempt create", err)
	}
	*attempt = *r.mapper.ToEntity(m)
	return nil
}

func (r *QuizAttemptRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizAttempt, error) {
	var models []*model.QuizAttempt
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.NewPersistenceError("quiz_attempt list", err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QuizAttemptRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.QuizAttempt{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, apperrors.NewPersistenceError("quiz_attempt count", err)
	}
	return count, nil
}
