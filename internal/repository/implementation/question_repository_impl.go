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

type QuestionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuestionMapper
}

func NewQuestionRepository(db *gorm.DB) contract.QuestionRepository {
	return &QuestionRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuestionMapper(),
	}
}

func (r *QuestionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QuestionRepositoryImpl) Create(ctx context.Context, question *entity.Question) error {
	m := r.mapper.ToModel(question)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperrors.NewPersistenceError("question create", err)
	}
	*question = *r.mapper.ToEntity(m)
	return nil
}

func (r *QuestionRepositoryImpl) CreateBatch(ctx context.Context, questions []*entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	models := make([]*model.Question, len(questions))
	for i, q := range questions {
		models[i] = r.mapper.ToModel(q)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return apperrors.NewPersistenceError("question batch create", err)
	}
	for i, m := range models {
		*questions[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *QuestionRepositoryImpl) Update(ctx context.Context, question *entity.Question) error {
	m := r.mapper.ToModel(question)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return apperrors.NewPersistenceError("question update", err)
	}
	*question = *r.mapper.ToEntity(m)
	return nil
}

func (r *QuestionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.Question{}, id).Error; err != nil {
		return apperrors.NewPersistenceError("question delete", err)
	}
	return nil
}

func (r *QuestionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Question, error) {
	var m model.Question
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewPersistenceError("question find", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QuestionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Question, error) {
	var models []*model.Question
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.NewPersistenceError("question list", err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QuestionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Question{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, apperrors.NewPersistenceError("question count", err)
	}
	return count, nil
}
