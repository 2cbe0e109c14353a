package mapper

import (
	"time"

	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionMapper struct{}

func NewQuestionMapper() *QuestionMapper {
	return &QuestionMapper{}
}

func (m *QuestionMapper) ToEntity(q *model.Question) *entity.Question {
	if q == nil {
		return nil
	}

	var deletedAt *time.Time
	if q.DeletedAt.Valid {
		t := q.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !q.UpdatedAt.IsZero() {
		t := q.UpdatedAt
		updatedAt = &t
	}

	return &entity.Question{
		Id:            q.Id,
		TeacherId:     q.TeacherId,
		Topic:         q.Topic,
		QuestionText:  q.QuestionText,
		QuestionType:  entity.QuestionType(q.QuestionType),
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		GradeLevel:    q.GradeLevel,
		DifficultyId:  q.DifficultyId,
		QuizId:        q.QuizId,
		AiRequestId:   q.AiRequestId,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     updatedAt,
		DeletedAt:     deletedAt,
		IsDeleted:     q.DeletedAt.Valid,
	}
}

func (m *QuestionMapper) ToModel(q *entity.Question) *model.Question {
	if q == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if q.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *q.DeletedAt, Valid: true}
	} else if q.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if q.UpdatedAt != nil {
		updatedAt = *q.UpdatedAt
	}

	return &model.Question{
		Id:            q.Id,
		TeacherId:     q.TeacherId,
		Topic:         q.Topic,
		QuestionText:  q.QuestionText,
		QuestionType:  string(q.QuestionType),
		Options:       datatypes.NewJSONSlice(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		GradeLevel:    q.GradeLevel,
		DifficultyId:  q.DifficultyId,
		QuizId:        q.QuizId,
		AiRequestId:   q.AiRequestId,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     updatedAt,
		DeletedAt:     deletedAt,
	}
}

func (m *QuestionMapper) ToEntities(questions []*model.Question) []*entity.Question {
	entities := make([]*entity.Question, len(questions))
	for i, q := range questions {
		entities[i] = m.ToEntity(q)
	}
	return entities
}
