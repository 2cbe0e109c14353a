package mapper

import (
	"encoding/json"
	"time"

	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizMapper struct{}

func NewQuizMapper() *QuizMapper {
	return &QuizMapper{}
}

func (m *QuizMapper) ToEntity(q *model.Quiz) *entity.Quiz {
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

	return &entity.Quiz{
		Id:          q.Id,
		TeacherId:   q.TeacherId,
		Title:       q.Title,
		Description: q.Description,
		Topic:       q.Topic,
		TimeLimit:   q.TimeLimit,
		TotalScore:  q.TotalScore,
		AiRequestId: q.AiRequestId,
		Status:      q.Status,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   q.DeletedAt.Valid,
	}
}

func (m *QuizMapper) ToModel(q *entity.Quiz) *model.Quiz {
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

	return &model.Quiz{
		Id:          q.Id,
		TeacherId:   q.TeacherId,
		Title:       q.Title,
		Description: q.Description,
		Topic:       q.Topic,
		TimeLimit:   q.TimeLimit,
		TotalScore:  q.TotalScore,
		AiRequestId: q.AiRequestId,
		Status:      q.Status,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *QuizMapper) ToEntities(quizzes []*model.Quiz) []*entity.Quiz {
	entities := make([]*entity.Quiz, len(quizzes))
	for i, q := range quizzes {
		entities[i] = m.ToEntity(q)
	}
	return entities
}

type QuizAttemptMapper struct{}

func NewQuizAttemptMapper() *QuizAttemptMapper {
	return &QuizAttemptMapper{}
}

func (m *QuizAttemptMapper) ToEntity(a *model.QuizAttempt) *entity.QuizAttempt {
	if a == nil {
		return nil
	}

	var answers []entity.QuizAnswer
	if len(a.Answers) > 0 {
		_ = json.Unmarshal(a.Answers, &answers)
	}

	return &entity.QuizAttempt{
		Id:         a.Id,
		QuizId:     a.QuizId,
		StudentId:  a.StudentId,
		Topic:      a.Topic,
		Score:      a.Score,
		TotalScore: a.TotalScore,
		Answers:    answers,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *QuizAttemptMapper) ToModel(a *entity.QuizAttempt) *model.QuizAttempt {
	if a == nil {
		return nil
	}

	var answers datatypes.JSON
	if len(a.Answers) > 0 {
		raw, err := json.Marshal(a.Answers)
		if err == nil {
			answers = datatypes.JSON(raw)
		}
	}

	return &model.QuizAttempt{
		Id:         a.Id,
		QuizId:     a.QuizId,
		StudentId:  a.StudentId,
		Topic:      a.Topic,
		Score:      a.Score,
		TotalScore: a.TotalScore,
		Answers:    answers,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *QuizAttemptMapper) ToEntities(attempts []*model.QuizAttempt) []*entity.QuizAttempt {
	entities := make([]*entity.QuizAttempt, len(attempts))
	for i, a := range attempts {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
