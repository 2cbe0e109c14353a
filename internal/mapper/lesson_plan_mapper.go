package mapper

import (
	"encoding/json"
	"time"

	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LessonPlanMapper struct{}

func NewLessonPlanMapper() *LessonPlanMapper {
	return &LessonPlanMapper{}
}

func (m *LessonPlanMapper) ToEntity(p *model.LessonPlan) *entity.LessonPlan {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	var activities []entity.LessonActivity
	if len(p.Activities) > 0 {
		_ = json.Unmarshal(p.Activities, &activities)
	}

	return &entity.LessonPlan{
		Id:                 p.Id,
		TeacherId:          p.TeacherId,
		Title:              p.Title,
		Topic:              p.Topic,
		GradeLevel:         p.GradeLevel,
		Grade:              p.Grade,
		LevelId:            p.LevelId,
		Duration:           p.Duration,
		LearningObjectives: p.LearningObjectives,
		Materials:          p.Materials,
		Activities:         activities,
		Assessment:         p.Assessment,
		Homework:           p.Homework,
		RawContent:         p.RawContent,
		AiRequestId:        p.AiRequestId,
		Status:             p.Status,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          updatedAt,
		DeletedAt:          deletedAt,
		IsDeleted:          p.DeletedAt.Valid,
	}
}

func (m *LessonPlanMapper) ToModel(p *entity.LessonPlan) *model.LessonPlan {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	var activities datatypes.JSON
	if len(p.Activities) > 0 {
		raw, err := json.Marshal(p.Activities)
		if err == nil {
			activities = datatypes.JSON(raw)
		}
	}

	return &model.LessonPlan{
		Id:                 p.Id,
		TeacherId:          p.TeacherId,
		Title:              p.Title,
		Topic:              p.Topic,
		GradeLevel:         p.GradeLevel,
		Grade:              p.Grade,
		LevelId:            p.LevelId,
		Duration:           p.Duration,
		LearningObjectives: datatypes.NewJSONSlice(p.LearningObjectives),
		Materials:          datatypes.NewJSONSlice(p.Materials),
		Activities:         activities,
		Assessment:         p.Assessment,
		Homework:           p.Homework,
		RawContent:         p.RawContent,
		AiRequestId:        p.AiRequestId,
		Status:             p.Status,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          updatedAt,
		DeletedAt:          deletedAt,
	}
}

func (m *LessonPlanMapper) ToEntities(plans []*model.LessonPlan) []*entity.LessonPlan {
	entities := make([]*entity.LessonPlan, len(plans))
	for i, p := range plans {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
