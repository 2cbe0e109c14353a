package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateLessonPlanRequest struct {
	Title              string              `json:"title" validate:"required"`
	Topic              string              `json:"topic" validate:"required"`
	GradeLevel         string              `json:"gradeLevel" validate:"required"`
	Duration           int                 `json:"duration" validate:"required,min=30,max=90"`
	LearningObjectives []string            `json:"learningObjectives,omitempty"`
	Materials          []string            `json:"materials,omitempty"`
	Activities         []LessonActivityDTO `json:"activities,omitempty"`
	Assessment         string              `json:"assessment,omitempty"`
	Homework           *string             `json:"homework,omitempty"`
}

type CreateLessonPlanResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateLessonPlanRequest struct {
	Id                 uuid.UUID
	Title              string              `json:"title" validate:"required"`
	Topic              string              `json:"topic" validate:"required"`
	GradeLevel         string              `json:"gradeLevel" validate:"required"`
	Duration           int                 `json:"duration" validate:"required,min=30,max=90"`
	LearningObjectives []string            `json:"learningObjectives,omitempty"`
	Materials          []string            `json:"materials,omitempty"`
	Activities         []LessonActivityDTO `json:"activities,omitempty"`
	Assessment         string              `json:"assessment,omitempty"`
	Homework           *string             `json:"homework,omitempty"`
}

type UpdateLessonPlanResponse struct {
	Id uuid.UUID `json:"id"`
}

type ListLessonPlansQuery struct {
	Search string `query:"search"`
	Topic  string `query:"topic"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

type LessonPlanSummaryResponse struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Topic      string     `json:"topic"`
	GradeLevel string     `json:"gradeLevel"`
	Duration   int        `json:"duration"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

type ShowLessonPlanResponse struct {
	Id                 uuid.UUID           `json:"id"`
	Title              string              `json:"title"`
	Topic              string              `json:"topic"`
	GradeLevel         string              `json:"gradeLevel"`
	Duration           int                 `json:"duration"`
	LearningObjectives []string            `json:"learningObjectives"`
	Materials          []string            `json:"materials"`
	Activities         []LessonActivityDTO `json:"activities"`
	Assessment         string              `json:"assessment"`
	Homework           *string             `json:"homework,omitempty"`
	RawContent         *string             `json:"rawContent,omitempty"`
	AiRequestId        *uuid.UUID          `json:"aiRequestId,omitempty"`
	Status             string              `json:"status"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          *time.Time          `json:"updatedAt,omitempty"`
}
