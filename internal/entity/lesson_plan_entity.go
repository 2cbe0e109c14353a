package entity

import (
	"time"

	"github.com/google/uuid"
)

type LessonActivity struct {
	Title        string `json:"title"`
	Duration     int    `json:"duration"`
	Description  string `json:"description"`
	TeacherNotes string `json:"teacherNotes,omitempty"`
}

type LessonPlan struct {
	Id                 uuid.UUID
	TeacherId          uuid.UUID
	Title              string
	Topic              string
	GradeLevel         string // "elementary", "middle", "high"
	Grade              int    // 1-12
	LevelId            int
	Duration           int // minutes
	LearningObjectives []string
	Materials          []string
	Activities         []LessonActivity
	Assessment         string
	Homework           *string
	// RawContent holds the model output verbatim when structured parsing
	// degraded to raw text.
	RawContent  *string
	AiRequestId *uuid.UUID // nil for manually authored plans
	Status      string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

const (
	LessonPlanStatusDraft     = "Draft"
	LessonPlanStatusGenerated = "Generated"
)
