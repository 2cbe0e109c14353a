package entity

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	Id          uuid.UUID
	TeacherId   uuid.UUID
	Title       string
	Description string
	Topic       string
	TimeLimit   int // minutes
	TotalScore  int
	AiRequestId *uuid.UUID // nil for manually assembled quizzes
	Status      string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

const (
	QuizStatusDraft     = "Draft"
	QuizStatusGenerated = "Generated"
	QuizStatusPublished = "Published"
)
