package entity

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Title      string
	Message    string
	EntityType string // "ai_request", "lesson_plan", "quiz"
	EntityId   *uuid.UUID
	Metadata   map[string]interface{}
	IsRead     bool
	ReadAt     *time.Time
	CreatedAt  time.Time
}
