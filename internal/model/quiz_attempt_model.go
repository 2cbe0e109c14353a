package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QuizAttempt struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	QuizId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	StudentId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Topic      string         `gorm:"type:varchar(255);not null;index"`
	Score      int            `gorm:"not null"`
	TotalScore int            `gorm:"not null"`
	Answers    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
