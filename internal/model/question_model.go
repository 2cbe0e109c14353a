package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Question struct {
	Id            uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TeacherId     uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Topic         string                      `gorm:"type:varchar(255);not null;index"`
	QuestionText  string                      `gorm:"type:text;not null"`
	QuestionType  string                      `gorm:"type:varchar(32);not null"`
	Options       datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CorrectAnswer string                      `gorm:"type:text;not null"`
	Explanation   *string                     `gorm:"type:text"`
	GradeLevel    *string                     `gorm:"type:varchar(32)"`
	DifficultyId  *uuid.UUID                  `gorm:"type:uuid;index"`
	QuizId        *uuid.UUID                  `gorm:"type:uuid;index"`
	AiRequestId   *uuid.UUID                  `gorm:"type:uuid;index"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt     time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt              `gorm:"index"`
}

func (Question) TableName() string {
	return "questions"
}
