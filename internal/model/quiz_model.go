package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Quiz struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TeacherId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text"`
	Topic       string         `gorm:"type:varchar(255);not null;index"`
	TimeLimit   int            `gorm:"not null"`
	TotalScore  int            `gorm:"not null"`
	AiRequestId *uuid.UUID     `gorm:"type:uuid;index"`
	Status      string         `gorm:"type:varchar(16);not null;default:'Draft'"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
