package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LessonPlan struct {
	Id                 uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TeacherId          uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Title              string                      `gorm:"type:varchar(255);not null"`
	Topic              string                      `gorm:"type:varchar(255);not null;index"`
	GradeLevel         string                      `gorm:"type:varchar(32);not null"`
	Grade              int                         `gorm:"not null"`
	LevelId            int                         `gorm:"not null"`
	Duration           int                         `gorm:"not null"`
	LearningObjectives datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Materials          datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Activities         datatypes.JSON              `gorm:"type:jsonb"`
	Assessment         string                      `gorm:"type:text"`
	Homework           *string                     `gorm:"type:text"`
	RawContent         *string                     `gorm:"type:text"`
	AiRequestId        *uuid.UUID                  `gorm:"type:uuid;index"`
	Status             string                      `gorm:"type:varchar(16);not null;default:'Draft'"`
	CreatedAt          time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt          time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt          gorm.DeletedAt              `gorm:"index"`
}

func (LessonPlan) TableName() string {
	return "lesson_plans"
}
