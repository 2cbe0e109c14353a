package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AiRequest struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	RequestType string         `gorm:"type:varchar(32);not null;index"`
	Prompt      string         `gorm:"type:text;not null"`
	Status      string         `gorm:"type:varchar(16);not null;default:'Pending';index"`
	Response    *string        `gorm:"type:text"`
	Error       *string        `gorm:"type:text"`
	Metadata    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index"`
	CompletedAt *time.Time
}

func (AiRequest) TableName() string {
	return "ai_requests"
}
