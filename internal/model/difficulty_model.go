package model

import "github.com/google/uuid"

type Difficulty struct {
	Id    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name  string    `gorm:"type:varchar(32);unique;not null"`
	Level int       `gorm:"unique;not null"`
}

func (Difficulty) TableName() string {
	return "difficulties"
}
