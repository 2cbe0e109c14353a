package entity

import "github.com/google/uuid"

type Difficulty struct {
	Id    uuid.UUID
	Name  string // "Easy", "Medium", "Hard"
	Level int
}
