package specification

import (
	"ai-mathteach-be/internal/entity"

	"gorm.io/gorm"
)

// ByRequestType filters ledger records by generation kind.
type ByRequestType struct {
	Type entity.AiRequestType
}

func (s ByRequestType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("request_type = ?", string(s.Type))
}

// ByStatus filters by lifecycle status.
type ByStatus struct {
	Status entity.AiRequestStatus
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", string(s.Status))
}

// PromptSearch matches the prompt text case-insensitively.
type PromptSearch struct {
	Query string
}

func (s PromptSearch) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("prompt ILIKE ?", pattern)
}
