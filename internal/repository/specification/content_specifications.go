package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TitleTopicSearch matches title or topic case-insensitively; used by the
// lesson-plan and quiz list endpoints.
type TitleTopicSearch struct {
	Query string
}

func (s TitleTopicSearch) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR topic ILIKE ?", pattern, pattern)
}

// ByTopic filters by exact topic (case-insensitive).
type ByTopic struct {
	Topic string
}

func (s ByTopic) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("topic ILIKE ?", s.Topic)
}

// QuestionSearch matches question text or topic case-insensitively.
type QuestionSearch struct {
	Query string
}

func (s QuestionSearch) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("question_text ILIKE ? OR topic ILIKE ?", pattern, pattern)
}

// ByQuiz filters questions belonging to one quiz.
type ByQuiz struct {
	QuizID uuid.UUID
}

func (s ByQuiz) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("quiz_id = ?", s.QuizID)
}

// BankOnly keeps standalone question-bank rows (not attached to a quiz).
type BankOnly struct{}

func (s BankOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("quiz_id IS NULL")
}

// Unread keeps unread notifications.
type Unread struct{}

func (s Unread) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_read = false")
}
