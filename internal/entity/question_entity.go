package entity

import (
	"time"

	"github.com/google/uuid"
)

type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "MultipleChoice"
	QuestionTypeTrueFalse      QuestionType = "TrueFalse"
	QuestionTypeShortAnswer    QuestionType = "ShortAnswer"
	QuestionTypeEssay          QuestionType = "Essay"
)

type Question struct {
	Id            uuid.UUID
	TeacherId     uuid.UUID
	Topic         string
	QuestionText  string
	QuestionType  QuestionType
	Options       []string
	CorrectAnswer string
	Explanation   *string
	GradeLevel    *string
	DifficultyId  *uuid.UUID
	QuizId        *uuid.UUID // set when the question belongs to a quiz
	AiRequestId   *uuid.UUID // nil for manually authored questions
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}
