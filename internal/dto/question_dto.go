package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateQuestionRequest struct {
	QuestionText  string     `json:"questionText" validate:"required"`
	QuestionType  string     `json:"questionType" validate:"required,oneof=MultipleChoice TrueFalse ShortAnswer Essay"`
	Topic         string     `json:"topic" validate:"required"`
	Options       []string   `json:"options,omitempty"`
	CorrectAnswer string     `json:"correctAnswer" validate:"required"`
	Explanation   *string    `json:"explanation,omitempty"`
	GradeLevel    *string    `json:"gradeLevel,omitempty"`
	DifficultyId  *uuid.UUID `json:"difficultyId,omitempty"`
}

type CreateQuestionResponse struct {
	Id uuid.UUID `json:"id"`
}

type ListQuestionsQuery struct {
	Topic        string `query:"topic"`
	QuestionType string `query:"questionType"`
	Search       string `query:"search"`
	Page         int    `query:"page"`
	Limit        int    `query:"limit"`
}

type QuestionResponse struct {
	Id            uuid.UUID  `json:"id"`
	QuestionText  string     `json:"questionText"`
	QuestionType  string     `json:"questionType"`
	Topic         string     `json:"topic"`
	Options       []string   `json:"options,omitempty"`
	CorrectAnswer string     `json:"correctAnswer"`
	Explanation   *string    `json:"explanation,omitempty"`
	GradeLevel    *string    `json:"gradeLevel,omitempty"`
	DifficultyId  *uuid.UUID `json:"difficultyId,omitempty"`
	QuizId        *uuid.UUID `json:"quizId,omitempty"`
	AiRequestId   *uuid.UUID `json:"aiRequestId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type DifficultyResponse struct {
	Id    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Level int       `json:"level"`
}
