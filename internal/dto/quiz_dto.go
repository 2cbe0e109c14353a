package dto

import (
	"time"

	"github.com/google/uuid"
)

type ListQuizzesQuery struct {
	Topic  string `query:"topic"`
	Status string `query:"status"`
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

type QuizSummaryResponse struct {
	Id            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	QuestionCount int       `json:"questionCount"`
	TimeLimit     int       `json:"timeLimit"`
	TotalScore    int       `json:"totalScore"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ShowQuizResponse struct {
	Id          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Topic       string             `json:"topic"`
	Description string             `json:"description,omitempty"`
	TimeLimit   int                `json:"timeLimit"`
	TotalScore  int                `json:"totalScore"`
	Status      string             `json:"status"`
	AiRequestId *uuid.UUID         `json:"aiRequestId,omitempty"`
	Questions   []QuestionResponse `json:"questions"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type PublishQuizResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type AnswerSubmissionDTO struct {
	QuestionId uuid.UUID `json:"questionId" validate:"required"`
	Answer     string    `json:"answer" validate:"required"`
}

type SubmitQuizRequest struct {
	QuizId  uuid.UUID
	Answers []AnswerSubmissionDTO `json:"answers" validate:"required,min=1,dive"`
}

type AnswerResultDTO struct {
	QuestionId    uuid.UUID `json:"questionId"`
	Answer        string    `json:"answer"`
	Correct       bool      `json:"correct"`
	CorrectAnswer string    `json:"correctAnswer"`
	Explanation   *string   `json:"explanation,omitempty"`
}

type SubmitQuizResponse struct {
	AttemptId  uuid.UUID         `json:"attemptId"`
	QuizId     uuid.UUID         `json:"quizId"`
	Score      int               `json:"score"`
	TotalScore int               `json:"totalScore"`
	Results    []AnswerResultDTO `json:"results"`
	CreatedAt  time.Time         `json:"createdAt"`
}

type QuizAttemptResponse struct {
	Id         uuid.UUID `json:"id"`
	QuizId     uuid.UUID `json:"quizId"`
	Topic      string    `json:"topic"`
	Score      int       `json:"score"`
	TotalScore int       `json:"totalScore"`
	CreatedAt  time.Time `json:"createdAt"`
}
