package entity

import (
	"time"

	"github.com/google/uuid"
)

type QuizAnswer struct {
	QuestionId uuid.UUID `json:"question_id"`
	Answer     string    `json:"answer"`
	Correct    bool      `json:"correct"`
}

// QuizAttempt records one student submission. Topic is denormalized from
// the quiz so progress analytics can aggregate without a join.
type QuizAttempt struct {
	Id         uuid.UUID
	QuizId     uuid.UUID
	StudentId  uuid.UUID
	Topic      string
	Score      int
	TotalScore int
	Answers    []QuizAnswer
	CreatedAt  time.Time
}
