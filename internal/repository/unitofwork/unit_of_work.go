package unitofwork

import (
	"context"

	"ai-mathteach-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	AiRequestRepository() contract.AiRequestRepository
	LessonPlanRepository() contract.LessonPlanRepository
	QuestionRepository() contract.QuestionRepository
	QuizRepository() contract.QuizRepository
	QuizAttemptRepository() contract.QuizAttemptRepository
	NotificationRepository() contract.NotificationRepository
	DifficultyRepository() contract.DifficultyRepository
}
