package unitofwork

import (
	"context"
	"fmt"

	"ai-mathteach-be/internal/repository/contract"
	"ai-mathteach-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // The active transaction (or just db if no tx)
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) AiRequestRepository() contract.AiRequestRepository {
	return implementation.NewAiRequestRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LessonPlanRepository() contract.LessonPlanRepository {
	return implementation.NewLessonPlanRepository(u.getDB())
}

func (u *UnitOfWorkImpl) QuestionRepository() contract.QuestionRepository {
	return implementation.NewQuestionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) QuizRepository() contract.QuizRepository {
	return implementation.NewQuizRepository(u.getDB())
}

func (u *UnitOfWorkImpl) QuizAttemptRepository() contract.QuizAttemptRepository {
	return implementation.NewQuizAttemptRepository(u.getDB())
}

func (u *UnitOfWorkImpl) NotificationRepository() contract.NotificationRepository {
	return implementation.NewNotificationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DifficultyRepository() contract.DifficultyRepository {
	return implementation.NewDifficultyRepository(u.getDB())
}
