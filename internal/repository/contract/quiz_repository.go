package contract

import (
	"context"

	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/repository/specification"

	"github.com/google/uuid"
)

type QuizRepository interface {
	Create(ctx context.Context, quiz *entity.Quiz) error
	Update(ctx context.Context, quiz *entity.Quiz) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Quiz, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Quiz, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type QuizAttemptRepository interface {
	Create(ctx context.Context, attempt *entity.QuizAttempt) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizAttempt, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
