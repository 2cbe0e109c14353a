package contract

import (
	"context"

	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	MarkRead(ctx context.Context, id uuid.UUID, userId uuid.UUID) error
	MarkAllRead(ctx context.Context, userId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type DifficultyRepository interface {
	Upsert(ctx context.Context, difficulty *entity.Difficulty) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Difficulty, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Difficulty, error)
}
