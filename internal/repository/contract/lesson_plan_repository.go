package contract

import (
	"context"

	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/repository/specification"

	"github.com/google/uuid"
)

type LessonPlanRepository interface {
	Create(ctx context.Context, plan *entity.LessonPlan) error
	Update(ctx context.Context, plan *entity.LessonPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LessonPlan, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LessonPlan, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
