package contract

import (
	"context"

	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/repository/specification"

	"github.com/google/uuid"
)

// AiRequestRepository is the generation audit ledger. MarkCompleted and
// MarkFailed are conditional updates guarded on status = Pending so two
// concurrent callers can never both seal the same record.
type AiRequestRepository interface {
	Create(ctx context.Context, request *entity.AiRequest) error
	MarkCompleted(ctx context.Context, id uuid.UUID, response string, metadata map[string]interface{}) error
	MarkFailed(ctx context.Context, id uuid.UUID, cause string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AiRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AiRequest, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
