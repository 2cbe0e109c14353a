package service

import (
	"context"
	"time"

	"ai-mathteach-be/internal/dto"
	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/pkg/apperrors"
	"ai-mathteach-be/internal/repository/specification"
	"ai-mathteach-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAiHistoryService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateHistoryRequest) (*dto.CreateHistoryResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateHistoryRequest) (*dto.UpdateHistoryResponse, error)
	List(ctx context.Context, userId uuid.UUID, query *dto.ListHistoryQuery) ([]*dto.HistoryRecordResponse, int64, error)
	GetById(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.HistoryRecordResponse, error)
}

type aiHistoryService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAiHistoryService(uowFactory unitofwork.RepositoryFactory) IAiHistoryService {
	return &aiHistoryService{
		uowFactory: uowFactory,
	}
}

func (s *aiHistoryService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateHistoryRequest) (*dto.CreateHistoryResponse, error) {
	requestType, ok := entity.ParseAiRequestType(req.RequestType)
	if !ok {
		return nil, apperrors.NewValidationError("requestType", "unknown request type: "+req.RequestType)
	}

	status := entity.AiRequestStatusPending
	if req.Status != "" {
		parsed, ok := entity.ParseAiRequestStatus(req.Status)
		if !ok {
			return nil, apperrors.NewValidationError("status", "unknown status: "+req.Status)
		}
		status = parsed
	}

	record := entity.AiRequest{
		Id:          uuid.New(),
		UserId:      userId,
		RequestType: requestType,
		Prompt:      req.Request,
		Status:      entity.AiRequestStatusPending,
		CreatedAt:   time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AiRequestRepository().Create(ctx, &record); err != nil {
		return nil, err
	}

	// A record created directly in a terminal state still goes through
	// the guarded transition so the sealing invariant holds everywhere.
	if status == entity.AiRequestStatusCompleted {
		if err := uow.AiRequestRepository().MarkCompleted(ctx, record.Id, "", nil); err != nil {
			return nil, err
		}
	} else if status == entity.AiRequestStatusFailed {
		if err := uow.AiRequestRepository().MarkFailed(ctx, record.Id, "recorded as failed at creation"); err != nil {
			return nil, err
		}
	}

	return &dto.CreateHistoryResponse{RequestId: record.Id}, nil
}

func (s *aiHistoryService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateHistoryRequest) (*dto.UpdateHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.AiRequestRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperrors.NewNotFoundError("history record")
	}

	if req.Status == nil {
		return nil, apperrors.NewValidationError("status", "status is required")
	}
	status, ok := entity.ParseAiRequestStatus(*req.Status)
	if !ok {
		return nil, apperrors.NewValidationError("status", "unknown status: "+*req.Status)
	}

	switch status {
	case entity.AiRequestStatusCompleted:
		response := ""
		if req.Response != nil {
			response = *req.Response
		}
		if err := uow.AiRequestRepository().MarkCompleted(ctx, record.Id, response, req.Metadata); err != nil {
			return nil, err
		}
	case entity.AiRequestStatusFailed:
		cause := "marked as failed"
		if req.Error != nil {
			cause = *req.Error
		}
		if err := uow.AiRequestRepository().MarkFailed(ctx, record.Id, cause); err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.NewValidationError("status", "a history record can only be updated to Completed or Failed")
	}

	return &dto.UpdateHistoryResponse{RequestId: record.Id}, nil
}

func (s *aiHistoryService) List(ctx context.Context, userId uuid.UUID, query *dto.ListHistoryQuery) ([]*dto.HistoryRecordResponse, int64, error) {
	page, limit := dto.NormalizePage(query.Page, query.Limit)

	specs := []specification.Specification{
		specification.OwnedBy{UserID: userId},
	}

	// "All" (or absent) means no type filter
	if query.Type != "" && query.Type != "All" {
		requestType, ok := entity.ParseAiRequestType(query.Type)
		if !ok {
			return nil, 0, apperrors.NewValidationError("type", "unknown request type: "+query.Type)
		}
		specs = append(specs, specification.ByRequestType{Type: requestType})
	}
	if query.Status != "" && query.Status != "All" {
		status, ok := entity.ParseAiRequestStatus(query.Status)
		if !ok {
			return nil, 0, apperrors.NewValidationError("status", "unknown status: "+query.Status)
		}
		specs = append(specs, specification.ByStatus{Status: status})
	}
	if query.Search != "" {
		specs = append(specs, specification.PromptSearch{Query: query.Search})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.AiRequestRepository().Count(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	listSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	records, err := uow.AiRequestRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*dto.HistoryRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, historyRecordToResponse(record))
	}
	return out, total, nil
}

func (s *aiHistoryService) GetById(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.HistoryRecordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.AiRequestRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperrors.NewNotFoundError("history record")
	}
	return historyRecordToResponse(record), nil
}

func historyRecordToResponse(record *entity.AiRequest) *dto.HistoryRecordResponse {
	return &dto.HistoryRecordResponse{
		RequestId:   record.Id,
		RequestType: string(record.RequestType),
		Prompt:      record.Prompt,
		Status:      string(record.Status),
		Response:    record.Response,
		Error:       record.Error,
		Metadata:    record.Metadata,
		CreatedAt:   record.CreatedAt,
		CompletedAt: record.CompletedAt,
	}
}
