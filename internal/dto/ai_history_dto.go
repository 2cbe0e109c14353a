package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateHistoryRequest struct {
	RequestType string `json:"requestType" validate:"required"`
	Request     string `json:"request" validate:"required"`
	Status      string `json:"status,omitempty"`
}

type CreateHistoryResponse struct {
	RequestId uuid.UUID `json:"requestId"`
}

type UpdateHistoryRequest struct {
	Id          uuid.UUID
	Status      *string                `json:"status,omitempty"`
	Response    *string                `json:"response,omitempty"`
	Error       *string                `json:"error,omitempty"`
	CompletedAt *time.Time             `json:"completedAt,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type UpdateHistoryResponse struct {
	RequestId uuid.UUID `json:"requestId"`
}

type ListHistoryQuery struct {
	Type   string `query:"type"`
	Status string `query:"status"`
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

type HistoryRecordResponse struct {
	RequestId   uuid.UUID              `json:"requestId"`
	RequestType string                 `json:"requestType"`
	Prompt      string                 `json:"prompt"`
	Status      string                 `json:"status"`
	Response    *string                `json:"response,omitempty"`
	Error       *string                `json:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	CompletedAt *time.Time             `json:"completedAt,omitempty"`
}
