package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	Id         uuid.UUID              `json:"id"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	EntityType string                 `json:"entityType,omitempty"`
	EntityId   *uuid.UUID             `json:"entityId,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Read       bool                   `json:"read"`
	ReadAt     *time.Time             `json:"readAt,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}

type ListNotificationsQuery struct {
	UnreadOnly bool `query:"unreadOnly"`
	Page       int  `query:"page"`
	Limit      int  `query:"limit"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
